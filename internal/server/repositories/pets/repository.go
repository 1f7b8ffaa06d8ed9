// Package pets stores pet profiles.
package pets

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, pet *models.Pet) (*models.Pet, error)
	GetByID(ctx context.Context, id int64) (*models.Pet, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Pet, error)
	// ListByIDs returns the pets among ids that exist, in id order.
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id int64) error
}
