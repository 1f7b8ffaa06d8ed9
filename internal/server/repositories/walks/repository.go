// Package walks stores walk records. Pets are attached through the
// walkpets package.
package walks

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, walk *models.Walk) (*models.Walk, error)
	GetByID(ctx context.Context, id int64) (*models.Walk, error)
	Update(ctx context.Context, walk *models.Walk) error

	// Delete removes the walk; its walk_pets rows go with it.
	Delete(ctx context.Context, id int64) error

	// ListByUser returns the user's walks, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Walk, error)

	// ListByPet returns every walk the pet took part in.
	ListByPet(ctx context.Context, petID int64) ([]*models.Walk, error)
}
