// Package journals stores pet health-log entries.
package journals

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, journal *models.Journal) (*models.Journal, error)
	GetByID(ctx context.Context, id int64) (*models.Journal, error)
	Update(ctx context.Context, journal *models.Journal) error
	Delete(ctx context.Context, id int64) error
	DeleteByPet(ctx context.Context, petID int64) (int64, error)

	// ListByUser returns the user's journals, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Journal, error)
}
