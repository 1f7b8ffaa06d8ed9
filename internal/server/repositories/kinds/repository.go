// Package kinds reads the breed catalog. The catalog is seeded by migrations
// and never written by the application.
package kinds

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Kind, error)
	GetByID(ctx context.Context, id int64) (*models.Kind, error)
}
