// Package walkpets stores the walk to pet join rows.
package walkpets

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, walkID, petID int64) (*models.WalkPet, error)
	ListByWalk(ctx context.Context, walkID int64) ([]*models.WalkPet, error)

	// GetByWalkAndPet returns the first join row for the pair.
	GetByWalkAndPet(ctx context.Context, walkID, petID int64) (*models.WalkPet, error)
	Delete(ctx context.Context, id int64) error

	// LatestByPet returns the most recently created join row of a pet.
	LatestByPet(ctx context.Context, petID int64) (*models.WalkPet, error)
}
