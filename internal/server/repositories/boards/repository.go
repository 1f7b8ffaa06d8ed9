// Package boards stores community board posts.
package boards

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, board *models.Board) (*models.Board, error)
	GetByID(ctx context.Context, id int64) (*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id int64) error

	// List returns boards of typeID whose title contains word, newest first.
	// An empty word matches every title.
	List(ctx context.Context, typeID int64, word string, limit, offset int) ([]*models.Board, error)

	// IncrementViews bumps the view counter and returns the new value.
	IncrementViews(ctx context.Context, id int64) (int64, error)
}
