// Package boardtypes reads the fixed set of board categories.
package boardtypes

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.BoardType, error)
	GetByID(ctx context.Context, id int64) (*models.BoardType, error)
}
