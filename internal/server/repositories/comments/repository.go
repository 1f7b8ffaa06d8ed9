// Package comments stores board comments.
package comments

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error

	// DeleteByBoard removes every comment of a board and returns the count.
	DeleteByBoard(ctx context.Context, boardID int64) (int64, error)

	// ListByBoard returns comments of a board, newest first.
	ListByBoard(ctx context.Context, boardID int64) ([]*models.Comment, error)
}
