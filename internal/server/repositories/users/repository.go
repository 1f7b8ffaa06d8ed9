// Package users declares the user repository contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. A taken member id or
	// nickname yields common.ErrDuplicate.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByMemberID(ctx context.Context, memberID string) (*models.User, error)
	ExistsByMemberID(ctx context.Context, memberID string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	// Update overwrites every mutable column of the row with user.ID.
	Update(ctx context.Context, user *models.User) error
	// ClearPrimaryPet unsets pet_id for userID when it currently equals petID.
	ClearPrimaryPet(ctx context.Context, userID, petID int64) error
}
