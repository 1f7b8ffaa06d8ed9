// Package services contains the server-side business logic. Each exported
// method runs inside one database transaction obtained through dbx.WithTx and
// reaches the storage layer only through repomanager.RepositoryManager.
//
// The authenticated user is always an explicit userID argument; services
// never read it from the context.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/users"
)

// Subject renders a user id as a token subject.
func Subject(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// UserIDFromSubject parses a token subject back into a user id.
func UserIDFromSubject(subject string) (int64, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subject %q", common.ErrInvalidToken, subject)
	}
	return id, nil
}

// activeUser loads a user that has not quit.
func activeUser(ctx context.Context, repo users.Repository, userID int64) (*models.User, error) {
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	if u.IsLeft {
		return nil, fmt.Errorf("user %d has left: %w", userID, common.ErrInvalidState)
	}
	return u, nil
}

// reference turns a missing lookup into ErrInvalidReference.
func reference(what string, id int64, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, common.ErrInvalidReference)
	}
	return fmt.Errorf("%s %d: %w", what, id, err)
}

func checkOwner(what string, ownerID, userID int64) error {
	if ownerID != userID {
		return fmt.Errorf("%s owned by another user: %w", what, common.ErrForbidden)
	}
	return nil
}
