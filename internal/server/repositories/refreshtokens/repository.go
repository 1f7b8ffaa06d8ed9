// Package refreshtokens declares the server-side store of refresh tokens.
// The store keeps at most one token per subject.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type Repository interface {
	// Save stores value as the current refresh token of subject, replacing
	// any previous one.
	Save(ctx context.Context, subject, value string, expiresAt time.Time) error

	// FindByValue returns common.ErrorNotFound when no subject holds value.
	FindByValue(ctx context.Context, value string) (*models.RefreshToken, error)

	// DeleteByValue is a no-op for unknown values.
	DeleteByValue(ctx context.Context, value string) error

	DeleteBySubject(ctx context.Context, subject string) error

	// DeleteExpired removes tokens that expired before now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
