// Package refreshtokens declares the server-side repository contract for
// the single live refresh token kept per user.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/postwall/internal/server/models"
)

// Repository defines operations for storing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Save upserts the refresh token for userID with an expiry of
	// now+validity. At most one row per user exists; a concurrent save for
	// the same user is last-writer-wins, which is the intended
	// single-session-per-user semantic.
	Save(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the stored token row for userID.
	// Implementations return common.ErrorNotFound when absent.
	Find(ctx context.Context, userID string) (*models.RefreshToken, error)

	// FindByToken looks up the row by the opaque token string, used to
	// confirm a presented refresh token is still the live one.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string and reports how
	// many rows were removed. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) (int64, error)
}
