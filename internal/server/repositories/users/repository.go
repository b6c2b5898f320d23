// Package users declares the credential store contract: persistence and
// lookup of identity records.
package users

import (
	"context"

	"github.com/dmitrijs2005/postwall/internal/server/models"
)

// Repository defines operations over persisted user records.
//
// Lookups return common.ErrorNotFound when no record matches. Create returns
// common.ErrUserExists when the email or nickname is already taken; the
// store's unique constraints are the source of truth for that invariant,
// service-level pre-checks are only a fast path.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmailOrNickname(ctx context.Context, email, nickname string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByActivationLink(ctx context.Context, link string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)

	// MarkActivated flips is_activated to true for the given user id.
	MarkActivated(ctx context.Context, userID string) error
}
