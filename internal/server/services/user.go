// Package services contains server-side business logic. This file implements
// UserService, which handles registration with email activation, login,
// logout, and issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postwall/internal/common"
	"github.com/dmitrijs2005/postwall/internal/dbx"
	"github.com/dmitrijs2005/postwall/internal/logging"
	"github.com/dmitrijs2005/postwall/internal/server/auth"
	"github.com/dmitrijs2005/postwall/internal/server/config"
	"github.com/dmitrijs2005/postwall/internal/server/models"
	"github.com/dmitrijs2005/postwall/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is returned by every operation that establishes a session:
// the freshly minted tokens plus the public projection of the user.
type AuthResult struct {
	Tokens TokenPair
	User   models.UserView
}

// ActivationDispatcher hands an activation mail off for asynchronous
// delivery. Implementations must not block.
type ActivationDispatcher interface {
	Enqueue(email, activationURL string)
}

// UserService provides the session lifecycle operations:
//   - Register: create a user, send the activation link, mint tokens
//   - Activate: confirm the activation link
//   - Login: verify credentials and mint tokens
//   - Logout: revoke the stored refresh token
//   - Refresh: rotate the refresh token and mint a new access token
//
// Every user has at most one live refresh token; registering, logging in,
// or refreshing overwrites it, invalidating any earlier session.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	dispatcher                   ActivationDispatcher
	logger                       logging.Logger
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	apiBaseURL                   string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, d ActivationDispatcher, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		dispatcher:                   d,
		logger:                       l.With("module", "user_service"),
		accessSecret:                 []byte(cfg.AccessSecretKey),
		refreshSecret:                []byte(cfg.RefreshSecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		apiBaseURL:                   cfg.APIBaseURL,
	}
}

// Register creates a new user, queues the activation mail, and establishes
// the first session. An existing email or nickname yields ErrUserExists.
// The pre-check is a fast path only; the unique constraints in the store
// close the race between concurrent identical registrations.
func (s *UserService) Register(ctx context.Context, email, nickname, password string) (*AuthResult, error) {
	_, err := s.repomanager.Users(s.db).FindByEmailOrNickname(ctx, email, nickname)
	if err == nil {
		return nil, common.ErrUserExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking for existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	activationLink := uuid.NewString()

	var result *AuthResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:          email,
			Nickname:       nickname,
			PasswordHash:   passwordHash,
			ActivationLink: activationLink,
		})
		if err != nil {
			return err
		}
		var genErr error
		result, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}

	// queued after commit; delivery failure never undoes the registration
	s.dispatcher.Enqueue(email, s.activationURL(activationLink))

	return result, nil
}

// Activate marks the user owning the activation link as activated.
// Unknown links yield ErrInvalidActivationLink. Activation is informational
// only and gates neither login nor refresh.
func (s *UserService) Activate(ctx context.Context, activationLink string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByActivationLink(ctx, activationLink)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidActivationLink
		}
		return fmt.Errorf("error searching user by activation link: %w", err)
	}

	if err := repo.MarkActivated(ctx, user.ID); err != nil {
		return fmt.Errorf("error marking user activated: %w", err)
	}
	return nil
}

// Login verifies the credentials and establishes a new session, overwriting
// any refresh token stored for the user.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user by email: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrWrongPassword
	}

	return s.generateTokenPair(ctx, user, s.db)
}

// Logout deletes the stored refresh token matching the presented value and
// returns the number of removed rows. An unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) (int64, error) {
	deleted, err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
	if err != nil {
		return 0, fmt.Errorf("error deleting refresh token: %w", err)
	}
	return deleted, nil
}

// Refresh exchanges a live refresh token for a fresh pair, rotating the
// stored token. A missing, malformed, expired, or rotated-out token yields
// ErrorUnauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}

	payload, err := auth.GetPayloadFromToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	stored, err := s.repomanager.RefreshTokens(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// rotated out or revoked: the presented value is no longer
			// the live token for any user
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if stored.UserID != payload.UserID {
		return nil, common.ErrorUnauthorized
	}

	// the token payload is verified, but the user record is authoritative
	user, err := s.repomanager.Users(s.db).FindByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user by id: %w", err)
	}

	return s.generateTokenPair(ctx, user, s.db)
}

// --- helpers below ---

func (s *UserService) activationURL(activationLink string) string {
	return fmt.Sprintf("%s/api/activate/%s", s.apiBaseURL, activationLink)
}

// generateTokenPair mints both tokens from the user's public projection and
// upserts the refresh token, making it the single live session for the user.
func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (*AuthResult, error) {
	view := models.NewUserView(user)
	payload := auth.TokenPayload{UserID: view.ID, Email: view.Email, Nickname: view.Nickname}

	access, err := auth.GenerateToken(payload, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(payload, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.repomanager.RefreshTokens(db).Save(ctx, view.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("error saving refresh token: %w", err)
	}

	return &AuthResult{
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
		User:   view,
	}, nil
}
