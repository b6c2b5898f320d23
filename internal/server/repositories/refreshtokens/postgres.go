// Package refreshtokens provides a PostgreSQL-backed repository for the
// refresh tokens used in the session refresh flow.
package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postwall/internal/common"
	"github.com/dmitrijs2005/postwall/internal/dbx"
	"github.com/dmitrijs2005/postwall/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts the token for userID in a single statement. The unique key
// on user_id keeps at most one live token per user.
func (r *PostgresRepository) Save(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Find returns the stored refresh token row for the given user id.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, userID string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM refresh_tokens
		WHERE user_id = $1
	`
	return r.scanToken(r.db.QueryRowContext(ctx, query, userID))
}

// FindByToken returns the row holding the given token string.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM refresh_tokens
		WHERE token = $1
	`
	return r.scanToken(r.db.QueryRowContext(ctx, query, token))
}

// Delete removes a refresh token by its token string and returns the number
// of deleted rows (0 when the token was not stored).
func (r *PostgresRepository) Delete(ctx context.Context, token string) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = $1
	`
	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return deleted, nil
}

func (r *PostgresRepository) scanToken(row *sql.Row) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{}
	if err := row.Scan(&refreshToken.UserID, &refreshToken.Token, &refreshToken.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return refreshToken, nil
}
