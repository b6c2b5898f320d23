// Package users provides a PostgreSQL-backed credential store for user
// identity records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postwall/internal/common"
	"github.com/dmitrijs2005/postwall/internal/dbx"
	"github.com/dmitrijs2005/postwall/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations (duplicate email/nickname on insert).
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record. The id and creation timestamp are
// assigned by the database. A duplicate email or nickname surfaces as
// common.ErrUserExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, nickname, password_hash, activation_link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Nickname, user.PasswordHash, user.ActivationLink).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const userColumns = `id, email, nickname, password_hash, is_activated, activation_link, created_at`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Nickname, &user.PasswordHash,
		&user.IsActivated, &user.ActivationLink, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// FindByEmailOrNickname returns the user matching either value, used as the
// duplicate pre-check during registration.
func (r *PostgresRepository) FindByEmailOrNickname(ctx context.Context, email, nickname string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR nickname = $2`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, nickname))
}

// FindByEmail returns the user with the given email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindByActivationLink returns the user owning the given activation link.
func (r *PostgresRepository) FindByActivationLink(ctx context.Context, link string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE activation_link = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, link))
}

// FindByID returns the user with the given id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// MarkActivated sets is_activated for the user. Missing users surface as
// common.ErrorNotFound.
func (r *PostgresRepository) MarkActivated(ctx context.Context, userID string) error {
	query := `UPDATE users SET is_activated = true WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
