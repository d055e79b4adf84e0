package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/platform/apperr"
)

const uniqueViolation = "23505"

// Repo is the PostgreSQL-backed auth repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) CreateUser(ctx context.Context, email, passwordHash string, roles []string) (User, error) {
	user := User{
		ID:        uuid.New(),
		Email:     email,
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	}
	user.PasswordHash = passwordHash

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, roles, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, passwordHash, roles, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, err
	}
	return user, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, roles, created_at
		FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *Repo) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, roles, created_at
		FROM users WHERE id = $1`, userID))
}

func (r *Repo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, now())`,
		tokenHash, userID, expiresAt,
	)
	return err
}

func (r *Repo) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash,
	).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
	}
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}
	return userID, expiresAt, nil
}

func (r *Repo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *Repo) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

func (r *Repo) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Roles, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}
