package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Guptsonu22/task-management-api/internal/domain"
)

// PostgresRefreshTokenRepository implements RefreshTokenRepository using PostgreSQL
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRefreshTokenRepository creates a new PostgresRefreshTokenRepository
func NewPostgresRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

// Create persists a newly issued refresh token
func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Token,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return err
}

// GetByToken retrieves a stored token row
func (r *PostgresRefreshTokenRepository) GetByToken(ctx context.Context, tokenString string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`
	token := &domain.RefreshToken{}
	err := r.pool.QueryRow(ctx, query, tokenString).Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

// Consume deletes the row for token and reports whether this caller removed
// it. The single conditional DELETE makes rotation race-safe: when two
// refreshes arrive with the same token, the row is gone by the time the
// second DELETE runs, so only one caller sees rows-affected == 1.
func (r *PostgresRefreshTokenRepository) Consume(ctx context.Context, tokenString string) (bool, error) {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	tag, err := r.pool.Exec(ctx, query, tokenString)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteByToken removes the row if present
func (r *PostgresRefreshTokenRepository) DeleteByToken(ctx context.Context, tokenString string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, tokenString)
	return err
}

// DeleteExpired removes all rows past their expiry
func (r *PostgresRefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM refresh_tokens WHERE expires_at < $1`
	_, err := r.pool.Exec(ctx, query, time.Now())
	return err
}
