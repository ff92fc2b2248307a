package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
)

const userColumns = `user_id, username, name, email, password_hash, auth_provider,
	provider_user_id, refresh_token_hash, refresh_token_expiry, created_at, updated_at`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new repository for admin users.
func NewPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, name, email, password_hash, auth_provider,
			provider_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID, user.Username, user.Name, user.Email, user.PasswordHash,
		user.AuthProvider, user.ProviderUserID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username = $1", username)
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`, userColumns)

	var u domain.User
	err := r.pool.QueryRow(ctx, query, provider, providerUserID).Scan(userDests(&u)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by provider id: %w", err)
	}
	return &u, nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry = $3 WHERE user_id = $1;`
	cmd, err := r.pool.Exec(ctx, query, userID, tokenHash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s;`, userColumns, where)

	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(userDests(&u)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

func userDests(u *domain.User) []any {
	return []any{
		&u.UserID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &u.AuthProvider,
		&u.ProviderUserID, &u.RefreshTokenHash, &u.RefreshTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	}
}
