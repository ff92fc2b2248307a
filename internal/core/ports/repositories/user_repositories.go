package repositories

import (
	"context"
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// UserRepository persists admin users and their refresh-token state.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	// UpdateRefreshToken stores the hash and expiry of the current refresh
	// token; nil values clear it (logout).
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error
}
