package services

import (
	"context"
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

// UserSvcFacade manages admin users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindOrCreateGoogleUser resolves the local user for a validated Google
	// identity, provisioning one on first login.
	FindOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error)
	StoreRefreshToken(ctx context.Context, userID, rawToken string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// TokenSvcFacade mints and validates the JWT/refresh token pair.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateRefreshToken checks a raw refresh token against the stored hash
	// and expiry for the user, returning the user when valid.
	ValidateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, error)
}

// GoogleIdentity is the validated subset of a Google ID token used for
// account resolution.
type GoogleIdentity struct {
	ProviderUserID string
	Email          string
	Name           string
}

// GoogleOAuthSvcFacade exchanges an authorization code for a validated
// Google identity.
type GoogleOAuthSvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error)
}

// MediaSvcFacade stores uploaded assets and returns their public URLs.
type MediaSvcFacade interface {
	UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
	UploadAudio(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, publicURL string) error
}
