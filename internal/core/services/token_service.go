package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/utils"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

const refreshTokenBytes = 32

type tokenService struct {
	userRepo portsrepo.UserRepository
	cfg      *config.Config
}

// NewTokenService creates the service minting access and refresh tokens.
func NewTokenService(userRepo portsrepo.UserRepository, cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{userRepo: userRepo, cfg: cfg}
}

func (s *tokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) GenerateRefreshToken(_ context.Context, _ *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return raw, time.Now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}
	if user.RefreshTokenHash == nil || user.RefreshTokenExpiry == nil {
		return nil, fmt.Errorf("%w: no active refresh token", apperrors.ErrUnauthorized)
	}
	if time.Now().After(*user.RefreshTokenExpiry) {
		return nil, fmt.Errorf("%w: refresh token expired", apperrors.ErrUnauthorized)
	}
	hash := utils.HashRefreshToken(rawToken)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(*user.RefreshTokenHash)) != 1 {
		return nil, fmt.Errorf("%w: refresh token mismatch", apperrors.ErrUnauthorized)
	}
	return user, nil
}
