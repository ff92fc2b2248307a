package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/utils"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/validation"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the admin user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return nil, err
		}
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	now := time.Now().UTC()
	created := domain.User{
		UserID:         uuid.NewString(),
		Username:       strings.ToLower(email),
		Name:           name,
		Email:          email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: providerUserID,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	return &created, nil
}

func (s *userService) StoreRefreshToken(ctx context.Context, userID, rawToken string, expiry time.Time) error {
	hash := utils.HashRefreshToken(rawToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, &hash, &expiry); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
