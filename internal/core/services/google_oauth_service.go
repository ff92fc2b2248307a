package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates the service exchanging Google authorization
// codes for validated identities.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCode swaps the authorization code for tokens and validates the ID
// token before trusting any of its claims.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: token response carries no id_token", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed", apperrors.ErrUnauthorized)
	}

	identity := &portssvc.GoogleIdentity{ProviderUserID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: google identity carries no email claim", apperrors.ErrUnauthorized)
	}
	return identity, nil
}
