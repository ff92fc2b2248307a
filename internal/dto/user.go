package dto

import (
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// CreateUserRequest defines the payload for registering an admin user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest defines the payload for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries the Google authorization code posted by the
// front end after the OAuth redirect.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse returns the access token; the refresh token travels in an
// httpOnly cookie, never in the body.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the API representation of an admin user.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain user to its API form.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: string(u.AuthProvider),
		CreatedAt:    u.CreatedAt,
	}
}

// MediaUploadResponse returns the public URL of an uploaded asset.
type MediaUploadResponse struct {
	URL string `json:"url"`
}
