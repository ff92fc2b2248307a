package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an operator of the admin API.
type User struct {
	UserID       string       `json:"userID"`
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // empty for external-provider users
	AuthProvider AuthProvider `json:"authProvider"`
	// ProviderUserID is the subject claim from the external provider, empty for local users.
	ProviderUserID string `json:"-"`
	Timestamps

	RefreshTokenHash   *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
}
