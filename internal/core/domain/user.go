package domain

import "time"

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "LOCAL"
	AuthProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (e.g., UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"`
	// Refresh token state. Only the SHA-256 hash is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// GoogleUserInfo is the verified identity taken from a Google ID token.
type GoogleUserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
