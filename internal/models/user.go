package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       string       `db:"refresh_token_hash"` // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime `db:"refresh_token_expiry_time"`
}
