package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID returns apperrors.ErrNotFound when no active user has the id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	// UpdateRefreshToken stores the hash of the user's current refresh token. An empty hash revokes it.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
