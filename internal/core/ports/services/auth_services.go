package services

import (
	"context"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

// TokenSvcFacade issues and validates access and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken creates a random refresh token and stores its hash on the user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
	// RevokeRefreshToken forgets the user's refresh token.
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForUserInfo trades an authorization code for the verified identity in its ID token.
	ExchangeCodeForUserInfo(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}
