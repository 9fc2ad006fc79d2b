package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

type UserWriterSvc interface {
	// Register creates a local user. A taken email is apperrors.ErrDuplicate.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	// FindOrCreateGoogleUser links a Google identity to a user, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

type UserAuthenticatorSvc interface {
	// AuthenticateUser checks email and password. Any mismatch is apperrors.ErrUnauthorized.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
