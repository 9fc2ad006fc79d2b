package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	hash, err := utils.HashPassword(req.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.AuthProviderLocal,
	}
	user.AuditFields = newAuditFields(user.UserID, now)

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "an account with this email already exists", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.PasswordMatches(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return user, nil
	}
	user.Name = strings.TrimSpace(*req.Name)
	touch(&user.AuditFields, userID, s.now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// FindOrCreateGoogleUser prefers an existing Google link, then an account with the same
// verified email, and only then creates a new user.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.AuthProviderGoogle, info.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	email := normalizeEmail(info.Email)
	if info.EmailVerified && email != "" {
		existing, err := s.userRepo.FindUserByEmail(ctx, email)
		if err == nil {
			s.LogInfo(ctx, "Signing in existing user with Google", slog.String("user_id", existing.UserID))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
	}

	subject := info.Subject
	now := s.now()
	user = &domain.User{
		UserID:         uuid.NewString(),
		Name:           info.Name,
		Email:          email,
		AuthProvider:   domain.AuthProviderGoogle,
		ProviderUserID: &subject,
	}
	if user.Name == "" {
		user.Name = email
	}
	user.AuditFields = newAuditFields(user.UserID, now)
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to create google user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "User created from Google sign-in", slog.String("user_id", user.UserID))
	return user, nil
}
