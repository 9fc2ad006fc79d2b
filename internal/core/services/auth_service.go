package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/platform/config"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates a new refresh token for the given user and stores its hash,
// replacing any previous one.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	issued, err := utils.NewRefreshToken(s.now(), s.cfg.RefreshTokenExpiryDuration)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, issued.Hash, &issued.ExpiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token")
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return issued.Token, issued.ExpiresAt, nil
}

// ValidateAndParseRefreshToken validates a refresh token string and returns the associated user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid refresh token")
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if s.now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.NewUnauthorizedError("refresh token has expired")
	}
	if !utils.RefreshTokenMatches(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return user, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     idTokenValidator
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

// ExchangeCodeForUserInfo exchanges the code and validates the ID token that comes with it.
func (s *googleOAuthHandlerService) ExchangeCodeForUserInfo(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleClientSecret == "" {
		return nil, apperrors.NewAppError(503, "google sign-in is not configured", apperrors.ErrInternal)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.NewAppError(401, "failed to exchange google authorization code", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.NewUnauthorizedError("google did not return an ID token")
	}

	payload, err := s.validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, apperrors.NewAppError(401, "google ID token validation failed", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
	}

	return userInfoFromPayload(payload), nil
}

func userInfoFromPayload(p *idtoken.Payload) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{Subject: p.Subject}
	if v, ok := p.Claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := p.Claims["email_verified"].(bool); ok {
		info.EmailVerified = v
	}
	if v, ok := p.Claims["name"].(string); ok {
		info.Name = v
	}
	return info
}
