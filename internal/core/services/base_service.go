package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	BusinessAuthorizer portssvc.BusinessAuthorizerSvc
	// Now is the clock. Tests replace it.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that a user is an active member of a business with at least requiredRole.
// Without an authorizer every request is denied.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, businessID string, requiredRole domain.StaffRole) (*domain.BusinessUser, error) {
	if s.BusinessAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrInternal, "No business authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, apperrors.NewForbiddenError("access denied")
	}
	return s.BusinessAuthorizer.AuthorizeMember(ctx, userID, businessID, requiredRole)
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func newAuditFields(userID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     at,
		CreatedBy:     userID,
		LastUpdatedAt: at,
		LastUpdatedBy: userID,
	}
}

func touch(a *domain.AuditFields, userID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}
