package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// noopSummaryCache is used when no cache backend is configured.
type noopSummaryCache struct{}

func (noopSummaryCache) Get(context.Context, string, string) (*domain.NotificationSummary, int64, bool) {
	return nil, 0, false
}
func (noopSummaryCache) Set(context.Context, string, string, int64, domain.NotificationSummary) {}
func (noopSummaryCache) Invalidate(context.Context, string)                                     {}

type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	cache            portsrepo.NotificationSummaryCache
}

// NotificationServiceOption is a function that configures a notificationService
type NotificationServiceOption func(*notificationService)

// WithSummaryCache sets the cache used for unread counters.
func WithSummaryCache(cache portsrepo.NotificationSummaryCache) NotificationServiceOption {
	return func(s *notificationService) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, opts ...NotificationServiceOption) portssvc.NotificationSvcFacade {
	s := &notificationService{
		notificationRepo: notificationRepo,
		cache:            noopSummaryCache{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) OnChangeRequestCreated(ctx context.Context, req domain.ChangeRequest, ownerUserID string) (*domain.Notification, error) {
	n := domain.ChangeRequestCreatedNotification(uuid.NewString(), req, ownerUserID, s.now())
	return s.save(ctx, n)
}

func (s *notificationService) OnChangeRequestReviewed(ctx context.Context, req domain.ChangeRequest) (*domain.Notification, error) {
	n := domain.ChangeRequestReviewedNotification(uuid.NewString(), req, s.now())
	return s.save(ctx, n)
}

func (s *notificationService) save(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.String("recipient_user_id", n.RecipientUserID),
			slog.String("type", string(n.Type)))
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	s.LogDebug(ctx, "Notification queued", slog.String("notification_id", n.NotificationID), slog.String("type", string(n.Type)))
	return &n, nil
}

func (s *notificationService) AfterCommit(ctx context.Context, notifications ...*domain.Notification) {
	for _, n := range notifications {
		if n != nil {
			s.cache.Invalidate(ctx, n.RecipientUserID)
		}
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, params dto.ListNotificationsParams, userID string) (*pagination.Page[domain.Notification], error) {
	p := params.ToParams()
	filter := domain.NotificationFilter{UnreadOnly: params.UnreadOnly}
	if params.BusinessID != "" {
		filter.BusinessID = &params.BusinessID
	}
	items, total, err := s.notificationRepo.ListNotifications(ctx, userID, filter, p.Limit(), p.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications")
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	page := pagination.NewPage(items, total, p)
	return &page, nil
}

func (s *notificationService) GetSummary(ctx context.Context, businessID string, userID string) (*domain.NotificationSummary, error) {
	cached, generation, ok := s.cache.Get(ctx, userID, businessID)
	if ok {
		return cached, nil
	}
	var scope *string
	if businessID != "" {
		scope = &businessID
	}
	summary, err := s.notificationRepo.SummarizeNotifications(ctx, userID, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize notifications")
		return nil, fmt.Errorf("failed to get notification summary: %w", err)
	}
	s.cache.Set(ctx, userID, businessID, generation, summary)
	return &summary, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("notification not found")
		}
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}
	if n.RecipientUserID != userID {
		return nil, apperrors.NewNotFoundError("notification not found")
	}

	at := s.now()
	if !n.MarkRead(at) {
		return n, nil
	}
	changed, err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID, at)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if changed {
		s.cache.Invalidate(ctx, userID)
	}
	return n, nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, businessID string, userID string) (int64, error) {
	var scope *string
	if businessID != "" {
		scope = &businessID
	}
	updated, err := s.notificationRepo.MarkAllNotificationsRead(ctx, userID, scope, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark all notifications read")
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	if updated > 0 {
		s.cache.Invalidate(ctx, userID)
	}
	return updated, nil
}
