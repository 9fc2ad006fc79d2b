package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
)

// NotificationEmitterSvc is used by the change-request workflow. Both calls run inside
// the caller's transaction when ctx carries one.
type NotificationEmitterSvc interface {
	OnChangeRequestCreated(ctx context.Context, req domain.ChangeRequest, ownerUserID string) (*domain.Notification, error)
	OnChangeRequestReviewed(ctx context.Context, req domain.ChangeRequest) (*domain.Notification, error)
	// AfterCommit drops cached counters of recipients once their notifications are durable.
	AfterCommit(ctx context.Context, notifications ...*domain.Notification)
}

type NotificationReaderSvc interface {
	ListNotifications(ctx context.Context, params dto.ListNotificationsParams, userID string) (*pagination.Page[domain.Notification], error)
	GetSummary(ctx context.Context, businessID string, userID string) (*domain.NotificationSummary, error)
}

type NotificationWriterSvc interface {
	// MarkAsRead is idempotent. Notifications of other users are apperrors.ErrNotFound.
	MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, businessID string, userID string) (int64, error)
}

// NotificationSvcFacade combines all notification service interfaces
type NotificationSvcFacade interface {
	NotificationEmitterSvc
	NotificationReaderSvc
	NotificationWriterSvc
}
