package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

type NotificationReader interface {
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)
	// ListNotifications returns the recipient's notifications, newest first.
	ListNotifications(ctx context.Context, recipientUserID string, filter domain.NotificationFilter, limit, offset int) ([]domain.Notification, int64, error)
	// SummarizeNotifications counts from storage; it is the source of truth for the unread count.
	SummarizeNotifications(ctx context.Context, recipientUserID string, businessID *string) (domain.NotificationSummary, error)
}

type NotificationWriter interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
	// MarkNotificationRead flips one unread notification. changed is false when it was already read.
	MarkNotificationRead(ctx context.Context, notificationID, recipientUserID string, at time.Time) (changed bool, err error)
	// MarkAllNotificationsRead flips every unread notification of the recipient, optionally within one business.
	MarkAllNotificationsRead(ctx context.Context, recipientUserID string, businessID *string, at time.Time) (int64, error)
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}

// NotificationSummaryCache is a best-effort read-through cache of NotificationSummary.
// Entries are scoped per recipient and per business filter ("" for all businesses).
// Each recipient has a generation that Invalidate advances; a miss reports the
// generation it observed and Set stores only while that generation is current.
type NotificationSummaryCache interface {
	Get(ctx context.Context, recipientUserID, scope string) (summary *domain.NotificationSummary, generation int64, ok bool)
	Set(ctx context.Context, recipientUserID, scope string, generation int64, summary domain.NotificationSummary)
	// Invalidate drops every cached scope of the recipient and advances its generation.
	Invalidate(ctx context.Context, recipientUserID string)
}
