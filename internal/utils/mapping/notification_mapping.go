package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID:  d.NotificationID,
		BusinessID:      d.BusinessID,
		RecipientUserID: d.RecipientUserID,
		Type:            string(d.Type),
		ReferenceType:   string(d.ReferenceType),
		ReferenceID:     d.ReferenceID,
		Title:           d.Title,
		Message:         d.Message,
		IsRead:          d.IsRead,
		ReadAt:          d.ReadAt,
		CreatedAt:       d.CreatedAt,
	}
}

func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID:  m.NotificationID,
		BusinessID:      m.BusinessID,
		RecipientUserID: m.RecipientUserID,
		Type:            domain.NotificationType(m.Type),
		ReferenceType:   domain.NotificationReferenceType(m.ReferenceType),
		ReferenceID:     m.ReferenceID,
		Title:           m.Title,
		Message:         m.Message,
		IsRead:          m.IsRead,
		ReadAt:          m.ReadAt,
		CreatedAt:       m.CreatedAt,
	}
}

func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	return toDomainSlice(ms, ToDomainNotification)
}
