package domain

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationChangeRequestCreated  NotificationType = "CHANGE_REQUEST_CREATED"
	NotificationChangeRequestApproved NotificationType = "CHANGE_REQUEST_APPROVED"
	NotificationChangeRequestRejected NotificationType = "CHANGE_REQUEST_REJECTED"
)

type NotificationReferenceType string

const ReferenceChangeRequest NotificationReferenceType = "CHANGE_REQUEST"

// Notification is addressed to exactly one user. Only its read state ever changes.
type Notification struct {
	NotificationID  string                    `json:"notificationID"`
	BusinessID      string                    `json:"businessID"`
	RecipientUserID string                    `json:"recipientUserID"`
	Type            NotificationType          `json:"type"`
	ReferenceType   NotificationReferenceType `json:"referenceType"`
	ReferenceID     string                    `json:"referenceID"`
	Title           string                    `json:"title"`
	Message         string                    `json:"message"`
	IsRead          bool                      `json:"isRead"`
	ReadAt          *time.Time                `json:"readAt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// MarkRead flips the notification to read. It reports whether anything changed.
func (n *Notification) MarkRead(at time.Time) bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	n.ReadAt = &at
	return true
}

// NotificationSummary is derived from storage on every read.
type NotificationSummary struct {
	UnreadCount int64 `json:"unreadCount"`
	TotalCount  int64 `json:"totalCount"`
}

// NotificationFilter narrows a recipient's notification listing.
type NotificationFilter struct {
	BusinessID *string
	UnreadOnly bool
}

// ChangeRequestCreatedNotification addresses the business owner about a new request.
func ChangeRequestCreatedNotification(id string, req ChangeRequest, ownerUserID string, at time.Time) Notification {
	requester := req.RequestedByName
	if requester == "" {
		requester = "A staff member"
	}
	return Notification{
		NotificationID:  id,
		BusinessID:      req.BusinessID,
		RecipientUserID: ownerUserID,
		Type:            NotificationChangeRequestCreated,
		ReferenceType:   ReferenceChangeRequest,
		ReferenceID:     req.RequestID,
		Title:           "New change request",
		Message:         fmt.Sprintf("%s requested to %s an entry: %s", requester, verb(req.RequestType), req.Reason),
		CreatedAt:       at,
	}
}

// ChangeRequestReviewedNotification addresses the requester about the review outcome.
func ChangeRequestReviewedNotification(id string, req ChangeRequest, at time.Time) Notification {
	n := Notification{
		NotificationID:  id,
		BusinessID:      req.BusinessID,
		RecipientUserID: req.RequestedByUserID,
		ReferenceType:   ReferenceChangeRequest,
		ReferenceID:     req.RequestID,
		CreatedAt:       at,
	}
	if req.Status == StatusApproved {
		n.Type = NotificationChangeRequestApproved
		n.Title = "Change request approved"
		n.Message = fmt.Sprintf("Your request to %s an entry was approved", verb(req.RequestType))
	} else {
		n.Type = NotificationChangeRequestRejected
		n.Title = "Change request rejected"
		n.Message = fmt.Sprintf("Your request to %s an entry was rejected", verb(req.RequestType))
	}
	if req.ReviewNotes != nil && *req.ReviewNotes != "" {
		n.Message += ": " + *req.ReviewNotes
	}
	return n
}

func verb(t ChangeRequestType) string {
	if t == RequestDelete {
		return "delete"
	}
	return "update"
}
