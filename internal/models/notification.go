package models

import "time"

type Notification struct {
	NotificationID  string     `db:"notification_id"`
	BusinessID      string     `db:"business_id"`
	RecipientUserID string     `db:"recipient_user_id"`
	Type            string     `db:"type"`
	ReferenceType   string     `db:"reference_type"`
	ReferenceID     string     `db:"reference_id"`
	Title           string     `db:"title"`
	Message         string     `db:"message"`
	IsRead          bool       `db:"is_read"`
	ReadAt          *time.Time `db:"read_at"`
	CreatedAt       time.Time  `db:"created_at"`
}
