package models

import "time"

// ChangeRequest is a row of change_requests. ProposedChanges and OriginalData are raw JSONB.
type ChangeRequest struct {
	RequestID         string     `db:"request_id"`
	BusinessID        string     `db:"business_id"`
	EntryID           string     `db:"entry_id"`
	RequestType       string     `db:"request_type"`
	Status            string     `db:"status"`
	ProposedChanges   []byte     `db:"proposed_changes"`
	OriginalData      []byte     `db:"original_data"`
	Reason            string     `db:"reason"`
	RequestedByUserID string     `db:"requested_by_user_id"`
	RequestedByName   *string    `db:"requested_by_name"`
	ReviewedByUserID  *string    `db:"reviewed_by_user_id"`
	ReviewNotes       *string    `db:"review_notes"`
	ReviewedAt        *time.Time `db:"reviewed_at"`
	AuditFields
}

type ChangeRequestSummary struct {
	PendingCount  int64 `db:"pending_count"`
	ApprovedCount int64 `db:"approved_count"`
	RejectedCount int64 `db:"rejected_count"`
	TotalCount    int64 `db:"total_count"`
}
