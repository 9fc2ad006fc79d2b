package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
)

type ChangeRequestType string

const (
	RequestUpdate ChangeRequestType = "UPDATE"
	RequestDelete ChangeRequestType = "DELETE"
)

// Action returns the gate action the request stands in for.
func (t ChangeRequestType) Action() MutationAction {
	if t == RequestDelete {
		return ActionDelete
	}
	return ActionEdit
}

type ChangeRequestStatus string

const (
	StatusPending  ChangeRequestStatus = "PENDING"
	StatusApproved ChangeRequestStatus = "APPROVED"
	StatusRejected ChangeRequestStatus = "REJECTED"
)

func (s ChangeRequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ChangeRequest is a proposed edit or delete of a cash entry awaiting the owner's review.
// PENDING is the only state that may change; APPROVED and REJECTED are final.
type ChangeRequest struct {
	RequestID         string              `json:"requestID"`
	BusinessID        string              `json:"businessID"`
	EntryID           string              `json:"entryID"`
	RequestType       ChangeRequestType   `json:"requestType"`
	Status            ChangeRequestStatus `json:"status"`
	ProposedChanges   *CashEntryChanges   `json:"proposedChanges,omitempty"`
	OriginalData      CashEntrySnapshot   `json:"originalData"`
	Reason            string              `json:"reason"`
	RequestedByUserID string              `json:"requestedByUserID"`
	RequestedByName   string              `json:"requestedByName,omitempty"`
	ReviewedByUserID  *string             `json:"reviewedByUserID,omitempty"`
	ReviewNotes       *string             `json:"reviewNotes,omitempty"`
	ReviewedAt        *time.Time          `json:"reviewedAt,omitempty"`
	AuditFields
}

// ValidateReason rejects an empty or whitespace-only reason.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}
	return nil
}

// Review moves a pending request to its final state.
func (r *ChangeRequest) Review(approve bool, reviewerID string, notes *string, at time.Time) error {
	if r.Status != StatusPending {
		return apperrors.NewInvalidStateError(fmt.Sprintf("change request is already %s", strings.ToLower(string(r.Status))))
	}
	if approve {
		r.Status = StatusApproved
	} else {
		r.Status = StatusRejected
	}
	r.ReviewedByUserID = &reviewerID
	r.ReviewNotes = notes
	r.ReviewedAt = &at
	r.LastUpdatedAt = at
	r.LastUpdatedBy = reviewerID
	return nil
}

// ChangeRequestFilter narrows change-request listings.
type ChangeRequestFilter struct {
	Status            *ChangeRequestStatus
	RequestedByUserID *string
}

type ChangeRequestSummary struct {
	PendingCount  int64 `json:"pendingCount"`
	ApprovedCount int64 `json:"approvedCount"`
	RejectedCount int64 `json:"rejectedCount"`
	TotalCount    int64 `json:"totalCount"`
}
