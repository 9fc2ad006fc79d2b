package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

// ToModelChangeRequest encodes the proposed changes and the snapshot as JSON documents.
func ToModelChangeRequest(d domain.ChangeRequest) (models.ChangeRequest, error) {
	original, err := json.Marshal(d.OriginalData)
	if err != nil {
		return models.ChangeRequest{}, fmt.Errorf("encode original data: %w", err)
	}
	var proposed []byte
	if d.ProposedChanges != nil {
		proposed, err = json.Marshal(d.ProposedChanges)
		if err != nil {
			return models.ChangeRequest{}, fmt.Errorf("encode proposed changes: %w", err)
		}
	}
	m := models.ChangeRequest{
		RequestID:         d.RequestID,
		BusinessID:        d.BusinessID,
		EntryID:           d.EntryID,
		RequestType:       string(d.RequestType),
		Status:            string(d.Status),
		ProposedChanges:   proposed,
		OriginalData:      original,
		Reason:            d.Reason,
		RequestedByUserID: d.RequestedByUserID,
		ReviewedByUserID:  d.ReviewedByUserID,
		ReviewNotes:       d.ReviewNotes,
		ReviewedAt:        d.ReviewedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.RequestedByName != "" {
		m.RequestedByName = &d.RequestedByName
	}
	return m, nil
}

func ToDomainChangeRequest(m models.ChangeRequest) (domain.ChangeRequest, error) {
	d := domain.ChangeRequest{
		RequestID:         m.RequestID,
		BusinessID:        m.BusinessID,
		EntryID:           m.EntryID,
		RequestType:       domain.ChangeRequestType(m.RequestType),
		Status:            domain.ChangeRequestStatus(m.Status),
		Reason:            m.Reason,
		RequestedByUserID: m.RequestedByUserID,
		ReviewedByUserID:  m.ReviewedByUserID,
		ReviewNotes:       m.ReviewNotes,
		ReviewedAt:        m.ReviewedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.RequestedByName != nil {
		d.RequestedByName = *m.RequestedByName
	}
	if err := json.Unmarshal(m.OriginalData, &d.OriginalData); err != nil {
		return domain.ChangeRequest{}, fmt.Errorf("decode original data of %s: %w", m.RequestID, err)
	}
	if len(m.ProposedChanges) > 0 && string(m.ProposedChanges) != "null" {
		var changes domain.CashEntryChanges
		if err := json.Unmarshal(m.ProposedChanges, &changes); err != nil {
			return domain.ChangeRequest{}, fmt.Errorf("decode proposed changes of %s: %w", m.RequestID, err)
		}
		d.ProposedChanges = &changes
	}
	return d, nil
}

func ToDomainChangeRequestSlice(ms []models.ChangeRequest) ([]domain.ChangeRequest, error) {
	ds := make([]domain.ChangeRequest, len(ms))
	for i, m := range ms {
		d, err := ToDomainChangeRequest(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

func ToDomainChangeRequestSummary(m models.ChangeRequestSummary) domain.ChangeRequestSummary {
	return domain.ChangeRequestSummary{
		PendingCount:  m.PendingCount,
		ApprovedCount: m.ApprovedCount,
		RejectedCount: m.RejectedCount,
		TotalCount:    m.TotalCount,
	}
}
