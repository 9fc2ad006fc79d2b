package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReportSvcFacade builds summaries and downloadable exports.
type ReportSvcFacade interface {
	GetSummary(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*dto.ReportSummary, error)
	ExportCashbook(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*ExportFile, error)
	// ExportPartyLedger renders the ledger as "xlsx" or "pdf".
	ExportPartyLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, format string, userID string) (*ExportFile, error)
}
