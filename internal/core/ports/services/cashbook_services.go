package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

type CashbookReaderSvc interface {
	GetEntry(ctx context.Context, businessID, entryID, userID string) (*domain.CashEntry, error)
	// ListEntries returns one page with running balances computed in chronological order,
	// whatever the display order.
	ListEntries(ctx context.Context, businessID string, params dto.ListCashEntriesParams, userID string) (*dto.CashbookPage, error)
}

type CashbookWriterSvc interface {
	CreateEntry(ctx context.Context, businessID string, req dto.CreateCashEntryRequest, userID string) (*domain.CashEntry, error)
	// UpdateEntry applies the change directly when the caller may, otherwise files a change request.
	UpdateEntry(ctx context.Context, businessID, entryID string, req dto.UpdateCashEntryRequest, userID string) (*dto.MutationResult, error)
	// DeleteEntry deletes directly when the caller may, otherwise files a change request.
	DeleteEntry(ctx context.Context, businessID, entryID string, reason string, userID string) (*dto.MutationResult, error)
}

// CashbookSvcFacade combines all cashbook service interfaces
type CashbookSvcFacade interface {
	CashbookReaderSvc
	CashbookWriterSvc
}
