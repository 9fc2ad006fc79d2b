package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashEntryReader defines read operations for cashbook entries.
// Every list is ordered chronologically: entry_date, then created_at, ascending.
type CashEntryReader interface {
	FindEntryByID(ctx context.Context, businessID, entryID string) (*domain.CashEntry, error)

	// ListEntries returns one window of the filtered entries and the total number of matches.
	// A limit of zero only counts.
	ListEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter, limit, offset int) ([]domain.CashEntry, int64, error)

	// ListAllEntries returns every filtered entry. Used for exports and party ledgers.
	ListAllEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CashEntry, error)

	// BalanceBroughtForward is income minus expense over the first offset filtered entries,
	// i.e. the running balance just before the window ListEntries returns for that offset.
	BalanceBroughtForward(ctx context.Context, businessID string, filter domain.CashEntryFilter, offset int) (decimal.Decimal, error)

	// SummarizeEntries totals the filtered entries.
	SummarizeEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) (domain.CashbookSummary, error)

	// CategoryTotals totals the filtered entries per category and type.
	CategoryTotals(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CategoryTotal, error)
}

// CashEntryWriter defines write operations for cashbook entries
type CashEntryWriter interface {
	SaveEntry(ctx context.Context, entry domain.CashEntry) error
	UpdateEntry(ctx context.Context, entry domain.CashEntry) error
	// DeleteEntry returns apperrors.ErrNotFound when the entry does not exist.
	DeleteEntry(ctx context.Context, businessID, entryID string) error
}

// CashEntryRepositoryFacade combines all cashbook-related repository interfaces
type CashEntryRepositoryFacade interface {
	CashEntryReader
	CashEntryWriter
}
