package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type PartyReader interface {
	FindPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error)
	// LockPartyByID loads the party with a row lock held until the surrounding transaction ends.
	LockPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error)
	// ListParties filters by type and by a case-insensitive name search when given.
	ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, search string, limit, offset int) ([]domain.Party, int64, error)
}

type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.Party) error
	UpdateParty(ctx context.Context, party domain.Party) error
	// SetPartyBalance stores a recomputed current balance.
	SetPartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
