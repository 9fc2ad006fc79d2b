package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
)

type PartyReaderSvc interface {
	ListParties(ctx context.Context, businessID string, params dto.ListPartiesParams, userID string) (*pagination.Page[domain.Party], error)
	GetParty(ctx context.Context, businessID, partyID, userID string) (*domain.Party, error)
	// GetLedger returns the party statement with chronological running balances.
	GetLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, userID string) (*domain.PartyLedger, error)
}

type PartyWriterSvc interface {
	CreateParty(ctx context.Context, businessID string, req dto.CreatePartyRequest, userID string) (*domain.Party, error)
	UpdateParty(ctx context.Context, businessID, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)
	DeleteParty(ctx context.Context, businessID, partyID, userID string) error
}

// PartyBalanceSvc keeps Party.CurrentBalance in step with the party's entries.
type PartyBalanceSvc interface {
	// RecalculateBalance recomputes the balance as a sum. Call it inside the transaction that changed the entries.
	RecalculateBalance(ctx context.Context, businessID, partyID string) error
}

// PartySvcFacade combines all party service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
	PartyBalanceSvc
}
