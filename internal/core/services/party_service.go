package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/accounting"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type partyService struct {
	BaseService
	txManager portsrepo.TransactionManager
	partyRepo portsrepo.PartyRepositoryFacade
	entryRepo portsrepo.CashEntryReader
}

// NewPartyService creates a new party service.
func NewPartyService(txManager portsrepo.TransactionManager, partyRepo portsrepo.PartyRepositoryFacade, entryRepo portsrepo.CashEntryReader, authorizer portssvc.BusinessAuthorizerSvc) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		txManager:   txManager,
		partyRepo:   partyRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

func (s *partyService) findParty(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	return checkParty(s.partyRepo.FindPartyByID(ctx, businessID, partyID))
}

// lockParty loads the party under a row lock. Call it inside a transaction.
func (s *partyService) lockParty(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	return checkParty(s.partyRepo.LockPartyByID(ctx, businessID, partyID))
}

func checkParty(party *domain.Party, err error) (*domain.Party, error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("party not found")
		}
		return nil, fmt.Errorf("failed to load party: %w", err)
	}
	return party, nil
}

func (s *partyService) ListParties(ctx context.Context, businessID string, params dto.ListPartiesParams, userID string) (*pagination.Page[domain.Party], error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	var partyType *domain.PartyType
	if params.PartyType != "" {
		t := domain.PartyType(strings.ToUpper(params.PartyType))
		if !t.IsValid() {
			return nil, apperrors.NewValidationFailedError("party type must be CUSTOMER, SUPPLIER or BOTH")
		}
		partyType = &t
	}
	p := params.ToParams()
	parties, total, err := s.partyRepo.ListParties(ctx, businessID, partyType, strings.TrimSpace(params.Search), p.Limit(), p.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	page := pagination.NewPage(parties, total, p)
	return &page, nil
}

func (s *partyService) GetParty(ctx context.Context, businessID, partyID, userID string) (*domain.Party, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.findParty(ctx, businessID, partyID)
}

func (s *partyService) GetLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, userID string) (*domain.PartyLedger, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	party, err := s.findParty(ctx, businessID, partyID)
	if err != nil {
		return nil, err
	}

	opening := party.OpeningBalance
	if dates.From != nil {
		before := dates.From.AddDate(0, 0, -1)
		prior, err := s.entryRepo.SummarizeEntries(ctx, businessID, domain.CashEntryFilter{
			PartyID: &partyID,
			Dates:   domain.DateRange{To: &before},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance brought forward: %w", err)
		}
		opening = opening.Add(prior.NetBalance)
	}

	entries, err := s.entryRepo.ListAllEntries(ctx, businessID, domain.CashEntryFilter{PartyID: &partyID, Dates: dates})
	if err != nil {
		s.LogError(ctx, err, "Failed to load party entries", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to load party entries: %w", err)
	}
	accounting.SortChronologically(entries, func(e domain.CashEntry) (time.Time, time.Time) {
		return e.EntryDate, e.CreatedAt
	})
	signed, err := accounting.CashEntries(entries)
	if err != nil {
		return nil, err
	}
	result := accounting.Accumulate(opening, signed)

	lines := make([]domain.PartyLedgerEntry, len(entries))
	for i, e := range entries {
		line := domain.PartyLedgerEntry{
			EntryID:        e.EntryID,
			EntryDate:      e.EntryDate,
			EntryType:      e.EntryType,
			Description:    e.Description,
			Amount:         e.Amount,
			Debit:          decimal.Zero,
			Credit:         decimal.Zero,
			RunningBalance: result.PerEntryBalance[i],
		}
		if e.EntryType == domain.EntryIncome {
			line.Debit = e.Amount
		} else {
			line.Credit = e.Amount
		}
		lines[i] = line
	}

	// Jama (income) is reported as debit and Naam (expense) as credit.
	return &domain.PartyLedger{
		Party:          *party,
		OpeningBalance: opening,
		TotalDebit:     result.TotalCredit,
		TotalCredit:    result.TotalDebit,
		NetBalance:     result.NetBalance,
		Entries:        lines,
	}, nil
}

func (s *partyService) CreateParty(ctx context.Context, businessID string, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.PartyType.IsValid() {
		return nil, apperrors.NewValidationFailedError("party type must be CUSTOMER, SUPPLIER or BOTH")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("party name is required")
	}

	party := domain.Party{
		PartyID:        uuid.NewString(),
		BusinessID:     businessID,
		Name:           name,
		PartyType:      req.PartyType,
		Phone:          nonEmpty(req.Phone),
		Email:          nonEmpty(req.Email),
		Address:        nonEmpty(req.Address),
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields:    newAuditFields(userID, s.now()),
	}
	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID))
	return &party, nil
}

func (s *partyService) UpdateParty(ctx context.Context, businessID, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	var updated *domain.Party
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		party, err := s.lockParty(txCtx, businessID, partyID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationFailedError("party name is required")
			}
			party.Name = name
		}
		if req.PartyType != nil {
			if !req.PartyType.IsValid() {
				return apperrors.NewValidationFailedError("party type must be CUSTOMER, SUPPLIER or BOTH")
			}
			party.PartyType = *req.PartyType
		}
		if req.Phone != nil {
			party.Phone = nonEmpty(req.Phone)
		}
		if req.Email != nil {
			party.Email = nonEmpty(req.Email)
		}
		if req.Address != nil {
			party.Address = nonEmpty(req.Address)
		}
		openingChanged := req.OpeningBalance != nil && !req.OpeningBalance.Equal(party.OpeningBalance)
		if openingChanged {
			party.OpeningBalance = *req.OpeningBalance
		}
		touch(&party.AuditFields, userID, s.now())

		if err := s.partyRepo.UpdateParty(txCtx, *party); err != nil {
			return fmt.Errorf("failed to update party: %w", err)
		}
		if openingChanged {
			balance, err := s.recalculate(txCtx, party)
			if err != nil {
				return err
			}
			party.CurrentBalance = balance
		}
		updated = party
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteParty deactivates the party. Its entries keep the reference.
func (s *partyService) DeleteParty(ctx context.Context, businessID, partyID, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleOwner); err != nil {
		return err
	}
	party, err := s.findParty(ctx, businessID, partyID)
	if err != nil {
		return err
	}
	if !party.IsActive {
		return nil
	}
	party.IsActive = false
	touch(&party.AuditFields, userID, s.now())
	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	s.LogInfo(ctx, "Party deactivated", slog.String("party_id", partyID))
	return nil
}

func (s *partyService) RecalculateBalance(ctx context.Context, businessID, partyID string) error {
	party, err := s.findParty(ctx, businessID, partyID)
	if err != nil {
		return err
	}
	_, err = s.recalculate(ctx, party)
	return err
}

func (s *partyService) recalculate(ctx context.Context, party *domain.Party) (decimal.Decimal, error) {
	entries, err := s.entryRepo.ListAllEntries(ctx, party.BusinessID, domain.CashEntryFilter{PartyID: &party.PartyID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load party entries: %w", err)
	}
	signed, err := accounting.CashEntries(entries)
	if err != nil {
		return decimal.Zero, err
	}
	balance := accounting.SumBalance(party.OpeningBalance, signed)
	if err := s.partyRepo.SetPartyBalance(ctx, party.PartyID, balance); err != nil {
		s.LogError(ctx, err, "Failed to store party balance", slog.String("party_id", party.PartyID))
		return decimal.Zero, fmt.Errorf("failed to store party balance: %w", err)
	}
	return balance, nil
}
