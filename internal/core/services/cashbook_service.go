package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/accounting"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

type cashbookService struct {
	BaseService
	entryMutator
	txManager      portsrepo.TransactionManager
	changeRequests portssvc.ChangeRequestWriterSvc
}

// CashbookServiceOption is a function that configures a cashbookService
type CashbookServiceOption func(*cashbookService)

// WithCashbookAuthorizer sets the business authorizer for the service
func WithCashbookAuthorizer(authorizer portssvc.BusinessAuthorizerSvc) CashbookServiceOption {
	return func(s *cashbookService) {
		s.BusinessAuthorizer = authorizer
	}
}

// NewCashbookService creates a new cashbook service. Gated updates and deletes are
// filed through changeRequests.
func NewCashbookService(
	txManager portsrepo.TransactionManager,
	entryRepo portsrepo.CashEntryRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	partyRepo portsrepo.PartyReader,
	partyBalance portssvc.PartyBalanceSvc,
	changeRequests portssvc.ChangeRequestWriterSvc,
	opts ...CashbookServiceOption,
) portssvc.CashbookSvcFacade {
	s := &cashbookService{
		entryMutator: entryMutator{
			entryRepo:    entryRepo,
			categoryRepo: categoryRepo,
			partyRepo:    partyRepo,
			partyBalance: partyBalance,
		},
		txManager:      txManager,
		changeRequests: changeRequests,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CashbookSvcFacade = (*cashbookService)(nil)

func (s *cashbookService) GetEntry(ctx context.Context, businessID, entryID, userID string) (*domain.CashEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.findEntry(ctx, businessID, entryID)
}

func (s *cashbookService) findEntry(ctx context.Context, businessID, entryID string) (*domain.CashEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, businessID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("entry not found")
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// entryFilter converts list parameters into a repository filter.
func entryFilter(params dto.ListCashEntriesParams) (domain.CashEntryFilter, error) {
	var filter domain.CashEntryFilter
	if params.EntryType != "" {
		t, err := domain.ParseEntryType(params.EntryType)
		if err != nil {
			return filter, err
		}
		filter.EntryType = &t
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}
	if params.PartyID != "" {
		filter.PartyID = &params.PartyID
	}
	dates, err := params.ToDateRange()
	if err != nil {
		return filter, err
	}
	filter.Dates = dates
	return filter, nil
}

// ascendingWindow maps a display page onto the chronological row window it shows.
// For descending display the first page holds the newest rows, i.e. the tail of the
// ascending order.
func ascendingWindow(total int64, offset, limit int, descending bool) (ascOffset, ascLimit int) {
	if !descending {
		return offset, limit
	}
	end := int(total) - offset
	if end <= 0 {
		return 0, 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}
	return start, end - start
}

func (s *cashbookService) ListEntries(ctx context.Context, businessID string, params dto.ListCashEntriesParams, userID string) (*dto.CashbookPage, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	filter, err := entryFilter(params)
	if err != nil {
		return nil, err
	}

	summary, err := s.entryRepo.SummarizeEntries(ctx, businessID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize entries", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to summarize entries: %w", err)
	}

	p := params.ToParams()
	descending := !strings.EqualFold(params.Sort, "asc")

	// The total is needed before the window can be placed, so ask for an empty page first.
	_, total, err := s.entryRepo.ListEntries(ctx, businessID, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	lines := []dto.CashEntryLine{}
	ascOffset, ascLimit := ascendingWindow(total, p.Offset(), p.Limit(), descending)
	if ascLimit > 0 {
		entries, _, err := s.entryRepo.ListEntries(ctx, businessID, filter, ascLimit, ascOffset)
		if err != nil {
			s.LogError(ctx, err, "Failed to list entries", slog.String("business_id", businessID))
			return nil, fmt.Errorf("failed to list entries: %w", err)
		}
		broughtForward, err := s.entryRepo.BalanceBroughtForward(ctx, businessID, filter, ascOffset)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance brought forward: %w", err)
		}
		signed, err := accounting.CashEntries(entries)
		if err != nil {
			return nil, err
		}
		result := accounting.Accumulate(broughtForward, signed)

		lines = make([]dto.CashEntryLine, len(entries))
		for i, e := range entries {
			lines[i] = dto.CashEntryLine{CashEntry: e, RunningBalance: result.PerEntryBalance[i]}
		}
		if descending {
			slices.Reverse(lines)
		}
	}

	return &dto.CashbookPage{
		Page:    pagination.NewPage(lines, total, p),
		Summary: summary,
	}, nil
}

func (s *cashbookService) CreateEntry(ctx context.Context, businessID string, req dto.CreateCashEntryRequest, userID string) (*domain.CashEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	entryType, err := domain.ParseEntryType(req.EntryType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := domain.CashEntry{
		EntryID:     uuid.NewString(),
		BusinessID:  businessID,
		EntryType:   entryType,
		Amount:      req.Amount,
		EntryDate:   req.EntryDate.Time,
		CategoryID:  nonEmpty(req.CategoryID),
		Description: nonEmpty(req.Description),
		PartyID:     nonEmpty(req.PartyID),
		DueDate:     dto.DatePtr(req.DueDate),
		AuditFields: newAuditFields(userID, now),
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		return s.create(txCtx, &entry)
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to create entry", slog.String("business_id", businessID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Cash entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_type", string(entry.EntryType)))
	return &entry, nil
}

func (s *cashbookService) UpdateEntry(ctx context.Context, businessID, entryID string, req dto.UpdateCashEntryRequest, userID string) (*dto.MutationResult, error) {
	member, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	changes, err := req.ToChanges()
	if err != nil {
		return nil, err
	}

	if !member.CanDirectlyMutate(domain.ActionEdit) {
		proposed := dto.ProposedChanges{
			EntryType:   req.EntryType,
			Amount:      req.Amount,
			EntryDate:   req.EntryDate,
			CategoryID:  req.CategoryID,
			Description: req.Description,
			PartyID:     req.PartyID,
			DueDate:     req.DueDate,
		}
		cr, err := s.changeRequests.CreateChangeRequest(ctx, businessID, dto.CreateChangeRequestRequest{
			EntryID:         entryID,
			RequestType:     domain.RequestUpdate,
			ProposedChanges: &proposed,
			Reason:          req.Reason,
		}, userID)
		if err != nil {
			return nil, err
		}
		return &dto.MutationResult{Applied: false, ChangeRequest: cr}, nil
	}

	var updated *domain.CashEntry
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err := s.findEntry(txCtx, businessID, entryID)
		if err != nil {
			return err
		}
		diff := entry.Diff(changes)
		if diff.IsEmpty() {
			updated = entry
			return nil
		}
		if err := s.update(txCtx, entry, diff, nonEmpty(&req.Reason), userID, s.now()); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return &dto.MutationResult{Applied: true, Entry: updated}, nil
}

func (s *cashbookService) DeleteEntry(ctx context.Context, businessID, entryID string, reason string, userID string) (*dto.MutationResult, error) {
	member, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}

	if !member.CanDirectlyMutate(domain.ActionDelete) {
		cr, err := s.changeRequests.CreateChangeRequest(ctx, businessID, dto.CreateChangeRequestRequest{
			EntryID:     entryID,
			RequestType: domain.RequestDelete,
			Reason:      reason,
		}, userID)
		if err != nil {
			return nil, err
		}
		return &dto.MutationResult{Applied: false, ChangeRequest: cr}, nil
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err := s.findEntry(txCtx, businessID, entryID)
		if err != nil {
			return err
		}
		return s.delete(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Cash entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return &dto.MutationResult{Applied: true}, nil
}

// nonEmpty treats a blank optional string as absent.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
