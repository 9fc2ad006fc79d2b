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
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// noopLocker grants every lock. The conditional update on review still guards against races.
type noopLocker struct{}

func (noopLocker) Obtain(context.Context, string) (func(context.Context), error) {
	return func(context.Context) {}, nil
}

func reviewLockKey(requestID string) string {
	return "changerequest:review:" + requestID
}

type changeRequestService struct {
	BaseService
	entryMutator
	txManager   portsrepo.TransactionManager
	requestRepo portsrepo.ChangeRequestRepositoryFacade
	userRepo    portsrepo.UserReader
	notifier    portssvc.NotificationEmitterSvc
	locker      portsrepo.Locker
}

// ChangeRequestServiceOption is a function that configures a changeRequestService
type ChangeRequestServiceOption func(*changeRequestService)

// WithBusinessAuthorizer sets the business authorizer for the service
func WithBusinessAuthorizer(authorizer portssvc.BusinessAuthorizerSvc) ChangeRequestServiceOption {
	return func(s *changeRequestService) {
		s.BusinessAuthorizer = authorizer
	}
}

// WithReviewLocker sets the lock taken while a request is being reviewed.
func WithReviewLocker(locker portsrepo.Locker) ChangeRequestServiceOption {
	return func(s *changeRequestService) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// NewChangeRequestService creates a new change-request service.
func NewChangeRequestService(
	txManager portsrepo.TransactionManager,
	requestRepo portsrepo.ChangeRequestRepositoryFacade,
	entryRepo portsrepo.CashEntryRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	partyRepo portsrepo.PartyReader,
	userRepo portsrepo.UserReader,
	partyBalance portssvc.PartyBalanceSvc,
	notifier portssvc.NotificationEmitterSvc,
	opts ...ChangeRequestServiceOption,
) portssvc.ChangeRequestSvcFacade {
	s := &changeRequestService{
		entryMutator: entryMutator{
			entryRepo:    entryRepo,
			categoryRepo: categoryRepo,
			partyRepo:    partyRepo,
			partyBalance: partyBalance,
		},
		txManager:   txManager,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		locker:      noopLocker{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ChangeRequestSvcFacade = (*changeRequestService)(nil)

func (s *changeRequestService) CreateChangeRequest(ctx context.Context, businessID string, req dto.CreateChangeRequestRequest, requesterID string) (*domain.ChangeRequest, error) {
	member, err := s.AuthorizeUser(ctx, requesterID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	if member.Role == domain.RoleOwner {
		return nil, apperrors.NewValidationFailedError("owners change entries directly")
	}
	if err := domain.ValidateReason(req.Reason); err != nil {
		return nil, err
	}
	if req.RequestType != domain.RequestUpdate && req.RequestType != domain.RequestDelete {
		return nil, apperrors.NewValidationFailedError("request type must be UPDATE or DELETE")
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, businessID, req.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("entry not found")
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}

	now := s.now()
	cr := domain.ChangeRequest{
		RequestID:         uuid.NewString(),
		BusinessID:        businessID,
		EntryID:           entry.EntryID,
		RequestType:       req.RequestType,
		Status:            domain.StatusPending,
		OriginalData:      entry.Snapshot(),
		Reason:            strings.TrimSpace(req.Reason),
		RequestedByUserID: requesterID,
		RequestedByName:   s.requesterName(ctx, requesterID),
		AuditFields:       newAuditFields(requesterID, now),
	}

	if req.RequestType == domain.RequestUpdate {
		diff, err := s.proposedDiff(ctx, *entry, req.ProposedChanges)
		if err != nil {
			return nil, err
		}
		cr.ProposedChanges = &diff
	}

	var created *domain.Notification
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.requestRepo.FindPendingRequestForEntry(txCtx, businessID, entry.EntryID); err == nil {
			return apperrors.NewConflictError("entry already has a pending change request")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check pending requests: %w", err)
		}

		if err := s.requestRepo.SaveChangeRequest(txCtx, cr); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.NewConflictError("entry already has a pending change request")
			}
			return fmt.Errorf("failed to save change request: %w", err)
		}

		ownerID, err := s.BusinessAuthorizer.BusinessOwner(txCtx, businessID)
		if err != nil {
			return err
		}
		created, err = s.notifier.OnChangeRequestCreated(txCtx, cr, ownerID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create change request",
			slog.String("business_id", businessID),
			slog.String("entry_id", req.EntryID))
		return nil, err
	}
	s.notifier.AfterCommit(ctx, created)

	s.LogInfo(ctx, "Change request created",
		slog.String("request_id", cr.RequestID),
		slog.String("request_type", string(cr.RequestType)),
		slog.String("entry_id", cr.EntryID))
	return &cr, nil
}

// proposedDiff keeps only the fields that differ from the entry and checks that the
// resulting entry would be valid.
func (s *changeRequestService) proposedDiff(ctx context.Context, entry domain.CashEntry, proposed *dto.ProposedChanges) (domain.CashEntryChanges, error) {
	if proposed == nil {
		return domain.CashEntryChanges{}, apperrors.NewValidationFailedError("proposed changes are required for an update")
	}
	changes, err := proposed.ToChanges()
	if err != nil {
		return domain.CashEntryChanges{}, err
	}
	diff := entry.Diff(changes)
	if diff.IsEmpty() {
		return diff, apperrors.NewValidationFailedError("proposed changes do not differ from the entry")
	}

	preview := entry
	preview.Apply(diff)
	if err := preview.Validate(); err != nil {
		return diff, err
	}
	if err := s.resolveRefs(ctx, &preview); err != nil {
		return diff, err
	}
	return diff, nil
}

func (s *changeRequestService) requesterName(ctx context.Context, userID string) string {
	if s.userRepo == nil {
		return ""
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogDebug(ctx, "Could not resolve requester name", slog.String("user_id", userID))
		return ""
	}
	return user.Name
}

func (s *changeRequestService) ReviewChangeRequest(ctx context.Context, businessID, requestID string, req dto.ReviewChangeRequestRequest, reviewerID string) (*domain.ChangeRequest, error) {
	if _, err := s.AuthorizeUser(ctx, reviewerID, businessID, domain.RoleOwner); err != nil {
		return nil, err
	}
	if req.Approve == nil {
		return nil, apperrors.NewValidationFailedError("approve is required")
	}
	approve := *req.Approve

	release, err := s.locker.Obtain(ctx, reviewLockKey(requestID))
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewInvalidStateError("change request is being reviewed")
		}
		return nil, fmt.Errorf("failed to lock change request: %w", err)
	}
	defer release(context.WithoutCancel(ctx))

	var (
		reviewed *domain.ChangeRequest
		notified *domain.Notification
	)
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		cr, err := s.requestRepo.FindChangeRequestByID(txCtx, businessID, requestID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("change request not found")
			}
			return fmt.Errorf("failed to load change request: %w", err)
		}

		now := s.now()
		if err := cr.Review(approve, reviewerID, req.ReviewNotes, now); err != nil {
			return err
		}
		// Claim the request first so a concurrent review loses before any entry changes.
		if err := s.requestRepo.UpdateReviewedRequest(txCtx, *cr); err != nil {
			if errors.Is(err, apperrors.ErrInvalidState) {
				return apperrors.NewInvalidStateError("change request was already reviewed")
			}
			return fmt.Errorf("failed to update change request: %w", err)
		}

		if approve {
			if err := s.applyApproved(txCtx, *cr, reviewerID, now); err != nil {
				return err
			}
		}

		notified, err = s.notifier.OnChangeRequestReviewed(txCtx, *cr)
		if err != nil {
			return err
		}
		reviewed = cr
		return nil
	})
	if err != nil {
		if kind := apperrors.KindOf(err); kind == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to review change request", slog.String("request_id", requestID))
		}
		return nil, err
	}
	s.notifier.AfterCommit(ctx, notified)

	s.LogInfo(ctx, "Change request reviewed",
		slog.String("request_id", requestID),
		slog.String("status", string(reviewed.Status)))
	return reviewed, nil
}

func (s *changeRequestService) applyApproved(ctx context.Context, cr domain.ChangeRequest, reviewerID string, at time.Time) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, cr.BusinessID, cr.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInvalidStateError("entry no longer exists")
		}
		return fmt.Errorf("failed to load entry: %w", err)
	}

	switch cr.RequestType {
	case domain.RequestDelete:
		return s.delete(ctx, entry)
	default:
		if cr.ProposedChanges == nil {
			return apperrors.NewInvalidStateError("change request has no proposed changes")
		}
		if entry.ChangedSince(cr.OriginalData, *cr.ProposedChanges) {
			return apperrors.NewInvalidStateError("entry changed since the request was filed")
		}
		reason := cr.Reason
		return s.update(ctx, entry, *cr.ProposedChanges, &reason, reviewerID, at)
	}
}

func (s *changeRequestService) GetChangeRequest(ctx context.Context, businessID, requestID, userID string) (*domain.ChangeRequest, error) {
	member, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	cr, err := s.requestRepo.FindChangeRequestByID(ctx, businessID, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("change request not found")
		}
		return nil, fmt.Errorf("failed to get change request: %w", err)
	}
	if member.Role != domain.RoleOwner && cr.RequestedByUserID != userID {
		return nil, apperrors.NewNotFoundError("change request not found")
	}
	return cr, nil
}

func (s *changeRequestService) ListChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleOwner); err != nil {
		return nil, err
	}
	return s.list(ctx, businessID, params, nil)
}

func (s *changeRequestService) ListMyChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.list(ctx, businessID, params, &userID)
}

func (s *changeRequestService) list(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, requestedBy *string) (*pagination.Page[domain.ChangeRequest], error) {
	filter := domain.ChangeRequestFilter{RequestedByUserID: requestedBy}
	if params.Status != "" {
		status := domain.ChangeRequestStatus(strings.ToUpper(params.Status))
		if !status.IsValid() {
			return nil, apperrors.NewValidationFailedError("status must be PENDING, APPROVED or REJECTED")
		}
		filter.Status = &status
	}

	p := params.ToParams()
	items, total, err := s.requestRepo.ListChangeRequests(ctx, businessID, filter, p.Limit(), p.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list change requests", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list change requests: %w", err)
	}
	page := pagination.NewPage(items, total, p)
	return &page, nil
}

func (s *changeRequestService) GetSummary(ctx context.Context, businessID, userID string) (*domain.ChangeRequestSummary, error) {
	member, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	var requestedBy *string
	if member.Role != domain.RoleOwner {
		requestedBy = &userID
	}
	summary, err := s.requestRepo.SummarizeChangeRequests(ctx, businessID, requestedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize change requests: %w", err)
	}
	return &summary, nil
}

func (s *changeRequestService) WithdrawChangeRequest(ctx context.Context, businessID, requestID, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return err
	}
	cr, err := s.requestRepo.FindChangeRequestByID(ctx, businessID, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("change request not found")
		}
		return fmt.Errorf("failed to load change request: %w", err)
	}
	if cr.RequestedByUserID != userID {
		return apperrors.NewNotFoundError("change request not found")
	}
	if cr.Status != domain.StatusPending {
		return apperrors.NewInvalidStateError(fmt.Sprintf("change request is already %s", strings.ToLower(string(cr.Status))))
	}
	if err := s.requestRepo.DeletePendingRequest(ctx, businessID, requestID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInvalidStateError("change request is no longer pending")
		}
		return fmt.Errorf("failed to withdraw change request: %w", err)
	}
	s.LogInfo(ctx, "Change request withdrawn", slog.String("request_id", requestID))
	return nil
}
