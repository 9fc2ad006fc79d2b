package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

type ChangeRequestReader interface {
	FindChangeRequestByID(ctx context.Context, businessID, requestID string) (*domain.ChangeRequest, error)
	// FindPendingRequestForEntry returns apperrors.ErrNotFound when the entry has no pending request.
	FindPendingRequestForEntry(ctx context.Context, businessID, entryID string) (*domain.ChangeRequest, error)
	// ListChangeRequests returns newest first.
	ListChangeRequests(ctx context.Context, businessID string, filter domain.ChangeRequestFilter, limit, offset int) ([]domain.ChangeRequest, int64, error)
	SummarizeChangeRequests(ctx context.Context, businessID string, requestedBy *string) (domain.ChangeRequestSummary, error)
}

type ChangeRequestWriter interface {
	// SaveChangeRequest returns apperrors.ErrConflict when the entry already has a pending request.
	SaveChangeRequest(ctx context.Context, req domain.ChangeRequest) error
	// UpdateReviewedRequest persists a review. The row is only updated while it is still
	// PENDING; otherwise apperrors.ErrInvalidState is returned.
	UpdateReviewedRequest(ctx context.Context, req domain.ChangeRequest) error
	// DeletePendingRequest removes a request that is still PENDING.
	DeletePendingRequest(ctx context.Context, businessID, requestID string) error
}

// ChangeRequestRepositoryFacade combines all change-request repository interfaces
type ChangeRequestRepositoryFacade interface {
	ChangeRequestReader
	ChangeRequestWriter
}
