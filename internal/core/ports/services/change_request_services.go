package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
)

type ChangeRequestReaderSvc interface {
	GetChangeRequest(ctx context.Context, businessID, requestID, userID string) (*domain.ChangeRequest, error)
	// ListChangeRequests is owner-only; staff use ListMyChangeRequests.
	ListChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error)
	ListMyChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error)
	// GetSummary counts all requests for the owner and the caller's own requests for staff.
	GetSummary(ctx context.Context, businessID, userID string) (*domain.ChangeRequestSummary, error)
}

type ChangeRequestWriterSvc interface {
	// CreateChangeRequest files a request and notifies the owner in the same transaction.
	CreateChangeRequest(ctx context.Context, businessID string, req dto.CreateChangeRequestRequest, requesterID string) (*domain.ChangeRequest, error)
	// ReviewChangeRequest is owner-only. A request that is no longer pending yields
	// apperrors.ErrInvalidState and leaves the entry untouched.
	ReviewChangeRequest(ctx context.Context, businessID, requestID string, req dto.ReviewChangeRequestRequest, reviewerID string) (*domain.ChangeRequest, error)
	// WithdrawChangeRequest lets the requester drop a pending request.
	WithdrawChangeRequest(ctx context.Context, businessID, requestID, userID string) error
}

// ChangeRequestSvcFacade combines all change-request service interfaces
type ChangeRequestSvcFacade interface {
	ChangeRequestReaderSvc
	ChangeRequestWriterSvc
}
