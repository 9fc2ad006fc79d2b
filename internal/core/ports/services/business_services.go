package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

type BusinessReaderSvc interface {
	GetBusiness(ctx context.Context, businessID, userID string) (*domain.BusinessMembership, error)
	ListBusinesses(ctx context.Context, userID string) ([]domain.BusinessMembership, error)
}

type BusinessWriterSvc interface {
	// CreateBusiness creates a business with the creator as its only owner.
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error)
}

// StaffSvc manages memberships. Every method is owner-only.
type StaffSvc interface {
	ListStaff(ctx context.Context, businessID, userID string) ([]domain.BusinessUser, error)
	AddStaff(ctx context.Context, businessID string, req dto.AddStaffRequest, ownerUserID string) (*domain.BusinessUser, error)
	UpdateStaff(ctx context.Context, businessID, businessUserID string, req dto.UpdateStaffRequest, ownerUserID string) (*domain.BusinessUser, error)
	// RemoveStaff deactivates the membership.
	RemoveStaff(ctx context.Context, businessID, businessUserID, ownerUserID string) error
}

// BusinessAuthorizerSvc is the shared role check.
type BusinessAuthorizerSvc interface {
	// AuthorizeMember returns the caller's active membership when its role is at least minRole.
	// Non-members get apperrors.ErrNotFound so business ids are not disclosed; members with a
	// lower role get apperrors.ErrForbidden.
	AuthorizeMember(ctx context.Context, userID, businessID string, minRole domain.StaffRole) (*domain.BusinessUser, error)
	// BusinessOwner returns the owner's user id.
	BusinessOwner(ctx context.Context, businessID string) (string, error)
}

// BusinessSvcFacade combines all business-related service interfaces
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
	StaffSvc
	BusinessAuthorizerSvc
}
