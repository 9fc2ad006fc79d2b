package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

// BusinessReader defines read operations for businesses
type BusinessReader interface {
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	// ListBusinessesForUser returns the businesses the user is an active member of.
	ListBusinessesForUser(ctx context.Context, userID string) ([]domain.BusinessMembership, error)
}

// BusinessWriter defines write operations for businesses
type BusinessWriter interface {
	// SaveBusiness persists the business and its owner membership together.
	SaveBusiness(ctx context.Context, business domain.Business, owner domain.BusinessUser) error
}

// StaffReader defines read operations for business memberships
type StaffReader interface {
	// FindStaffMember looks up the membership of userID in businessID, active or not.
	FindStaffMember(ctx context.Context, businessID, userID string) (*domain.BusinessUser, error)
	FindStaffByID(ctx context.Context, businessID, businessUserID string) (*domain.BusinessUser, error)
	ListStaff(ctx context.Context, businessID string) ([]domain.BusinessUser, error)
}

// StaffWriter defines write operations for business memberships
type StaffWriter interface {
	// SaveStaff returns apperrors.ErrDuplicate when the user already has a membership.
	SaveStaff(ctx context.Context, staff domain.BusinessUser) error
	UpdateStaff(ctx context.Context, staff domain.BusinessUser) error
}

// BusinessRepositoryFacade combines all business-related repository interfaces
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
	StaffReader
	StaffWriter
}
