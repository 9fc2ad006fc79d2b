package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/google/uuid"
)

const defaultCurrencyCode = "INR"

// businessService handles businesses and their staff, and is the shared authorizer.
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepositoryFacade
	userRepo     portsrepo.UserReader
}

// NewBusinessService creates a new business service.
func NewBusinessService(businessRepo portsrepo.BusinessRepositoryFacade, userRepo portsrepo.UserReader) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: businessRepo, userRepo: userRepo}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

func (s *businessService) AuthorizeMember(ctx context.Context, userID, businessID string, minRole domain.StaffRole) (*domain.BusinessUser, error) {
	member, err := s.businessRepo.FindStaffMember(ctx, businessID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("business not found")
		}
		s.LogError(ctx, err, "Failed to load business membership", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to authorize user: %w", err)
	}
	if !member.IsActive {
		return nil, apperrors.NewNotFoundError("business not found")
	}
	if !member.Role.AtLeast(minRole) {
		s.LogDebug(ctx, "Role too low for action",
			slog.String("business_id", businessID),
			slog.String("role", string(member.Role)),
			slog.String("required_role", string(minRole)))
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("this action requires the %s role", strings.ToLower(string(minRole))))
	}
	return member, nil
}

func (s *businessService) BusinessOwner(ctx context.Context, businessID string) (string, error) {
	b, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("business not found")
		}
		return "", fmt.Errorf("failed to load business: %w", err)
	}
	return b.OwnerUserID, nil
}

func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error) {
	now := s.now()
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = defaultCurrencyCode
	}

	business := domain.Business{
		BusinessID:   uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		OwnerUserID:  creatorUserID,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields:  newAuditFields(creatorUserID, now),
	}
	owner := domain.BusinessUser{
		BusinessUserID:   uuid.NewString(),
		BusinessID:       business.BusinessID,
		UserID:           creatorUserID,
		Role:             domain.RoleOwner,
		CanDeleteEntries: true,
		IsActive:         true,
		AuditFields:      newAuditFields(creatorUserID, now),
	}

	if err := s.businessRepo.SaveBusiness(ctx, business, owner); err != nil {
		s.LogError(ctx, err, "Failed to save business", slog.String("business_name", business.Name))
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID))
	return &business, nil
}

func (s *businessService) GetBusiness(ctx context.Context, businessID, userID string) (*domain.BusinessMembership, error) {
	member, err := s.AuthorizeMember(ctx, userID, businessID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	b, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("business not found")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &domain.BusinessMembership{Business: *b, Role: member.Role, CanDeleteEntries: member.CanDeleteEntries}, nil
}

func (s *businessService) ListBusinesses(ctx context.Context, userID string) ([]domain.BusinessMembership, error) {
	list, err := s.businessRepo.ListBusinessesForUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list businesses")
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return list, nil
}

func (s *businessService) ListStaff(ctx context.Context, businessID, userID string) ([]domain.BusinessUser, error) {
	if _, err := s.AuthorizeMember(ctx, userID, businessID, domain.RoleOwner); err != nil {
		return nil, err
	}
	staff, err := s.businessRepo.ListStaff(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *businessService) AddStaff(ctx context.Context, businessID string, req dto.AddStaffRequest, ownerUserID string) (*domain.BusinessUser, error) {
	if _, err := s.AuthorizeMember(ctx, ownerUserID, businessID, domain.RoleOwner); err != nil {
		return nil, err
	}
	if req.Role == domain.RoleOwner || !req.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError("staff role must be ACCOUNTANT or VIEWER")
	}

	user, err := s.resolveUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if user.UserID == ownerUserID {
		return nil, apperrors.NewValidationFailedError("the owner is already a member")
	}

	now := s.now()
	existing, err := s.businessRepo.FindStaffMember(ctx, businessID, user.UserID)
	switch {
	case err == nil && existing.IsActive:
		return nil, apperrors.NewAppError(409, "user is already a member of this business", apperrors.ErrDuplicate)
	case err == nil:
		// A removed member is re-activated with the new settings.
		existing.Role = req.Role
		existing.CanDeleteEntries = req.CanDeleteEntries
		existing.IsActive = true
		touch(&existing.AuditFields, ownerUserID, now)
		if err := s.businessRepo.UpdateStaff(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to re-activate staff member: %w", err)
		}
		existing.UserName, existing.UserEmail = user.Name, user.Email
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	staff := domain.BusinessUser{
		BusinessUserID:   uuid.NewString(),
		BusinessID:       businessID,
		UserID:           user.UserID,
		UserName:         user.Name,
		UserEmail:        user.Email,
		Role:             req.Role,
		CanDeleteEntries: req.CanDeleteEntries,
		IsActive:         true,
		AuditFields:      newAuditFields(ownerUserID, now),
	}
	if err := s.businessRepo.SaveStaff(ctx, staff); err != nil {
		s.LogError(ctx, err, "Failed to add staff", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to add staff: %w", err)
	}
	s.LogInfo(ctx, "Staff member added",
		slog.String("business_id", businessID),
		slog.String("staff_user_id", user.UserID),
		slog.String("role", string(req.Role)))
	return &staff, nil
}

func (s *businessService) resolveUser(ctx context.Context, req dto.AddStaffRequest) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if req.UserID != "" {
		user, err = s.userRepo.FindUserByID(ctx, req.UserID)
	} else {
		user, err = s.userRepo.FindUserByEmail(ctx, normalizeEmail(req.Email))
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *businessService) loadStaffForChange(ctx context.Context, businessID, businessUserID, ownerUserID string) (*domain.BusinessUser, error) {
	if _, err := s.AuthorizeMember(ctx, ownerUserID, businessID, domain.RoleOwner); err != nil {
		return nil, err
	}
	staff, err := s.businessRepo.FindStaffByID(ctx, businessID, businessUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("staff member not found")
		}
		return nil, fmt.Errorf("failed to load staff member: %w", err)
	}
	if staff.Role == domain.RoleOwner {
		return nil, apperrors.NewValidationFailedError("the owner's membership cannot be changed")
	}
	return staff, nil
}

func (s *businessService) UpdateStaff(ctx context.Context, businessID, businessUserID string, req dto.UpdateStaffRequest, ownerUserID string) (*domain.BusinessUser, error) {
	staff, err := s.loadStaffForChange(ctx, businessID, businessUserID, ownerUserID)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		if *req.Role == domain.RoleOwner || !req.Role.IsValid() {
			return nil, apperrors.NewValidationFailedError("staff role must be ACCOUNTANT or VIEWER")
		}
		staff.Role = *req.Role
	}
	if req.CanDeleteEntries != nil {
		staff.CanDeleteEntries = *req.CanDeleteEntries
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	touch(&staff.AuditFields, ownerUserID, s.now())

	if err := s.businessRepo.UpdateStaff(ctx, *staff); err != nil {
		s.LogError(ctx, err, "Failed to update staff", slog.String("business_user_id", businessUserID))
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff, nil
}

func (s *businessService) RemoveStaff(ctx context.Context, businessID, businessUserID, ownerUserID string) error {
	staff, err := s.loadStaffForChange(ctx, businessID, businessUserID, ownerUserID)
	if err != nil {
		return err
	}
	if !staff.IsActive {
		return nil
	}
	staff.IsActive = false
	touch(&staff.AuditFields, ownerUserID, s.now())
	if err := s.businessRepo.UpdateStaff(ctx, *staff); err != nil {
		return fmt.Errorf("failed to remove staff: %w", err)
	}
	s.LogInfo(ctx, "Staff member removed", slog.String("business_id", businessID), slog.String("business_user_id", businessUserID))
	return nil
}
