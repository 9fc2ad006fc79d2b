package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required,max=150"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,len=3,alpha"`
}

// AddStaffRequest adds an existing user, identified by id or email, to a business.
type AddStaffRequest struct {
	UserID           string           `json:"userID" binding:"required_without=Email"`
	Email            string           `json:"email" binding:"omitempty,email"`
	Role             domain.StaffRole `json:"role" binding:"required,oneof=ACCOUNTANT VIEWER"`
	CanDeleteEntries bool             `json:"canDeleteEntries"`
}

// UpdateStaffRequest changes a staff member. Omitted fields are left unchanged.
type UpdateStaffRequest struct {
	Role             *domain.StaffRole `json:"role" binding:"omitempty,oneof=ACCOUNTANT VIEWER"`
	CanDeleteEntries *bool             `json:"canDeleteEntries"`
	IsActive         *bool             `json:"isActive"`
}
