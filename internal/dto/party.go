package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreatePartyRequest struct {
	Name           string           `json:"name" binding:"required,max=150"`
	PartyType      domain.PartyType `json:"partyType" binding:"required,oneof=CUSTOMER SUPPLIER BOTH"`
	Phone          *string          `json:"phone" binding:"omitempty,max=20"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Address        *string          `json:"address" binding:"omitempty,max=500"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
}

type UpdatePartyRequest struct {
	Name           *string           `json:"name" binding:"omitempty,min=1,max=150"`
	PartyType      *domain.PartyType `json:"partyType" binding:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Phone          *string           `json:"phone" binding:"omitempty,max=20"`
	Email          *string           `json:"email" binding:"omitempty,email"`
	Address        *string           `json:"address" binding:"omitempty,max=500"`
	OpeningBalance *decimal.Decimal  `json:"openingBalance"`
}

type ListPartiesParams struct {
	PaginationParams
	PartyType string `form:"type" binding:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Search    string `form:"search"`
}

type PartyLedgerParams struct {
	DateRangeParams
}

type ExportParams struct {
	DateRangeParams
	Format string `form:"format,default=xlsx" binding:"omitempty,oneof=xlsx pdf"`
}
