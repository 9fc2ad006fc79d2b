package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProposedChanges is the wire form of the fields a change request wants to set.
type ProposedChanges struct {
	EntryType   *string          `json:"entryType"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	EntryDate   *Date            `json:"entryDate"`
	CategoryID  *string          `json:"categoryID"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	PartyID     *string          `json:"partyID"`
	DueDate     *Date            `json:"dueDate"`
}

func (p ProposedChanges) ToChanges() (domain.CashEntryChanges, error) {
	return UpdateCashEntryRequest{
		EntryType:   p.EntryType,
		Amount:      p.Amount,
		EntryDate:   p.EntryDate,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		PartyID:     p.PartyID,
		DueDate:     p.DueDate,
	}.ToChanges()
}

type CreateChangeRequestRequest struct {
	EntryID         string                   `json:"entryId" binding:"required"`
	RequestType     domain.ChangeRequestType `json:"requestType" binding:"required,oneof=UPDATE DELETE"`
	ProposedChanges *ProposedChanges         `json:"proposedChanges"`
	Reason          string                   `json:"reason" binding:"max=500"`
}

type ReviewChangeRequestRequest struct {
	Approve     *bool   `json:"approve" binding:"required"`
	ReviewNotes *string `json:"reviewNotes" binding:"omitempty,max=500"`
}

type ListChangeRequestsParams struct {
	PaginationParams
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}
