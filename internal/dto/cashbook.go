package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type CreateCashEntryRequest struct {
	EntryType   string          `json:"entryType" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	EntryDate   Date            `json:"entryDate" binding:"required"`
	CategoryID  *string         `json:"categoryID"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	PartyID     *string         `json:"partyID"`
	DueDate     *Date           `json:"dueDate"`
}

// UpdateCashEntryRequest proposes new values for an entry. Omitted fields stay as they are;
// an empty string clears categoryID, partyID or description. Reason is required when the
// caller's change has to go through approval.
type UpdateCashEntryRequest struct {
	EntryType   *string          `json:"entryType"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	EntryDate   *Date            `json:"entryDate"`
	CategoryID  *string          `json:"categoryID"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	PartyID     *string          `json:"partyID"`
	DueDate     *Date            `json:"dueDate"`
	Reason      string           `json:"reason" binding:"max=500"`
}

// ToChanges converts the request into the domain change set.
func (r UpdateCashEntryRequest) ToChanges() (domain.CashEntryChanges, error) {
	var c domain.CashEntryChanges
	if r.EntryType != nil {
		t, err := domain.ParseEntryType(*r.EntryType)
		if err != nil {
			return c, err
		}
		c.EntryType = &t
	}
	c.Amount = r.Amount
	c.EntryDate = DatePtr(r.EntryDate)
	c.CategoryID = r.CategoryID
	c.Description = r.Description
	c.PartyID = r.PartyID
	c.DueDate = DatePtr(r.DueDate)
	return c, nil
}

// DeleteCashEntryRequest is the optional body of a delete. Reason is required when the
// delete has to go through approval.
type DeleteCashEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ListCashEntriesParams struct {
	PaginationParams
	DateRangeParams
	EntryType  string `form:"type"`
	CategoryID string `form:"categoryId"`
	PartyID    string `form:"partyId"`
	// Sort is the display order: "desc" (newest first, default) or "asc".
	// Running balances are always computed chronologically.
	Sort string `form:"sort" binding:"omitempty,oneof=asc desc"`
}

// CashEntryLine is an entry with its running balance.
type CashEntryLine struct {
	domain.CashEntry
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// CashbookPage is a page of entries plus totals over the whole filter.
type CashbookPage struct {
	pagination.Page[CashEntryLine]
	Summary domain.CashbookSummary `json:"summary"`
}

// MutationResult is the outcome of a gated update or delete. Exactly one of Entry and
// ChangeRequest is set when Applied is false; Entry is nil after a direct delete.
type MutationResult struct {
	Applied       bool                  `json:"applied"`
	Entry         *domain.CashEntry     `json:"entry,omitempty"`
	ChangeRequest *domain.ChangeRequest `json:"changeRequest,omitempty"`
}
