package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType is the direction of a cash entry.
type EntryType string

const (
	EntryIncome  EntryType = "INCOME"
	EntryExpense EntryType = "EXPENSE"
)

// ParseEntryType accepts both the current and the legacy cash-in/cash-out names.
func ParseEntryType(s string) (EntryType, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "INCOME", "CASHIN":
		return EntryIncome, nil
	case "EXPENSE", "CASHOUT":
		return EntryExpense, nil
	}
	return "", fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, s)
}

// CashEntry is a single line in a business cashbook.
type CashEntry struct {
	EntryID            string          `json:"entryID"`
	BusinessID         string          `json:"businessID"`
	EntryType          EntryType       `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`
	EntryDate          time.Time       `json:"entryDate"`
	CategoryID         *string         `json:"categoryID,omitempty"`
	CategoryName       *string         `json:"categoryName,omitempty"`
	Description        *string         `json:"description,omitempty"`
	PartyID            *string         `json:"partyID,omitempty"`
	PartyName          *string         `json:"partyName,omitempty"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	IsModified         bool            `json:"isModified"`
	ModificationReason *string         `json:"modificationReason,omitempty"`
	AuditFields
}

// Validate checks the invariants every stored entry satisfies.
func (e CashEntry) Validate() error {
	if e.EntryType != EntryIncome && e.EntryType != EntryExpense {
		return fmt.Errorf("%w: entry type must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if e.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	return nil
}

// CashEntryChanges holds the mutable fields of a CashEntry. A nil field is left
// untouched; an empty string on an optional reference clears it.
type CashEntryChanges struct {
	EntryType   *EntryType       `json:"entryType,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	EntryDate   *time.Time       `json:"entryDate,omitempty"`
	CategoryID  *string          `json:"categoryID,omitempty"`
	Description *string          `json:"description,omitempty"`
	PartyID     *string          `json:"partyID,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
}

// IsEmpty reports whether no field is set.
func (c CashEntryChanges) IsEmpty() bool {
	return c.EntryType == nil && c.Amount == nil && c.EntryDate == nil &&
		c.CategoryID == nil && c.Description == nil && c.PartyID == nil && c.DueDate == nil
}

// Diff returns only the proposed fields whose value differs from the entry.
func (e CashEntry) Diff(proposed CashEntryChanges) CashEntryChanges {
	var out CashEntryChanges
	if proposed.EntryType != nil && *proposed.EntryType != e.EntryType {
		v := *proposed.EntryType
		out.EntryType = &v
	}
	if proposed.Amount != nil && !proposed.Amount.Equal(e.Amount) {
		v := *proposed.Amount
		out.Amount = &v
	}
	if proposed.EntryDate != nil && !proposed.EntryDate.Equal(e.EntryDate) {
		v := *proposed.EntryDate
		out.EntryDate = &v
	}
	if proposed.CategoryID != nil && *proposed.CategoryID != deref(e.CategoryID) {
		v := *proposed.CategoryID
		out.CategoryID = &v
	}
	if proposed.Description != nil && *proposed.Description != deref(e.Description) {
		v := *proposed.Description
		out.Description = &v
	}
	if proposed.PartyID != nil && *proposed.PartyID != deref(e.PartyID) {
		v := *proposed.PartyID
		out.PartyID = &v
	}
	if proposed.DueDate != nil && (e.DueDate == nil || !proposed.DueDate.Equal(*e.DueDate)) {
		v := *proposed.DueDate
		out.DueDate = &v
	}
	return out
}

// Apply writes the set fields of changes onto the entry.
func (e *CashEntry) Apply(changes CashEntryChanges) {
	if changes.EntryType != nil {
		e.EntryType = *changes.EntryType
	}
	if changes.Amount != nil {
		e.Amount = *changes.Amount
	}
	if changes.EntryDate != nil {
		e.EntryDate = *changes.EntryDate
	}
	if changes.CategoryID != nil {
		e.CategoryID = optional(*changes.CategoryID)
		e.CategoryName = nil
	}
	if changes.Description != nil {
		e.Description = optional(*changes.Description)
	}
	if changes.PartyID != nil {
		e.PartyID = optional(*changes.PartyID)
		e.PartyName = nil
	}
	if changes.DueDate != nil {
		d := *changes.DueDate
		e.DueDate = &d
	}
}

// CashEntrySnapshot is the serialized pre-change copy of an entry kept on a change request.
type CashEntrySnapshot struct {
	EntryID            string          `json:"entryID"`
	EntryType          EntryType       `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`
	EntryDate          time.Time       `json:"entryDate"`
	CategoryID         *string         `json:"categoryID,omitempty"`
	Description        *string         `json:"description,omitempty"`
	PartyID            *string         `json:"partyID,omitempty"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	CreatedBy          string          `json:"createdBy"`
	IsModified         bool            `json:"isModified"`
	ModificationReason *string         `json:"modificationReason,omitempty"`
}

// Snapshot copies the entry's ledger fields.
func (e CashEntry) Snapshot() CashEntrySnapshot {
	return CashEntrySnapshot{
		EntryID:            e.EntryID,
		EntryType:          e.EntryType,
		Amount:             e.Amount,
		EntryDate:          e.EntryDate,
		CategoryID:         e.CategoryID,
		Description:        e.Description,
		PartyID:            e.PartyID,
		DueDate:            e.DueDate,
		CreatedBy:          e.CreatedBy,
		IsModified:         e.IsModified,
		ModificationReason: e.ModificationReason,
	}
}

// ChangedSince reports whether any field touched by changes now differs from
// the snapshot taken when the change was proposed.
func (e CashEntry) ChangedSince(original CashEntrySnapshot, changes CashEntryChanges) bool {
	switch {
	case changes.EntryType != nil && e.EntryType != original.EntryType:
		return true
	case changes.Amount != nil && !e.Amount.Equal(original.Amount):
		return true
	case changes.EntryDate != nil && !e.EntryDate.Equal(original.EntryDate):
		return true
	case changes.CategoryID != nil && deref(e.CategoryID) != deref(original.CategoryID):
		return true
	case changes.Description != nil && deref(e.Description) != deref(original.Description):
		return true
	case changes.PartyID != nil && deref(e.PartyID) != deref(original.PartyID):
		return true
	case changes.DueDate != nil && !sameDate(e.DueDate, original.DueDate):
		return true
	}
	return false
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// CashEntryFilter narrows cashbook listings.
type CashEntryFilter struct {
	EntryType  *EntryType
	CategoryID *string
	PartyID    *string
	Dates      DateRange
}

// CashbookSummary totals a set of entries.
type CashbookSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CategoryTotal is the sum of one category's entries of one type.
type CategoryTotal struct {
	CategoryID   *string         `json:"categoryID,omitempty"`
	CategoryName string          `json:"categoryName"`
	EntryType    EntryType       `json:"entryType"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}
