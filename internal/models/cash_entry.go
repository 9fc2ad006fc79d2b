package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEntry is a row of cash_entries joined with the category and party names.
type CashEntry struct {
	EntryID            string          `db:"entry_id"`
	BusinessID         string          `db:"business_id"`
	EntryType          string          `db:"entry_type"`
	Amount             decimal.Decimal `db:"amount"`
	EntryDate          time.Time       `db:"entry_date"`
	CategoryID         *string         `db:"category_id"`
	CategoryName       *string         `db:"category_name"`
	Description        *string         `db:"description"`
	PartyID            *string         `db:"party_id"`
	PartyName          *string         `db:"party_name"`
	DueDate            *time.Time      `db:"due_date"`
	IsModified         bool            `db:"is_modified"`
	ModificationReason *string         `db:"modification_reason"`
	AuditFields
}

// CategoryTotal is one row of the per-category aggregate.
type CategoryTotal struct {
	CategoryID   *string         `db:"category_id"`
	CategoryName *string         `db:"category_name"`
	EntryType    string          `db:"entry_type"`
	Total        decimal.Decimal `db:"total"`
	Count        int64           `db:"entry_count"`
}
