package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
	PartyBoth     PartyType = "BOTH"
)

func (t PartyType) IsValid() bool {
	return t == PartyCustomer || t == PartySupplier || t == PartyBoth
}

// Party is a customer or supplier the business keeps a running account with.
// CurrentBalance is OpeningBalance plus income minus expense over the party's
// entries and does not depend on their order.
type Party struct {
	PartyID        string          `json:"partyID"`
	BusinessID     string          `json:"businessID"`
	Name           string          `json:"name"`
	PartyType      PartyType       `json:"partyType"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Address        *string         `json:"address,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// PartyLedgerEntry is one row of a party statement.
// Debit holds the Jama (income) side and Credit the Naam (expense) side.
type PartyLedgerEntry struct {
	EntryID        string          `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	Description    *string         `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PartyLedger is a party statement over an optional date range.
type PartyLedger struct {
	Party          Party              `json:"party"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	NetBalance     decimal.Decimal    `json:"netBalance"`
	Entries        []PartyLedgerEntry `json:"entries"`
}
