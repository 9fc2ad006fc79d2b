package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BankAccount struct {
	BankAccountID     string          `db:"bank_account_id"`
	BusinessID        string          `db:"business_id"`
	BankName          string          `db:"bank_name"`
	AccountNumber     string          `db:"account_number"`
	AccountHolderName *string         `db:"account_holder_name"`
	IFSCCode          *string         `db:"ifsc_code"`
	OpeningBalance    decimal.Decimal `db:"opening_balance"`
	CurrentBalance    decimal.Decimal `db:"current_balance"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}

type BankTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	BankAccountID   string          `db:"bank_account_id"`
	BusinessID      string          `db:"business_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     *string         `db:"description"`
	ReferenceNumber *string         `db:"reference_number"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	AuditFields
}
