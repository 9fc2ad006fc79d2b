package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionType is the direction of a passbook line.
type BankTransactionType string

const (
	BankDeposit    BankTransactionType = "DEPOSIT"
	BankWithdrawal BankTransactionType = "WITHDRAWAL"
)

// BankAccount is a business bank account. CurrentBalance is derived from
// OpeningBalance and the account's transactions and is never set directly.
type BankAccount struct {
	BankAccountID     string          `json:"bankAccountID"`
	BusinessID        string          `json:"businessID"`
	BankName          string          `json:"bankName"`
	AccountNumber     string          `json:"accountNumber"`
	AccountHolderName *string         `json:"accountHolderName,omitempty"`
	IFSCCode          *string         `json:"ifscCode,omitempty"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// BankTransaction is a single passbook line. BalanceAfter is the account balance
// immediately after this transaction in (TransactionDate, CreatedAt) order.
type BankTransaction struct {
	TransactionID   string              `json:"transactionID"`
	BankAccountID   string              `json:"bankAccountID"`
	BusinessID      string              `json:"businessID"`
	TransactionType BankTransactionType `json:"transactionType"`
	Amount          decimal.Decimal     `json:"amount"`
	TransactionDate time.Time           `json:"transactionDate"`
	Description     *string             `json:"description,omitempty"`
	ReferenceNumber *string             `json:"referenceNumber,omitempty"`
	BalanceAfter    decimal.Decimal     `json:"balanceAfter"`
	AuditFields
}

