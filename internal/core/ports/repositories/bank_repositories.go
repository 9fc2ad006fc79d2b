package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, businessID string) ([]domain.BankAccount, error)
}

type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
	// DeleteBankAccount removes the account and its transactions.
	DeleteBankAccount(ctx context.Context, businessID, bankAccountID string) error
}

// BankTransactionReader reads passbook lines in (transaction_date, created_at) order.
type BankTransactionReader interface {
	FindBankTransactionByID(ctx context.Context, bankAccountID, transactionID string) (*domain.BankTransaction, error)
	ListBankTransactions(ctx context.Context, bankAccountID string, dates domain.DateRange, limit, offset int) ([]domain.BankTransaction, int64, error)
	// ListAllBankTransactions returns every transaction of the account in chronological order.
	ListAllBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error)
	// BankTotals returns total deposits and total withdrawals in the date range.
	BankTotals(ctx context.Context, bankAccountID string, dates domain.DateRange) (deposits, withdrawals decimal.Decimal, err error)
}

type BankTransactionWriter interface {
	// LockBankAccount loads the account with a row lock held until the surrounding transaction ends.
	LockBankAccount(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error)
	SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error
	DeleteBankTransaction(ctx context.Context, bankAccountID, transactionID string) error
	// UpdateBalances rewrites balance_after for the given transactions and the account's current balance.
	UpdateBalances(ctx context.Context, bankAccountID string, balanceAfter map[string]decimal.Decimal, currentBalance decimal.Decimal) error
}

// BankRepositoryFacade combines all bank-related repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionReader
	BankTransactionWriter
}
