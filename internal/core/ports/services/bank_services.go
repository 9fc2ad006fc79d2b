package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

type BankAccountSvc interface {
	ListBankAccounts(ctx context.Context, businessID, userID string) ([]domain.BankAccount, error)
	GetBankAccount(ctx context.Context, businessID, bankAccountID, userID string) (*domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, businessID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, businessID, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)
	DeleteBankAccount(ctx context.Context, businessID, bankAccountID, userID string) error
}

type BankTransactionSvc interface {
	ListTransactions(ctx context.Context, businessID, bankAccountID string, params dto.ListBankTransactionsParams, userID string) (*dto.PassbookPage, error)
	// AddTransaction inserts the line and re-derives every balanceAfter of the account.
	AddTransaction(ctx context.Context, businessID, bankAccountID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error)
	DeleteTransaction(ctx context.Context, businessID, bankAccountID, transactionID, userID string) error
}

// BankSvcFacade combines all bank service interfaces
type BankSvcFacade interface {
	BankAccountSvc
	BankTransactionSvc
}
