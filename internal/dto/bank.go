package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateBankAccountRequest struct {
	BankName          string          `json:"bankName" binding:"required,max=150"`
	AccountNumber     string          `json:"accountNumber" binding:"required,max=50"`
	AccountHolderName *string         `json:"accountHolderName" binding:"omitempty,max=150"`
	IFSCCode          *string         `json:"ifscCode" binding:"omitempty,max=20"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
}

// UpdateBankAccountRequest changes account details. A new opening balance re-derives
// every balanceAfter of the account.
type UpdateBankAccountRequest struct {
	BankName          *string          `json:"bankName" binding:"omitempty,min=1,max=150"`
	AccountNumber     *string          `json:"accountNumber" binding:"omitempty,min=1,max=50"`
	AccountHolderName *string          `json:"accountHolderName" binding:"omitempty,max=150"`
	IFSCCode          *string          `json:"ifscCode" binding:"omitempty,max=20"`
	OpeningBalance    *decimal.Decimal `json:"openingBalance"`
	IsActive          *bool            `json:"isActive"`
}

type CreateBankTransactionRequest struct {
	TransactionType domain.BankTransactionType `json:"transactionType" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount          decimal.Decimal            `json:"amount" binding:"required,dgt0"`
	TransactionDate Date                       `json:"transactionDate" binding:"required"`
	Description     *string                    `json:"description" binding:"omitempty,max=500"`
	ReferenceNumber *string                    `json:"referenceNumber" binding:"omitempty,max=100"`
}

type ListBankTransactionsParams struct {
	PaginationParams
	DateRangeParams
}

// PassbookPage is one page of passbook lines plus totals over the date range.
type PassbookPage struct {
	Account          domain.BankAccount       `json:"account"`
	Items            []domain.BankTransaction `json:"items"`
	TotalCount       int64                    `json:"totalCount"`
	TotalPages       int                      `json:"totalPages"`
	Page             int                      `json:"page"`
	PageSize         int                      `json:"pageSize"`
	TotalDeposits    decimal.Decimal          `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal          `json:"totalWithdrawals"`
}
