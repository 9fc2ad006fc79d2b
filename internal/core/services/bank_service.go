package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/accounting"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bankService struct {
	BaseService
	txManager portsrepo.TransactionManager
	bankRepo  portsrepo.BankRepositoryFacade
}

// NewBankService creates a new bank service.
func NewBankService(txManager portsrepo.TransactionManager, bankRepo portsrepo.BankRepositoryFacade, authorizer portssvc.BusinessAuthorizerSvc) portssvc.BankSvcFacade {
	return &bankService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		txManager:   txManager,
		bankRepo:    bankRepo,
	}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) findAccount(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankRepo.FindBankAccountByID(ctx, businessID, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("bank account not found")
		}
		return nil, fmt.Errorf("failed to load bank account: %w", err)
	}
	return account, nil
}

func (s *bankService) ListBankAccounts(ctx context.Context, businessID, userID string) ([]domain.BankAccount, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	accounts, err := s.bankRepo.ListBankAccounts(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *bankService) GetBankAccount(ctx context.Context, businessID, bankAccountID, userID string) (*domain.BankAccount, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.findAccount(ctx, businessID, bankAccountID)
}

func (s *bankService) CreateBankAccount(ctx context.Context, businessID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	account := domain.BankAccount{
		BankAccountID:     uuid.NewString(),
		BusinessID:        businessID,
		BankName:          strings.TrimSpace(req.BankName),
		AccountNumber:     strings.TrimSpace(req.AccountNumber),
		AccountHolderName: nonEmpty(req.AccountHolderName),
		IFSCCode:          nonEmpty(req.IFSCCode),
		OpeningBalance:    req.OpeningBalance,
		CurrentBalance:    req.OpeningBalance,
		IsActive:          true,
		AuditFields:       newAuditFields(userID, s.now()),
	}
	if account.BankName == "" || account.AccountNumber == "" {
		return nil, apperrors.NewValidationFailedError("bank name and account number are required")
	}
	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("this account number is already registered")
		}
		s.LogError(ctx, err, "Failed to save bank account", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankService) UpdateBankAccount(ctx context.Context, businessID, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	var updated *domain.BankAccount
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.lockAccount(txCtx, businessID, bankAccountID)
		if err != nil {
			return err
		}
		if req.BankName != nil {
			account.BankName = strings.TrimSpace(*req.BankName)
		}
		if req.AccountNumber != nil {
			account.AccountNumber = strings.TrimSpace(*req.AccountNumber)
		}
		if req.AccountHolderName != nil {
			account.AccountHolderName = nonEmpty(req.AccountHolderName)
		}
		if req.IFSCCode != nil {
			account.IFSCCode = nonEmpty(req.IFSCCode)
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		if account.BankName == "" || account.AccountNumber == "" {
			return apperrors.NewValidationFailedError("bank name and account number are required")
		}
		openingChanged := req.OpeningBalance != nil && !req.OpeningBalance.Equal(account.OpeningBalance)
		if openingChanged {
			account.OpeningBalance = *req.OpeningBalance
		}
		touch(&account.AuditFields, userID, s.now())

		if err := s.bankRepo.UpdateBankAccount(txCtx, *account); err != nil {
			return fmt.Errorf("failed to update bank account: %w", err)
		}
		if openingChanged {
			if _, err := s.rebalance(txCtx, account); err != nil {
				return err
			}
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *bankService) DeleteBankAccount(ctx context.Context, businessID, bankAccountID, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleOwner); err != nil {
		return err
	}
	if _, err := s.findAccount(ctx, businessID, bankAccountID); err != nil {
		return err
	}
	if err := s.bankRepo.DeleteBankAccount(ctx, businessID, bankAccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete bank account", slog.String("bank_account_id", bankAccountID))
		return fmt.Errorf("failed to delete bank account: %w", err)
	}
	s.LogInfo(ctx, "Bank account deleted", slog.String("bank_account_id", bankAccountID))
	return nil
}

func (s *bankService) ListTransactions(ctx context.Context, businessID, bankAccountID string, params dto.ListBankTransactionsParams, userID string) (*dto.PassbookPage, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	dates, err := params.ToDateRange()
	if err != nil {
		return nil, err
	}
	account, err := s.findAccount(ctx, businessID, bankAccountID)
	if err != nil {
		return nil, err
	}

	p := params.ToParams()
	txns, total, err := s.bankRepo.ListBankTransactions(ctx, bankAccountID, dates, p.Limit(), p.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank transactions", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	deposits, withdrawals, err := s.bankRepo.BankTotals(ctx, bankAccountID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to total bank transactions: %w", err)
	}

	page := pagination.NewPage(txns, total, p)
	return &dto.PassbookPage{
		Account:          *account,
		Items:            page.Items,
		TotalCount:       page.TotalCount,
		TotalPages:       page.TotalPages,
		Page:             page.Page,
		PageSize:         page.PageSize,
		TotalDeposits:    deposits,
		TotalWithdrawals: withdrawals,
	}, nil
}

func (s *bankService) AddTransaction(ctx context.Context, businessID, bankAccountID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if req.TransactionType != domain.BankDeposit && req.TransactionType != domain.BankWithdrawal {
		return nil, apperrors.NewValidationFailedError("transaction type must be DEPOSIT or WITHDRAWAL")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}

	txn := domain.BankTransaction{
		TransactionID:   uuid.NewString(),
		BankAccountID:   bankAccountID,
		BusinessID:      businessID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate.Time,
		Description:     nonEmpty(req.Description),
		ReferenceNumber: nonEmpty(req.ReferenceNumber),
		AuditFields:     newAuditFields(userID, s.now()),
	}

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.lockAccount(txCtx, businessID, bankAccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return apperrors.NewValidationFailedError("bank account is inactive")
		}
		if err := s.bankRepo.SaveBankTransaction(txCtx, txn); err != nil {
			return fmt.Errorf("failed to save bank transaction: %w", err)
		}
		balances, err := s.rebalance(txCtx, account)
		if err != nil {
			return err
		}
		txn.BalanceAfter = balances[txn.TransactionID]
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to add bank transaction", slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Bank transaction added",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *bankService) DeleteTransaction(ctx context.Context, businessID, bankAccountID, transactionID, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return err
	}
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.lockAccount(txCtx, businessID, bankAccountID)
		if err != nil {
			return err
		}
		if err := s.bankRepo.DeleteBankTransaction(txCtx, bankAccountID, transactionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("bank transaction not found")
			}
			return fmt.Errorf("failed to delete bank transaction: %w", err)
		}
		_, err = s.rebalance(txCtx, account)
		return err
	})
}

func (s *bankService) lockAccount(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankRepo.LockBankAccount(ctx, businessID, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("bank account not found")
		}
		return nil, fmt.Errorf("failed to lock bank account: %w", err)
	}
	return account, nil
}

// rebalance re-derives every balance_after of the account from its opening balance.
// The account row must be locked by the caller's transaction.
func (s *bankService) rebalance(ctx context.Context, account *domain.BankAccount) (map[string]decimal.Decimal, error) {
	txns, err := s.bankRepo.ListAllBankTransactions(ctx, account.BankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank transactions: %w", err)
	}
	accounting.SortChronologically(txns, func(t domain.BankTransaction) (time.Time, time.Time) {
		return t.TransactionDate, t.CreatedAt
	})
	signed, err := accounting.BankTransactions(txns)
	if err != nil {
		return nil, err
	}
	result := accounting.Accumulate(account.OpeningBalance, signed)

	balances := make(map[string]decimal.Decimal, len(txns))
	for i, t := range txns {
		balances[t.TransactionID] = result.PerEntryBalance[i]
	}
	if err := s.bankRepo.UpdateBalances(ctx, account.BankAccountID, balances, result.NetBalance); err != nil {
		return nil, fmt.Errorf("failed to update balances: %w", err)
	}
	account.CurrentBalance = result.NetBalance
	return balances, nil
}
