package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_backend/internal/models"
	"github.com/SscSPs/cashbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankAccountSelectQuery = `
SELECT
	bank_account_id, business_id, bank_name, account_number, account_holder_name, ifsc_code,
	opening_balance, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM bank_accounts
WHERE business_id = $1`

const bankTransactionSelectQuery = `
SELECT
	t.transaction_id, t.bank_account_id, t.business_id, t.transaction_type, t.amount,
	t.transaction_date, t.description, t.reference_number, t.balance_after,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM bank_transactions t
WHERE t.bank_account_id = $1`

const passbookOrder = ` ORDER BY t.transaction_date ASC, t.created_at ASC, t.transaction_id ASC`

func (r *PgxBankRepository) getAccounts(ctx context.Context, query string, args ...any) ([]domain.BankAccount, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bank account rows: %w", err)
	}
	return mapping.ToDomainBankAccountSlice(ms), nil
}

func (r *PgxBankRepository) findAccount(ctx context.Context, query string, args ...any) (*domain.BankAccount, error) {
	accounts, err := r.getAccounts(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	return r.findAccount(ctx, bankAccountSelectQuery+` AND bank_account_id = $2`, businessID, bankAccountID)
}

func (r *PgxBankRepository) LockBankAccount(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	return r.findAccount(ctx, bankAccountSelectQuery+` AND bank_account_id = $2 FOR UPDATE`, businessID, bankAccountID)
}

func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, businessID string) ([]domain.BankAccount, error) {
	return r.getAccounts(ctx, bankAccountSelectQuery+` AND is_active ORDER BY bank_name ASC, account_number ASC`, businessID)
}

func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (
			bank_account_id, business_id, bank_name, account_number, account_holder_name, ifsc_code,
			opening_balance, current_balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BankAccountID, m.BusinessID, m.BankName, m.AccountNumber, m.AccountHolderName, m.IFSCCode,
		m.OpeningBalance, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

func (r *PgxBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		UPDATE bank_accounts
		SET bank_name = $1, account_number = $2, account_holder_name = $3, ifsc_code = $4,
			opening_balance = $5, current_balance = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE business_id = $10 AND bank_account_id = $11;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.BankName, m.AccountNumber, m.AccountHolderName, m.IFSCCode,
		m.OpeningBalance, m.CurrentBalance, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.BusinessID, m.BankAccountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update bank account %s: %w", account.BankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBankAccount relies on ON DELETE CASCADE for the account's transactions.
func (r *PgxBankRepository) DeleteBankAccount(ctx context.Context, businessID, bankAccountID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM bank_accounts WHERE business_id = $1 AND bank_account_id = $2`, businessID, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete bank account %s: %w", bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankRepository) getTransactions(ctx context.Context, qb *queryBuilder) ([]domain.BankTransaction, error) {
	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankTransaction])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bank transaction rows: %w", err)
	}
	return mapping.ToDomainBankTransactionSlice(ms), nil
}

func withDates(qb *queryBuilder, dates domain.DateRange) *queryBuilder {
	if dates.From != nil {
		qb.where("t.transaction_date >= $%d", *dates.From)
	}
	if dates.To != nil {
		qb.where("t.transaction_date <= $%d", *dates.To)
	}
	return qb
}

func (r *PgxBankRepository) FindBankTransactionByID(ctx context.Context, bankAccountID, transactionID string) (*domain.BankTransaction, error) {
	qb := newQueryBuilder(bankTransactionSelectQuery, bankAccountID)
	qb.where("t.transaction_id = $%d", transactionID)
	txns, err := r.getTransactions(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &txns[0], nil
}

func (r *PgxBankRepository) ListBankTransactions(ctx context.Context, bankAccountID string, dates domain.DateRange, limit, offset int) ([]domain.BankTransaction, int64, error) {
	countQB := withDates(newQueryBuilder(`SELECT COUNT(*) FROM bank_transactions t WHERE t.bank_account_id = $1`, bankAccountID), dates)
	var total int64
	if err := r.db(ctx).QueryRow(ctx, countQB.String(), countQB.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bank transactions: %w", err)
	}
	if limit <= 0 || int64(offset) >= total {
		return []domain.BankTransaction{}, total, nil
	}

	qb := withDates(newQueryBuilder(bankTransactionSelectQuery, bankAccountID), dates)
	qb.raw(passbookOrder)
	qb.page(limit, offset)
	txns, err := r.getTransactions(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *PgxBankRepository) ListAllBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	qb := newQueryBuilder(bankTransactionSelectQuery, bankAccountID)
	qb.raw(passbookOrder)
	return r.getTransactions(ctx, qb)
}

func (r *PgxBankRepository) BankTotals(ctx context.Context, bankAccountID string, dates domain.DateRange) (decimal.Decimal, decimal.Decimal, error) {
	qb := withDates(newQueryBuilder(`
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'DEPOSIT'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'WITHDRAWAL'), 0)
		FROM bank_transactions t
		WHERE t.bank_account_id = $1`, bankAccountID), dates)

	var deposits, withdrawals decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, qb.String(), qb.args...).Scan(&deposits, &withdrawals); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to total bank transactions: %w", err)
	}
	return deposits, withdrawals, nil
}

func (r *PgxBankRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	query := `
		INSERT INTO bank_transactions (
			transaction_id, bank_account_id, business_id, transaction_type, amount,
			transaction_date, description, reference_number, balance_after,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID, m.BankAccountID, m.BusinessID, m.TransactionType, m.Amount,
		m.TransactionDate, m.Description, m.ReferenceNumber, m.BalanceAfter,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxBankRepository) DeleteBankTransaction(ctx context.Context, bankAccountID, transactionID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM bank_transactions WHERE bank_account_id = $1 AND transaction_id = $2`, bankAccountID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete bank transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBalances queues one UPDATE per transaction plus the account update in a single batch.
func (r *PgxBankRepository) UpdateBalances(ctx context.Context, bankAccountID string, balanceAfter map[string]decimal.Decimal, currentBalance decimal.Decimal) error {
	batch := &pgx.Batch{}
	for transactionID, balance := range balanceAfter {
		batch.Queue(`UPDATE bank_transactions SET balance_after = $1 WHERE bank_account_id = $2 AND transaction_id = $3`,
			balance, bankAccountID, transactionID)
	}
	batch.Queue(`UPDATE bank_accounts SET current_balance = $1 WHERE bank_account_id = $2`, currentBalance, bankAccountID)

	return r.WithinTx(ctx, func(ctx context.Context) error {
		tx, ok := ctx.Value(txKey{}).(pgx.Tx)
		if !ok {
			return errors.New("bank balances must be updated inside a transaction")
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to update balances of bank account %s: %w", bankAccountID, err)
		}
		return nil
	})
}
