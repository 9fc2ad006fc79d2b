package pgsql

import (
	"context"
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

type PgxCashEntryRepository struct {
	BaseRepository
}

func newPgxCashEntryRepository(pool *pgxpool.Pool) portsrepo.CashEntryRepositoryFacade {
	return &PgxCashEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashEntryRepositoryFacade = (*PgxCashEntryRepository)(nil)

const cashEntrySelectQuery = `
SELECT
	e.entry_id, e.business_id, e.entry_type, e.amount, e.entry_date,
	e.category_id, c.name AS category_name, e.description,
	e.party_id, p.name AS party_name, e.due_date,
	e.is_modified, e.modification_reason,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM cash_entries e
LEFT JOIN categories c ON c.category_id = e.category_id
LEFT JOIN parties p ON p.party_id = e.party_id
WHERE e.business_id = $1`

// chronologicalOrder must be identical wherever a window of entries is taken,
// otherwise the brought-forward balance and the page disagree.
const chronologicalOrder = ` ORDER BY e.entry_date ASC, e.created_at ASC, e.entry_id ASC`

const signedAmount = `CASE WHEN e.entry_type = 'INCOME' THEN e.amount ELSE -e.amount END`

// filtered starts a builder over the business's entries narrowed by filter.
func filtered(base, businessID string, filter domain.CashEntryFilter) *queryBuilder {
	qb := newQueryBuilder(base, businessID)
	if filter.EntryType != nil {
		qb.where("e.entry_type = $%d", string(*filter.EntryType))
	}
	if filter.CategoryID != nil {
		qb.where("e.category_id = $%d", *filter.CategoryID)
	}
	if filter.PartyID != nil {
		qb.where("e.party_id = $%d", *filter.PartyID)
	}
	if filter.Dates.From != nil {
		qb.where("e.entry_date >= $%d", *filter.Dates.From)
	}
	if filter.Dates.To != nil {
		qb.where("e.entry_date <= $%d", *filter.Dates.To)
	}
	return qb
}

func (r *PgxCashEntryRepository) getEntries(ctx context.Context, qb *queryBuilder) ([]domain.CashEntry, error) {
	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CashEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to collect cash entry rows: %w", err)
	}
	return mapping.ToDomainCashEntrySlice(ms), nil
}

func (r *PgxCashEntryRepository) FindEntryByID(ctx context.Context, businessID, entryID string) (*domain.CashEntry, error) {
	qb := newQueryBuilder(cashEntrySelectQuery, businessID)
	qb.where("e.entry_id = $%d", entryID)
	entries, err := r.getEntries(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

func (r *PgxCashEntryRepository) ListEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter, limit, offset int) ([]domain.CashEntry, int64, error) {
	countQB := filtered(`SELECT COUNT(*) FROM cash_entries e WHERE e.business_id = $1`, businessID, filter)
	var total int64
	if err := r.db(ctx).QueryRow(ctx, countQB.String(), countQB.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cash entries: %w", err)
	}
	if limit <= 0 || int64(offset) >= total {
		return []domain.CashEntry{}, total, nil
	}

	qb := filtered(cashEntrySelectQuery, businessID, filter)
	qb.raw(chronologicalOrder)
	qb.page(limit, offset)
	entries, err := r.getEntries(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *PgxCashEntryRepository) ListAllEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CashEntry, error) {
	qb := filtered(cashEntrySelectQuery, businessID, filter)
	qb.raw(chronologicalOrder)
	return r.getEntries(ctx, qb)
}

func (r *PgxCashEntryRepository) BalanceBroughtForward(ctx context.Context, businessID string, filter domain.CashEntryFilter, offset int) (decimal.Decimal, error) {
	if offset <= 0 {
		return decimal.Zero, nil
	}
	inner := filtered(`SELECT `+signedAmount+` AS signed FROM cash_entries e WHERE e.business_id = $1`, businessID, filter)
	inner.raw(chronologicalOrder)
	inner.args = append(inner.args, offset)
	inner.raw(fmt.Sprintf(" LIMIT $%d", len(inner.args)))

	var balance decimal.Decimal
	query := `SELECT COALESCE(SUM(w.signed), 0) FROM (` + inner.String() + `) w`
	if err := r.db(ctx).QueryRow(ctx, query, inner.args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute brought forward balance: %w", err)
	}
	return balance, nil
}

func (r *PgxCashEntryRepository) SummarizeEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) (domain.CashbookSummary, error) {
	qb := filtered(`
		SELECT
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'INCOME'), 0),
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'EXPENSE'), 0)
		FROM cash_entries e
		WHERE e.business_id = $1`, businessID, filter)

	var summary domain.CashbookSummary
	if err := r.db(ctx).QueryRow(ctx, qb.String(), qb.args...).Scan(&summary.TotalIncome, &summary.TotalExpense); err != nil {
		return domain.CashbookSummary{}, fmt.Errorf("failed to summarize cash entries: %w", err)
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

func (r *PgxCashEntryRepository) CategoryTotals(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CategoryTotal, error) {
	qb := filtered(`
		SELECT e.category_id, c.name AS category_name, e.entry_type,
			SUM(e.amount) AS total, COUNT(*) AS entry_count
		FROM cash_entries e
		LEFT JOIN categories c ON c.category_id = e.category_id
		WHERE e.business_id = $1`, businessID, filter)
	qb.raw(` GROUP BY e.category_id, c.name, e.entry_type ORDER BY e.entry_type ASC, total DESC`)

	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CategoryTotal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category totals: %w", err)
	}
	return mapping.ToDomainCategoryTotalSlice(ms), nil
}

func (r *PgxCashEntryRepository) SaveEntry(ctx context.Context, entry domain.CashEntry) error {
	m := mapping.ToModelCashEntry(entry)
	query := `
		INSERT INTO cash_entries (
			entry_id, business_id, entry_type, amount, entry_date,
			category_id, description, party_id, due_date,
			is_modified, modification_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.BusinessID, m.EntryType, m.Amount, m.EntryDate,
		m.CategoryID, m.Description, m.PartyID, m.DueDate,
		m.IsModified, m.ModificationReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("category or party does not exist")
		}
		return fmt.Errorf("failed to save cash entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *PgxCashEntryRepository) UpdateEntry(ctx context.Context, entry domain.CashEntry) error {
	m := mapping.ToModelCashEntry(entry)
	query := `
		UPDATE cash_entries
		SET entry_type = $1, amount = $2, entry_date = $3, category_id = $4, description = $5,
			party_id = $6, due_date = $7, is_modified = $8, modification_reason = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE business_id = $12 AND entry_id = $13;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.EntryType, m.Amount, m.EntryDate, m.CategoryID, m.Description,
		m.PartyID, m.DueDate, m.IsModified, m.ModificationReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.BusinessID, m.EntryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("category or party does not exist")
		}
		return fmt.Errorf("failed to update cash entry %s: %w", entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCashEntryRepository) DeleteEntry(ctx context.Context, businessID, entryID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM cash_entries WHERE business_id = $1 AND entry_id = $2`, businessID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete cash entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

