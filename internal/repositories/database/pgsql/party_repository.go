package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_backend/internal/models"
	"github.com/SscSPs/cashbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

const partySelectQuery = `
SELECT
	party_id, business_id, name, party_type, phone, email, address,
	opening_balance, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM parties
WHERE business_id = $1`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PgxPartyRepository) getParties(ctx context.Context, qb *queryBuilder) ([]domain.Party, error) {
	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, fmt.Errorf("failed to collect party rows: %w", err)
	}
	return mapping.ToDomainPartySlice(ms), nil
}

func partyByID(businessID, partyID string, forUpdate bool) *queryBuilder {
	qb := newQueryBuilder(partySelectQuery, businessID)
	qb.where("party_id = $%d", partyID)
	if forUpdate {
		qb.raw(` FOR UPDATE`)
	}
	return qb
}

func (r *PgxPartyRepository) findParty(ctx context.Context, qb *queryBuilder) (*domain.Party, error) {
	parties, err := r.getParties(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(parties) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &parties[0], nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	return r.findParty(ctx, partyByID(businessID, partyID, false))
}

func (r *PgxPartyRepository) LockPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	return r.findParty(ctx, partyByID(businessID, partyID, true))
}

func partyFilter(base, businessID string, partyType *domain.PartyType, search string) *queryBuilder {
	qb := newQueryBuilder(base+` AND is_active`, businessID)
	if partyType != nil {
		qb.where("party_type = $%d", string(*partyType))
	}
	if search != "" {
		qb.where("name ILIKE $%d", "%"+likeEscaper.Replace(search)+"%")
	}
	return qb
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, search string, limit, offset int) ([]domain.Party, int64, error) {
	countQB := partyFilter(`SELECT COUNT(*) FROM parties WHERE business_id = $1`, businessID, partyType, search)
	var total int64
	if err := r.db(ctx).QueryRow(ctx, countQB.String(), countQB.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parties: %w", err)
	}
	if limit <= 0 || int64(offset) >= total {
		return []domain.Party{}, total, nil
	}

	qb := partyFilter(partySelectQuery, businessID, partyType, search)
	qb.raw(` ORDER BY name ASC, party_id ASC`)
	qb.page(limit, offset)
	parties, err := r.getParties(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return parties, total, nil
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (
			party_id, business_id, name, party_type, phone, email, address,
			opening_balance, current_balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PartyID, m.BusinessID, m.Name, m.PartyType, m.Phone, m.Email, m.Address,
		m.OpeningBalance, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save party %s: %w", party.PartyID, err)
	}
	return nil
}

// UpdateParty writes the editable fields. current_balance is only written by SetPartyBalance.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties
		SET name = $1, party_type = $2, phone = $3, email = $4, address = $5,
			opening_balance = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE business_id = $10 AND party_id = $11;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.Name, m.PartyType, m.Phone, m.Email, m.Address,
		m.OpeningBalance, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.BusinessID, m.PartyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", party.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) SetPartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `UPDATE parties SET current_balance = $1 WHERE party_id = $2`, balance, partyID)
	if err != nil {
		return fmt.Errorf("failed to set balance of party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
