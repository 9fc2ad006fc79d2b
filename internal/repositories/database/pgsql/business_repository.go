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
)

type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

const businessColumns = `
	b.business_id, b.name, b.owner_user_id, b.currency_code, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by`

const staffSelectQuery = `
SELECT
	bu.business_user_id, bu.business_id, bu.user_id,
	u.name AS user_name, u.email AS user_email,
	bu.role, bu.can_delete_entries, bu.is_active,
	bu.created_at, bu.created_by, bu.last_updated_at, bu.last_updated_by
FROM business_users bu
JOIN users u ON u.user_id = bu.user_id
WHERE 1=1`

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT`+businessColumns+` FROM businesses b WHERE b.business_id = $1`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query business: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Business])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan business: %w", err)
	}
	b := mapping.ToDomainBusiness(m)
	return &b, nil
}

func (r *PgxBusinessRepository) ListBusinessesForUser(ctx context.Context, userID string) ([]domain.BusinessMembership, error) {
	query := `SELECT` + businessColumns + `, bu.role, bu.can_delete_entries
		FROM businesses b
		JOIN business_users bu ON bu.business_id = b.business_id
		WHERE bu.user_id = $1 AND bu.is_active AND b.is_active
		ORDER BY b.name ASC`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses for user: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BusinessMembership])
	if err != nil {
		return nil, fmt.Errorf("failed to collect business rows: %w", err)
	}
	return mapping.ToDomainBusinessMembershipSlice(ms), nil
}

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business, owner domain.BusinessUser) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		m := mapping.ToModelBusiness(business)
		query := `
			INSERT INTO businesses (
				business_id, name, owner_user_id, currency_code, is_active,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		if _, err := r.db(ctx).Exec(ctx, query,
			m.BusinessID, m.Name, m.OwnerUserID, m.CurrencyCode, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		); err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflictError("business ID " + business.BusinessID + " already exists")
			}
			return fmt.Errorf("failed to save business %s: %w", business.BusinessID, err)
		}
		return r.SaveStaff(ctx, owner)
	})
}

func (r *PgxBusinessRepository) getStaff(ctx context.Context, filter string, args ...any) ([]models.BusinessUser, error) {
	rows, err := r.db(ctx).Query(ctx, staffSelectQuery+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BusinessUser])
	if err != nil {
		return nil, fmt.Errorf("failed to collect staff rows: %w", err)
	}
	return ms, nil
}

func (r *PgxBusinessRepository) findOneStaff(ctx context.Context, filter string, args ...any) (*domain.BusinessUser, error) {
	ms, err := r.getStaff(ctx, filter, args...)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	staff := mapping.ToDomainBusinessUser(ms[0])
	return &staff, nil
}

func (r *PgxBusinessRepository) FindStaffMember(ctx context.Context, businessID, userID string) (*domain.BusinessUser, error) {
	return r.findOneStaff(ctx, ` AND bu.business_id = $1 AND bu.user_id = $2`, businessID, userID)
}

func (r *PgxBusinessRepository) FindStaffByID(ctx context.Context, businessID, businessUserID string) (*domain.BusinessUser, error) {
	return r.findOneStaff(ctx, ` AND bu.business_id = $1 AND bu.business_user_id = $2`, businessID, businessUserID)
}

func (r *PgxBusinessRepository) ListStaff(ctx context.Context, businessID string) ([]domain.BusinessUser, error) {
	ms, err := r.getStaff(ctx, ` AND bu.business_id = $1 AND bu.is_active ORDER BY bu.role = 'OWNER' DESC, u.name ASC`, businessID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBusinessUserSlice(ms), nil
}

func (r *PgxBusinessRepository) SaveStaff(ctx context.Context, staff domain.BusinessUser) error {
	m := mapping.ToModelBusinessUser(staff)
	query := `
		INSERT INTO business_users (
			business_user_id, business_id, user_id, role, can_delete_entries, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BusinessUserID, m.BusinessID, m.UserID, m.Role, m.CanDeleteEntries, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("user or business does not exist")
		}
		return fmt.Errorf("failed to save staff %s: %w", staff.BusinessUserID, err)
	}
	return nil
}

func (r *PgxBusinessRepository) UpdateStaff(ctx context.Context, staff domain.BusinessUser) error {
	query := `
		UPDATE business_users
		SET role = $1, can_delete_entries = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE business_id = $6 AND business_user_id = $7;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		string(staff.Role), staff.CanDeleteEntries, staff.IsActive, staff.LastUpdatedAt, staff.LastUpdatedBy,
		staff.BusinessID, staff.BusinessUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff %s: %w", staff.BusinessUserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
