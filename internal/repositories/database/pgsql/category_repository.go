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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categorySelectQuery = `
SELECT
	category_id, business_id, name, category_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM categories
WHERE business_id = $1`

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error) {
	rows, err := r.db(ctx).Query(ctx, categorySelectQuery+` AND category_id = $2`, businessID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, businessID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	qb := newQueryBuilder(categorySelectQuery+` AND is_active`, businessID)
	if categoryType != nil {
		qb.where("category_type = $%d", string(*categoryType))
	}
	qb.raw(` ORDER BY name ASC`)

	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category rows: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (
			category_id, business_id, name, category_type, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CategoryID, m.BusinessID, m.Name, m.CategoryType, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, category_type = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE business_id = $6 AND category_id = $7;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		category.Name, string(category.CategoryType), category.IsActive, category.LastUpdatedAt, category.LastUpdatedBy,
		category.BusinessID, category.CategoryID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
