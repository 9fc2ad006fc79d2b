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
)

type PgxChangeRequestRepository struct {
	BaseRepository
}

func newPgxChangeRequestRepository(pool *pgxpool.Pool) portsrepo.ChangeRequestRepositoryFacade {
	return &PgxChangeRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChangeRequestRepositoryFacade = (*PgxChangeRequestRepository)(nil)

const changeRequestSelectQuery = `
SELECT
	cr.request_id, cr.business_id, cr.entry_id, cr.request_type, cr.status,
	cr.proposed_changes, cr.original_data, cr.reason,
	cr.requested_by_user_id, u.name AS requested_by_name,
	cr.reviewed_by_user_id, cr.review_notes, cr.reviewed_at,
	cr.created_at, cr.created_by, cr.last_updated_at, cr.last_updated_by
FROM change_requests cr
LEFT JOIN users u ON u.user_id = cr.requested_by_user_id
WHERE cr.business_id = $1`

func (r *PgxChangeRequestRepository) getRequests(ctx context.Context, qb *queryBuilder) ([]domain.ChangeRequest, error) {
	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query change requests: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChangeRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect change request rows: %w", err)
	}
	return mapping.ToDomainChangeRequestSlice(ms)
}

func (r *PgxChangeRequestRepository) findOne(ctx context.Context, qb *queryBuilder) (*domain.ChangeRequest, error) {
	reqs, err := r.getRequests(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &reqs[0], nil
}

func (r *PgxChangeRequestRepository) FindChangeRequestByID(ctx context.Context, businessID, requestID string) (*domain.ChangeRequest, error) {
	qb := newQueryBuilder(changeRequestSelectQuery, businessID)
	qb.where("cr.request_id = $%d", requestID)
	return r.findOne(ctx, qb)
}

func (r *PgxChangeRequestRepository) FindPendingRequestForEntry(ctx context.Context, businessID, entryID string) (*domain.ChangeRequest, error) {
	qb := newQueryBuilder(changeRequestSelectQuery+` AND cr.status = 'PENDING'`, businessID)
	qb.where("cr.entry_id = $%d", entryID)
	return r.findOne(ctx, qb)
}

func changeRequestFilter(base, businessID string, filter domain.ChangeRequestFilter) *queryBuilder {
	qb := newQueryBuilder(base, businessID)
	if filter.Status != nil {
		qb.where("cr.status = $%d", string(*filter.Status))
	}
	if filter.RequestedByUserID != nil {
		qb.where("cr.requested_by_user_id = $%d", *filter.RequestedByUserID)
	}
	return qb
}

func (r *PgxChangeRequestRepository) ListChangeRequests(ctx context.Context, businessID string, filter domain.ChangeRequestFilter, limit, offset int) ([]domain.ChangeRequest, int64, error) {
	countQB := changeRequestFilter(`SELECT COUNT(*) FROM change_requests cr WHERE cr.business_id = $1`, businessID, filter)
	var total int64
	if err := r.db(ctx).QueryRow(ctx, countQB.String(), countQB.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count change requests: %w", err)
	}
	if limit <= 0 || int64(offset) >= total {
		return []domain.ChangeRequest{}, total, nil
	}

	qb := changeRequestFilter(changeRequestSelectQuery, businessID, filter)
	qb.raw(` ORDER BY cr.created_at DESC, cr.request_id DESC`)
	qb.page(limit, offset)
	reqs, err := r.getRequests(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *PgxChangeRequestRepository) SummarizeChangeRequests(ctx context.Context, businessID string, requestedBy *string) (domain.ChangeRequestSummary, error) {
	qb := changeRequestFilter(`
		SELECT
			COUNT(*) FILTER (WHERE cr.status = 'PENDING') AS pending_count,
			COUNT(*) FILTER (WHERE cr.status = 'APPROVED') AS approved_count,
			COUNT(*) FILTER (WHERE cr.status = 'REJECTED') AS rejected_count,
			COUNT(*) AS total_count
		FROM change_requests cr
		WHERE cr.business_id = $1`, businessID, domain.ChangeRequestFilter{RequestedByUserID: requestedBy})

	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return domain.ChangeRequestSummary{}, fmt.Errorf("failed to summarize change requests: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ChangeRequestSummary])
	if err != nil {
		return domain.ChangeRequestSummary{}, fmt.Errorf("failed to scan change request summary: %w", err)
	}
	return mapping.ToDomainChangeRequestSummary(m), nil
}

func (r *PgxChangeRequestRepository) SaveChangeRequest(ctx context.Context, req domain.ChangeRequest) error {
	m, err := mapping.ToModelChangeRequest(req)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO change_requests (
			request_id, business_id, entry_id, request_type, status,
			proposed_changes, original_data, reason, requested_by_user_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.db(ctx).Exec(ctx, query,
		m.RequestID, m.BusinessID, m.EntryID, m.RequestType, m.Status,
		m.ProposedChanges, m.OriginalData, m.Reason, m.RequestedByUserID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("entry already has a pending change request")
		}
		return fmt.Errorf("failed to save change request %s: %w", req.RequestID, err)
	}
	return nil
}

func (r *PgxChangeRequestRepository) UpdateReviewedRequest(ctx context.Context, req domain.ChangeRequest) error {
	query := `
		UPDATE change_requests
		SET status = $1, reviewed_by_user_id = $2, review_notes = $3, reviewed_at = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE business_id = $7 AND request_id = $8 AND status = 'PENDING';
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		string(req.Status), req.ReviewedByUserID, req.ReviewNotes, req.ReviewedAt,
		req.LastUpdatedAt, req.LastUpdatedBy,
		req.BusinessID, req.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update change request %s: %w", req.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

func (r *PgxChangeRequestRepository) DeletePendingRequest(ctx context.Context, businessID, requestID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM change_requests WHERE business_id = $1 AND request_id = $2 AND status = 'PENDING'`,
		businessID, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete change request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}
