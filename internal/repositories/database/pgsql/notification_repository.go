package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_backend/internal/models"
	"github.com/SscSPs/cashbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationSelectQuery = `
SELECT
	notification_id, business_id, recipient_user_id, type, reference_type, reference_id,
	title, message, is_read, read_at, created_at
FROM notifications
WHERE 1=1`

func (r *PgxNotificationRepository) getNotifications(ctx context.Context, qb *queryBuilder) ([]domain.Notification, error) {
	rows, err := r.db(ctx).Query(ctx, qb.String(), qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Notification])
	if err != nil {
		return nil, fmt.Errorf("failed to collect notification rows: %w", err)
	}
	return mapping.ToDomainNotificationSlice(ms), nil
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	qb := newQueryBuilder(notificationSelectQuery)
	qb.where("notification_id = $%d", notificationID)
	ns, err := r.getNotifications(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(ns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &ns[0], nil
}

func recipientFilter(base, recipientUserID string, filter domain.NotificationFilter) *queryBuilder {
	qb := newQueryBuilder(base)
	qb.where("recipient_user_id = $%d", recipientUserID)
	if filter.BusinessID != nil {
		qb.where("business_id = $%d", *filter.BusinessID)
	}
	if filter.UnreadOnly {
		qb.raw(" AND NOT is_read")
	}
	return qb
}

func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, recipientUserID string, filter domain.NotificationFilter, limit, offset int) ([]domain.Notification, int64, error) {
	countQB := recipientFilter(`SELECT COUNT(*) FROM notifications WHERE 1=1`, recipientUserID, filter)
	var total int64
	if err := r.db(ctx).QueryRow(ctx, countQB.String(), countQB.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	if limit <= 0 || int64(offset) >= total {
		return []domain.Notification{}, total, nil
	}

	qb := recipientFilter(notificationSelectQuery, recipientUserID, filter)
	qb.raw(` ORDER BY created_at DESC, notification_id DESC`)
	qb.page(limit, offset)
	ns, err := r.getNotifications(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return ns, total, nil
}

func (r *PgxNotificationRepository) SummarizeNotifications(ctx context.Context, recipientUserID string, businessID *string) (domain.NotificationSummary, error) {
	qb := recipientFilter(`
		SELECT COUNT(*) FILTER (WHERE NOT is_read), COUNT(*)
		FROM notifications
		WHERE 1=1`, recipientUserID, domain.NotificationFilter{BusinessID: businessID})

	var summary domain.NotificationSummary
	if err := r.db(ctx).QueryRow(ctx, qb.String(), qb.args...).Scan(&summary.UnreadCount, &summary.TotalCount); err != nil {
		return domain.NotificationSummary{}, fmt.Errorf("failed to summarize notifications: %w", err)
	}
	return summary, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)
	query := `
		INSERT INTO notifications (
			notification_id, business_id, recipient_user_id, type, reference_type, reference_id,
			title, message, is_read, read_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.NotificationID, m.BusinessID, m.RecipientUserID, m.Type, m.ReferenceType, m.ReferenceID,
		m.Title, m.Message, m.IsRead, m.ReadAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", n.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, recipientUserID string, at time.Time) (bool, error) {
	cmdTag, err := r.db(ctx).Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $1
		WHERE notification_id = $2 AND recipient_user_id = $3 AND NOT is_read`,
		at, notificationID, recipientUserID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxNotificationRepository) MarkAllNotificationsRead(ctx context.Context, recipientUserID string, businessID *string, at time.Time) (int64, error) {
	qb := newQueryBuilder(`UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE NOT is_read`, at)
	qb.where("recipient_user_id = $%d", recipientUserID)
	if businessID != nil {
		qb.where("business_id = $%d", *businessID)
	}
	cmdTag, err := r.db(ctx).Exec(ctx, qb.String(), qb.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
