package pgsql

import (
	"context"
	"errors"
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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	user_id, name, email, password_hash, auth_provider, provider_user_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at,
	refresh_token_hash, refresh_token_expiry_time
FROM users
WHERE deleted_at IS NULL`

// findUser returns the single active user matching the filter.
func (r *PgxUserRepository) findUser(ctx context.Context, filter string, args ...any) (*domain.User, error) {
	rows, err := r.db(ctx).Query(ctx, userSelectQuery+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, ` AND user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, ` AND LOWER(email) = LOWER($1)`, email)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findUser(ctx, ` AND auth_provider = $1 AND provider_user_id = $2`, string(provider), providerUserID)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, name, email, password_hash, auth_provider, provider_user_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.UserID, m.Name, m.Email, m.PasswordHash, m.AuthProvider, m.ProviderUserID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, user.Name, user.LastUpdatedAt, user.LastUpdatedBy, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
