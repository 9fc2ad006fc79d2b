package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is the part of pgx shared by the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// db returns the transaction carried by ctx, or the pool when there is none.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn in a transaction stored in the context handed to fn.
// A context that already carries a transaction is reused as is.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Rollback after a successful commit is a no-op returning ErrTxClosed.
		_ = r.Rollback(ctx, tx)
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// queryBuilder accumulates numbered placeholders for dynamic WHERE clauses.
type queryBuilder struct {
	sb   strings.Builder
	args []any
}

func newQueryBuilder(base string, args ...any) *queryBuilder {
	b := &queryBuilder{args: args}
	b.sb.WriteString(base)
	return b
}

// where appends " AND <format>" with %d replaced by the next placeholder number.
func (b *queryBuilder) where(format string, arg any) {
	b.args = append(b.args, arg)
	b.sb.WriteString(" AND ")
	b.sb.WriteString(fmt.Sprintf(format, len(b.args)))
}

// raw appends text without arguments.
func (b *queryBuilder) raw(s string) {
	b.sb.WriteString(s)
}

// page appends LIMIT/OFFSET placeholders.
func (b *queryBuilder) page(limit, offset int) {
	b.args = append(b.args, limit, offset)
	b.sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(b.args)-1, len(b.args)))
}

func (b *queryBuilder) String() string {
	return b.sb.String()
}
