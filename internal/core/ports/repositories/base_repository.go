package repositories

import (
	"context"
)

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// WithinTx runs fn inside one database transaction. Repository calls made with
	// the context passed to fn join that transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Nested calls reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
