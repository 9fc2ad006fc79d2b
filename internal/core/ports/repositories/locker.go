package repositories

import "context"

// Locker hands out short-lived exclusive locks by key.
type Locker interface {
	// Obtain returns apperrors.ErrConflict when the key is held by someone else.
	Obtain(ctx context.Context, key string) (release func(context.Context), err error)
}
