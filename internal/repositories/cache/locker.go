package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// DefaultLockTTL is long enough for one review transaction.
const DefaultLockTTL = 30 * time.Second

// RedisLocker hands out redis locks that expire on their own if the holder dies.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

var _ portsrepo.Locker = (*RedisLocker)(nil)

// NewRedisLocker returns nil when rdb is nil.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

// Obtain does not wait; a held key fails fast with apperrors.ErrConflict.
func (l *RedisLocker) Obtain(ctx context.Context, key string) (func(context.Context), error) {
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s is locked", apperrors.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to release lock",
				slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}
