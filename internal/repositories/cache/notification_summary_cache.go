package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	notificationSummaryPrefix    = "notifications:summary:"
	notificationGenerationPrefix = "notifications:gen:"
	// DefaultSummaryTTL bounds how stale a summary can get if an invalidation is lost.
	DefaultSummaryTTL = 5 * time.Minute
	generationTTL     = 24 * time.Hour
	// noGeneration never matches a stored generation, so Set becomes a no-op.
	noGeneration int64 = -1
)

// setIfGeneration writes the scope field only while the recipient's generation is unchanged.
// KEYS: summary hash, generation key. ARGV: generation, field, value, ttl in ms.
var setIfGeneration = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// RedisNotificationSummaryCache keeps one hash per recipient, one field per scope,
// plus a generation counter that Invalidate advances. A summary read from storage is
// written back only if no invalidation happened since the miss.
type RedisNotificationSummaryCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

var _ portsrepo.NotificationSummaryCache = (*RedisNotificationSummaryCache)(nil)

// NewRedisNotificationSummaryCache returns nil when rdb is nil so the caller can fall back.
func NewRedisNotificationSummaryCache(rdb redis.UniversalClient, ttl time.Duration) *RedisNotificationSummaryCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &RedisNotificationSummaryCache{rdb: rdb, ttl: ttl}
}

func summaryKey(recipientUserID string) string {
	return notificationSummaryPrefix + recipientUserID
}

func generationKey(recipientUserID string) string {
	return notificationGenerationPrefix + recipientUserID
}

func scopeField(scope string) string {
	if scope == "" {
		return "*"
	}
	return scope
}

func (c *RedisNotificationSummaryCache) warn(ctx context.Context, msg, recipientUserID string, err error) {
	middleware.GetLoggerFromCtx(ctx).Warn(msg, slog.String("user_id", recipientUserID), slog.String("error", err.Error()))
}

func (c *RedisNotificationSummaryCache) Get(ctx context.Context, recipientUserID, scope string) (*domain.NotificationSummary, int64, bool) {
	pipe := c.rdb.TxPipeline()
	field := pipe.HGet(ctx, summaryKey(recipientUserID), scopeField(scope))
	gen := pipe.Get(ctx, generationKey(recipientUserID))
	// Per-command results are checked below; Exec reports redis.Nil for a plain miss.
	_, _ = pipe.Exec(ctx)

	generation, err := gen.Int64()
	switch {
	case errors.Is(err, redis.Nil):
		generation = 0
	case err != nil:
		c.warn(ctx, "Notification summary cache read failed", recipientUserID, err)
		return nil, noGeneration, false
	}

	raw, err := field.Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn(ctx, "Notification summary cache read failed", recipientUserID, err)
			return nil, noGeneration, false
		}
		return nil, generation, false
	}
	var summary domain.NotificationSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, generation, false
	}
	return &summary, generation, true
}

func (c *RedisNotificationSummaryCache) Set(ctx context.Context, recipientUserID, scope string, generation int64, summary domain.NotificationSummary) {
	if generation < 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	keys := []string{summaryKey(recipientUserID), generationKey(recipientUserID)}
	err = setIfGeneration.Run(ctx, c.rdb, keys, strconv.FormatInt(generation, 10), scopeField(scope), raw, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.warn(ctx, "Notification summary cache write failed", recipientUserID, err)
	}
}

func (c *RedisNotificationSummaryCache) Invalidate(ctx context.Context, recipientUserID string) {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, summaryKey(recipientUserID))
	pipe.Incr(ctx, generationKey(recipientUserID))
	pipe.Expire(ctx, generationKey(recipientUserID), generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.warn(ctx, "Notification summary cache invalidation failed", recipientUserID, err)
	}
}
