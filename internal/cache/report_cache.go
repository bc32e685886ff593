package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/institute-backend/internal/config"
)

// fallbackTTL bounds entries when no TTL is configured. Rows written under a
// superseded generation are never read again and must still expire.
const fallbackTTL = 10 * time.Minute

// RedisReportCache stores rendered report rows as JSON with a TTL. Keys are
// scoped by a generation counter that Invalidate bumps.
type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisReportCache creates a cache on rdb. A non-positive ttl falls back to
// ten minutes.
func NewRedisReportCache(rdb *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = fallbackTTL
	}
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

// Generation returns the current report generation. A missing counter is
// generation 0.
func (c *RedisReportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, config.CacheKey.ReportGenerationKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get report generation: %w", err)
	}
	return gen, nil
}

// Get decodes the entry at key into dst. It reports false on a miss.
func (c *RedisReportCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Set stores v at key.
func (c *RedisReportCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate starts a new generation and drops the entries of the previous
// one. A reader still computing against the old generation writes to keys
// that are no longer looked up.
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	gen, err := c.rdb.Incr(ctx, config.CacheKey.ReportGenerationKey()).Result()
	if err != nil {
		return fmt.Errorf("bump report generation: %w", err)
	}
	return c.rdb.Del(ctx, config.CacheKey.ReportKeys(gen-1)...).Err()
}
