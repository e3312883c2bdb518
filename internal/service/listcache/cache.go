// Package listcache caches JSON-encoded listing pages in Redis. Pages are
// keyed by a per-owner generation; bumping the generation retires every
// page written before it. A nil Redis client turns every call into a no-op
// miss.
package listcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bounties-api/internal/metrics"
)

type Cache struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics metrics.Recorder
}

func New(client *redis.Client, ttl time.Duration, recorder metrics.Recorder) *Cache {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Cache{redis: client, ttl: ttl, metrics: recorder}
}

func generationKey(prefix string) string {
	return prefix + "gen"
}

// Key returns the page key for parts under the owner's current generation.
// It must be called before the store is read. An empty key means the cache
// is bypassed for this request.
func (c *Cache) Key(ctx context.Context, prefix string, parts ...string) string {
	if c == nil || c.redis == nil || c.ttl <= 0 {
		return ""
	}

	gen, err := c.redis.Get(ctx, generationKey(prefix)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "list cache generation read failed", slog.String("prefix", prefix), slog.String("error", err.Error()))
		return ""
	}
	return fmt.Sprintf("%sg%d:%s", prefix, gen, strings.Join(parts, ":"))
}

// Get decodes the cached value for key into dest and reports whether it did.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil || key == "" {
		return false
	}

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(cached, dest) != nil {
		c.metrics.CacheLookup(false)
		return false
	}
	c.metrics.CacheLookup(true)
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil || key == "" || c.ttl <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "list cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Invalidate moves the owner to a new generation. Pages cached under an
// older generation, including ones written by reads still in flight, are
// never served again. The generation key has no TTL so a counter reset
// cannot revive an old page.
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Incr(ctx, generationKey(prefix)).Err()
}
