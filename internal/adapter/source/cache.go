package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// ErrCacheMiss is returned by a PayloadStore that has no entry for a key.
var ErrCacheMiss = errors.New("cache miss")

// PayloadStore is the key/value store behind CachedSource.
type PayloadStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedSource serves the dataset payload from a PayloadStore and only falls
// back to the wrapped source on a miss. Store failures are logged and treated
// as a miss, so a broken cache never blocks startup. Only payloads that parse
// as a dataset are stored; a stored payload that no longer parses is evicted.
type CachedSource struct {
	inner  domain.DatasetSource
	store  PayloadStore
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource decorates inner. key identifies the payload in the store.
func NewCachedSource(inner domain.DatasetSource, store PayloadStore, key string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		store:  store,
		key:    key,
		ttl:    ttl,
		logger: logger,
	}
}

// Name reports the wrapped source's name.
func (c *CachedSource) Name() string { return c.inner.Name() }

// Fetch implements domain.DatasetSource.
func (c *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	payload, err := c.store.Get(ctx, c.key)
	switch {
	case err == nil && usable(payload):
		c.logger.Info("dataset served from cache", "key", c.key, "bytes", len(payload))
		return payload, nil
	case err == nil:
		c.logger.Warn("cached dataset is not usable, evicting", "key", c.key, "bytes", len(payload))
		if err := c.store.Delete(ctx, c.key); err != nil {
			c.logger.Warn("dataset cache evict failed", "key", c.key, "error", err)
		}
	case !errors.Is(err, ErrCacheMiss):
		c.logger.Warn("dataset cache read failed", "key", c.key, "error", err)
	}

	payload, err = c.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if !usable(payload) {
		c.logger.Warn("dataset not cached: payload does not parse", "key", c.key)
		return payload, nil
	}
	if err := c.store.Set(ctx, c.key, payload, c.ttl); err != nil {
		c.logger.Warn("dataset cache write failed", "key", c.key, "error", err)
	}
	return payload, nil
}

// usable reports whether payload decodes into a non-empty dataset.
func usable(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	_, err := domain.ParseDataset(payload)
	return err == nil
}

// RedisStore is a PayloadStore backed by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis instance at url
// (e.g. redis://localhost:6379/0).
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// Get implements PayloadStore.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

// Set implements PayloadStore.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements PayloadStore.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// CacheKey derives the store key for a dataset location.
func CacheKey(location string) string {
	return "heatmap:dataset:" + location
}
