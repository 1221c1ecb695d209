package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/redis/go-redis/v9"
)

var _ service.KeyValueStore = (*RedisStore)(nil)

// RedisStore is a service.KeyValueStore backed by Redis, for sharing one
// cart between machines.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to redisURL and checks it responds. Keys are
// stored under prefix.
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: redis url: %w", common.ErrInvalidConfig, err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.MaxRetries = 1

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %w", common.ErrPersistenceFailure, opts.Addr, err)
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

// Read implements service.KeyValueStore.
func (r *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Write implements service.KeyValueStore. Values never expire.
func (r *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
