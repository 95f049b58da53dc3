package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

// CacheRepository wraps Redis for small hot-path values. A nil client is
// tolerated so the API keeps working when Redis is unavailable.
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository constructs the repository.
func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{client: client}
}

// Enabled reports whether a Redis backend is wired in.
func (r *CacheRepository) Enabled() bool {
	return r != nil && r.client != nil
}

// Get returns the cached value for a key.
func (r *CacheRepository) Get(ctx context.Context, key string) (string, error) {
	if !r.Enabled() {
		return "", appErrors.ErrCacheMiss
	}
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", appErrors.ErrCacheMiss
		}
		return "", err
	}
	return value, nil
}

// Set stores a value under a key with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys from the cache.
func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if !r.Enabled() || len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
