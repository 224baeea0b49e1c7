package adapter

import (
	"context"
	"errors"
	"time"

	"interview-assistant/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStorageAdapter implements domain.SessionStorage using a Redis client.
type RedisStorageAdapter struct {
	client *redis.Client
}

// NewRedisStorageAdapter creates a new instance of RedisStorageAdapter.
// It expects a connected *redis.Client.
func NewRedisStorageAdapter(client *redis.Client) domain.SessionStorage {
	return &RedisStorageAdapter{client: client}
}

// Get retrieves a record from Redis.
// It translates redis.Nil to domain.ErrStorageMiss.
func (r *RedisStorageAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrStorageMiss
		}
		return "", err
	}
	return val, nil
}

// Set writes a record to Redis.
func (r *RedisStorageAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes a record from Redis.
func (r *RedisStorageAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisStorageAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
