package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAddrEnv names the environment variable holding the redis address
// for shared preview deployments.
const RedisAddrEnv = "FACEPLATE_REDIS_ADDR"

// RedisCache backs the cache with a redis server so several preview
// instances can share rendered artifacts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the given redis address.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// RedisFromEnv returns a redis cache when FACEPLATE_REDIS_ADDR is set,
// otherwise nil.
func RedisFromEnv() *RedisCache {
	addr := os.Getenv(RedisAddrEnv)
	if addr == "" {
		return nil
	}
	return NewRedisCache(addr)
}

// Get retrieves a value from redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value from redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
