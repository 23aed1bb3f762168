package adapter

import (
	"context"
	"errors"
	"time"

	"lecture-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores quiz sessions in Redis.
type RedisCache struct {
	rdb redis.Cmdable
}

// NewRedisCache wraps an already connected client.
func NewRedisCache(rdb redis.Cmdable) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	s, err := c.rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", domain.ErrCacheMiss
	case err != nil:
		return "", err
	}
	return s, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

var _ domain.Cache = (*RedisCache)(nil)
