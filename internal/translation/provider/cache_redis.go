package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "registrar/internal/platform/redis"
	"registrar/pkg/platform/sentinel"
)

// RedisCache stores provider results in Redis keyed by a digest of the source
// text and the language pair.
type RedisCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewRedisCache builds a cache over an existing Redis client. Returns nil when
// the client is nil so callers can pass the result straight to WithCache.
func NewRedisCache(client *platformredis.Client, ttl time.Duration) *RedisCache {
	if client == nil {
		return nil
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, text, from, to string) (string, error) {
	value, err := c.client.Get(ctx, cacheKey(text, from, to)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("translation cache get: %w", err)
	}
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, text, from, to, value string) error {
	if err := c.client.Set(ctx, cacheKey(text, from, to), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("translation cache set: %w", err)
	}
	return nil
}

func cacheKey(text, from, to string) string {
	digest := sha256.Sum256([]byte(text))
	return fmt.Sprintf("registrar:translate:%s:%s:%s", hex.EncodeToString(digest[:8]), from, to)
}
