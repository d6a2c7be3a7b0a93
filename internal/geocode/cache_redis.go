package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"astroengine/pkg/platform/sentinel"
)

const redisKeyPrefix = "geocode:"

// RedisCache stores places as JSON with a key TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed cache.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns a stored place.
func (c *RedisCache) Get(ctx context.Context, key string) (Location, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Location{}, sentinel.ErrNotFound
		}
		return Location{}, fmt.Errorf("get geocode cache: %w", err)
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, fmt.Errorf("decode geocode cache: %w", err)
	}
	return loc, nil
}

// Set stores a place with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, loc Location) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode geocode cache: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("save geocode cache: %w", err)
	}
	return nil
}
