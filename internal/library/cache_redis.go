// Copyright (c) 2026 FISBook. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fisbook/users-api/internal/platform/apperr"
)

// RedisCache implements [Cache] on top of Redis with per-key TTLs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed proxy payload cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get retrieves a cached payload.

Description: Returns apperr.NotFound when the key is absent or expired so
callers treat it as a plain cache miss.

Parameters:
  - context: context.Context
  - key: string (Fully prefixed cache key)

Returns:
  - json.RawMessage: Cached payload
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisCache) Get(context context.Context, key string) (json.RawMessage, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cache entry")
		}
		return nil, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	return json.RawMessage(payload), nil
}

/*
Set stores a payload under the given key with a TTL.

Parameters:
  - context: context.Context
  - key: string
  - payload: json.RawMessage
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (cache *RedisCache) Set(context context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	if err := cache.client.Set(context, key, []byte(payload), ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}

	return nil
}
