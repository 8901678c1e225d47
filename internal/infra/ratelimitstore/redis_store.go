package ratelimitstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/complyline/deadline-service/internal/service/ratelimit"
)

const (
	windowKeyPrefix = "ratelimit:window:"

	// minTTL keeps keys from lingering with a zero expiry when the
	// remaining window is already sub-second.
	minTTL = time.Second
)

// RedisStore shares rate-limit windows across process instances. Records
// expire with the window so stale keys clean themselves up.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*ratelimit.Window, error) {
	data, err := s.client.Get(ctx, windowKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	var window ratelimit.Window
	if err := json.Unmarshal(data, &window); err != nil {
		return nil, fmt.Errorf("corrupt rate limit window for key %s: %w", key, err)
	}
	return &window, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, window ratelimit.Window, ttl time.Duration) error {
	data, err := json.Marshal(window)
	if err != nil {
		return fmt.Errorf("failed to encode rate limit window: %w", err)
	}

	if ttl < minTTL {
		ttl = minTTL
	}

	if err := s.client.Set(ctx, windowKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate limit window: %w", err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, windowKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit window: %w", err)
	}
	return nil
}
