package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dshills/qfscore/internal/trust"
)

const defaultRedisTimeout = 500 * time.Millisecond

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis stores results as JSON under a key prefix.
type Redis struct {
	client  redisKV
	prefix  string
	timeout time.Duration
}

// NewRedis wraps a go-redis client. It returns nil for a nil client.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		return nil
	}
	return &Redis{
		client:  client,
		prefix:  "qfscore:",
		timeout: defaultRedisTimeout,
	}
}

func (c *Redis) Get(ctx context.Context, key string) (trust.Result, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return trust.Result{}, false, nil
	}
	if err != nil {
		return trust.Result{}, false, fmt.Errorf("cache.Redis.Get: %w", err)
	}
	var r trust.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return trust.Result{}, false, fmt.Errorf("cache.Redis.Get: decoding %s: %w", key, err)
	}
	return r, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, r trust.Result, ttl time.Duration) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cache.Redis.Set: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Set: %w", err)
	}
	return nil
}
