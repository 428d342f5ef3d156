package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures   = 5
	defaultFailureWindow = 15 * time.Minute
)

// LoginThrottle counts failed logins per account in Redis.
// Key format: auth:fail:<login>
// The counter expires failureWindow after the first failure of a burst.
type LoginThrottle struct {
	client        *redis.Client
	maxFailures   int64
	failureWindow time.Duration
}

// NewLoginThrottle creates a LoginThrottle. Non-positive limits fall back to
// 5 failures per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultFailureWindow
	}
	return &LoginThrottle{client: client, maxFailures: int64(maxFailures), failureWindow: window}
}

// Blocked reports whether login has reached the failure limit.
func (t *LoginThrottle) Blocked(ctx context.Context, login string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(login)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, login string) error {
	key := t.key(login)

	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, login string) error {
	if err := t.client.Del(ctx, t.key(login)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(login string) string {
	return fmt.Sprintf("auth:fail:%s", login)
}
