package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FailureWindow tracks failed login attempts per identity inside a
// fixed TTL window. Counters expire on their own, so the tracked set
// stays bounded no matter how many identities are probed.
type FailureWindow struct {
	client *redis.Client
	window time.Duration
}

func NewFailureWindow(client *redis.Client, window time.Duration) *FailureWindow {
	return &FailureWindow{client: client, window: window}
}

func (f *FailureWindow) key(identity string) string {
	return fmt.Sprintf("planetaria:failed_login:%s", identity)
}

// RecordFailure increments the failure counter for the identity and
// returns the count inside the current window. The expiry is set on
// first failure only, so the window is fixed rather than sliding.
func (f *FailureWindow) RecordFailure(ctx context.Context, identity string) (int64, error) {
	key := f.key(identity)

	count, err := f.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failure counter incr failed: %w", err)
	}
	if count == 1 {
		if err := f.client.Expire(ctx, key, f.window).Err(); err != nil {
			return count, fmt.Errorf("failure counter expire failed: %w", err)
		}
	}

	return count, nil
}

// Reset clears the counter, called after a successful login.
func (f *FailureWindow) Reset(ctx context.Context, identity string) error {
	return f.client.Del(ctx, f.key(identity)).Err()
}
