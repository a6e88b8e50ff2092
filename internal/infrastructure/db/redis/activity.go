package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultActivityWindow = time.Minute

// ActivityThrottle coalesces last-active writes through Redis: at most one
// store write per account per window. Key format: active:<account_id>.
// Purely advisory; the identity store remains the source of truth.
type ActivityThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewActivityThrottle wraps the given Redis client. A non-positive window
// falls back to the default.
func NewActivityThrottle(client *redis.Client, window time.Duration) *ActivityThrottle {
	if window <= 0 {
		window = defaultActivityWindow
	}
	return &ActivityThrottle{client: client, window: window}
}

// RecentlySeen reports whether activity for the account was already recorded
// within the window.
func (t *ActivityThrottle) RecentlySeen(ctx context.Context, accountID string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(accountID)).Result()
	if err != nil {
		return false, fmt.Errorf("activity check: %w", err)
	}
	return n > 0, nil
}

// MarkSeen records activity for the account (expires after the window).
func (t *ActivityThrottle) MarkSeen(ctx context.Context, accountID string) error {
	return t.client.Set(ctx, t.key(accountID), "1", t.window).Err()
}

func (t *ActivityThrottle) key(accountID string) string {
	return "active:" + accountID
}
