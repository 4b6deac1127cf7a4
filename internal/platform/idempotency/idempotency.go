// Package idempotency guards non-repeatable requests with a Redis SET NX key.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "idempotency:"
	keyTTL    = 24 * time.Hour
)

// Guard claims request keys. A nil *Guard allows every request.
type Guard struct {
	client *redis.Client
}

func NewGuard(client *redis.Client) *Guard {
	return &Guard{client: client}
}

// Claim returns true the first time key is seen within the TTL window.
func (g *Guard) Claim(ctx context.Context, key string) (bool, error) {
	if g == nil || g.client == nil {
		return true, nil
	}
	ok, err := g.client.SetNX(ctx, keyPrefix+key, 1, keyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release forgets key so a request that failed before committing can be retried.
func (g *Guard) Release(ctx context.Context, key string) error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Del(ctx, keyPrefix+key).Err()
}
