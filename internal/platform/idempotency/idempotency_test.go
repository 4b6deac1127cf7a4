package idempotency

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestNilGuardAllowsEverything(t *testing.T) {
	var g *Guard

	ok, err := g.Claim(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, g.Release(context.Background(), "k"))
}

func TestClaim_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	g := NewGuard(client)
	key := "test-" + uuid.NewString()
	defer client.Del(ctx, keyPrefix+key)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := g.Claim(ctx, key)
			if assert.NoError(t, err) && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestRelease(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	g := NewGuard(client)
	key := "test-" + uuid.NewString()
	defer client.Del(ctx, keyPrefix+key)

	ok, err := g.Claim(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Release(ctx, key))

	ok, err = g.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}
