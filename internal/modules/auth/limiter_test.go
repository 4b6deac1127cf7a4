package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterFor_EvictsIdleNames(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHandler(nil)
	h.now = func() time.Time { return clock }
	h.lastSweep = clock

	for _, name := range []string{"a", "b", "c"} {
		h.limiterFor(name)
	}
	assert.Len(t, h.limiters, 3)

	clock = clock.Add(limiterIdle / 2)
	busy := h.limiterFor("a")

	clock = clock.Add(limiterIdle/2 + time.Second)
	h.limiterFor("d")

	assert.Len(t, h.limiters, 2)
	assert.Contains(t, h.limiters, "a")
	assert.Contains(t, h.limiters, "d")
	assert.Same(t, busy, h.limiterFor("a"))
}

func TestLimiterFor_KeepsStateBetweenSweeps(t *testing.T) {
	h := NewHandler(nil)
	lim := h.limiterFor("eve")
	for i := 0; i < loginBurst; i++ {
		assert.True(t, lim.Allow())
	}
	assert.False(t, h.limiterFor("eve").Allow())
}
