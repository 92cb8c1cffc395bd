package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestPer(t *testing.T) {
	assert.InDelta(t, 5.0, float64(Per(5, time.Second)), 0.001)
	assert.InDelta(t, 0.5, float64(Per(30, time.Minute)), 0.001)
}

func TestBurstThenDeny(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tb := NewTokenBucketWithClock(Per(1, time.Second), 3, clock)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "bucket exhausted")
}

func TestRefill(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tb := NewTokenBucketWithClock(Per(2, time.Second), 2, clock)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	clock.advance(500 * time.Millisecond)
	assert.True(t, tb.Allow(), "one token refilled after 500ms at 2/s")
	assert.False(t, tb.Allow())
}

func TestRefillCapsAtBurst(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tb := NewTokenBucketWithClock(Per(10, time.Second), 2, clock)

	clock.advance(time.Hour)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestWaitReturnsImmediatelyWithTokens(t *testing.T) {
	tb := NewTokenBucket(Per(1, time.Second), 1)

	start := time.Now()
	require.NoError(t, tb.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitHonorsContext(t *testing.T) {
	tb := NewTokenBucket(Per(1, time.Hour), 1)
	require.NoError(t, tb.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaults(t *testing.T) {
	tb := NewTokenBucket(0, 0)
	assert.Equal(t, Rate(1), tb.Rate())
	assert.Equal(t, 1, tb.Burst())
}
