// Package ratelimit paces outbound vendor API calls so a publish
// session never provokes a platform's rate limiter on its own.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Rate is requests per second.
type Rate float64

// Per converts "n requests per duration" into a Rate.
func Per(requests int, duration time.Duration) Rate {
	return Rate(float64(requests) / duration.Seconds())
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// TokenBucket is a token bucket limiter: burst tokens refill at rate
// per second, each call consumes one.
type TokenBucket struct {
	mu       sync.Mutex
	rate     Rate
	burst    int
	tokens   float64
	lastTick time.Time
	clock    Clock
}

// NewTokenBucket creates a limiter starting with a full bucket.
func NewTokenBucket(rate Rate, burst int) *TokenBucket {
	return NewTokenBucketWithClock(rate, burst, SystemClock{})
}

// NewTokenBucketWithClock creates a limiter with a custom clock.
func NewTokenBucketWithClock(rate Rate, burst int, clock Clock) *TokenBucket {
	// A non-positive rate would make Wait block forever.
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     rate,
		burst:    burst,
		tokens:   float64(burst),
		lastTick: clock.Now(),
		clock:    clock,
	}
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.advance(tb.clock.Now())
	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	delay := tb.reserve()
	if delay == 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rate returns the configured rate.
func (tb *TokenBucket) Rate() Rate { return tb.rate }

// Burst returns the configured burst size.
func (tb *TokenBucket) Burst() int { return tb.burst }

// reserve takes one token, going negative if necessary, and returns
// how long the caller must wait before acting on it.
func (tb *TokenBucket) reserve() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.advance(tb.clock.Now())
	tb.tokens--
	if tb.tokens >= 0 {
		return 0
	}
	return time.Duration(-tb.tokens / float64(tb.rate) * float64(time.Second))
}

func (tb *TokenBucket) advance(now time.Time) {
	elapsed := now.Sub(tb.lastTick)
	tb.lastTick = now
	tb.tokens += elapsed.Seconds() * float64(tb.rate)
	if tb.tokens > float64(tb.burst) {
		tb.tokens = float64(tb.burst)
	}
}
