package errors

import (
	"math"
	"time"
)

// Retrying is a host-level concern layered above a single adapter call:
// the orchestrator itself never retries. These helpers let a host decide
// whether and when a failed call is worth another attempt.

// IsRetryable reports whether a caller should consider retrying err.
// Only rate-limit and network failures qualify; validation, auth,
// not-found, and contract errors are deterministic.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return GetErrorInfo(CodeOf(err)).Retryable
}

// RetryPolicy describes a bounded exponential backoff schedule.
type RetryPolicy struct {
	MaxAttempts     int           `json:"max_attempts"`
	InitialInterval time.Duration `json:"initial_interval"`
	Multiplier      float64       `json:"multiplier"`
	MaxInterval     time.Duration `json:"max_interval"`
}

// DefaultRetryPolicy returns a conservative backoff schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 1 * time.Second,
		Multiplier:      2.0,
		MaxInterval:     30 * time.Second,
	}
}

// ShouldRetry reports whether another attempt is allowed for err after
// attempt preceding attempts.
func (p RetryPolicy) ShouldRetry(err error, attempt int) bool {
	return attempt < p.MaxAttempts && IsRetryable(err)
}

// NextDelay returns the backoff delay before the given attempt
// (1-based, counting completed attempts).
func (p RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(p.InitialInterval) * math.Pow(p.Multiplier, float64(attempt-1))
	if delay > float64(p.MaxInterval) {
		return p.MaxInterval
	}
	return time.Duration(delay)
}
