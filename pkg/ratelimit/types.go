package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed bool

	// Limit is the bucket capacity.
	Limit int

	Remaining int

	// ResetAt is when the next token becomes available for a rejected
	// request, or when the bucket is full again for an allowed one.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before retrying. Zero when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Limiter decides whether requests identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// Store keeps token buckets. Implementations must make ConsumeTokens atomic
// per key.
type Store interface {
	// ConsumeTokens adds one token to the bucket of key per elapsed refill
	// period, capped at burst, then takes n tokens if that many are left.
	// wait is the time until the bucket is full when allowed, and the time
	// until n tokens are available when not.
	ConsumeTokens(ctx context.Context, key string, n, burst int, refill time.Duration) (allowed bool, remaining int, wait time.Duration, err error)

	Delete(ctx context.Context, key string) error
}
