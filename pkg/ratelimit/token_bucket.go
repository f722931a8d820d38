package ratelimit

import (
	"context"
	"time"
)

// TokenBucket allows bursts of up to burst requests while holding the
// average to rate requests per interval.
type TokenBucket struct {
	store  Store
	rate   int
	burst  int
	refill time.Duration
	now    func() time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithBurst sets the bucket capacity. Values below the rate are raised to it.
func WithBurst(burst int) TokenBucketOption {
	return func(tb *TokenBucket) {
		if burst > 0 {
			tb.burst = burst
		}
	}
}

// NewTokenBucket returns a limiter refilling rate tokens per interval.
func NewTokenBucket(store Store, rate int, interval time.Duration, opts ...TokenBucketOption) (*TokenBucket, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if rate <= 0 {
		return nil, ErrInvalidLimit
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	tb := &TokenBucket{
		store:  store,
		rate:   rate,
		burst:  rate,
		refill: interval / time.Duration(rate),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.burst = max(tb.burst, tb.rate)
	if tb.refill <= 0 {
		tb.refill = time.Nanosecond
	}
	return tb, nil
}

func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	return tb.AllowN(ctx, key, 1)
}

// AllowN takes n tokens from the bucket of key when available.
func (tb *TokenBucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if n <= 0 {
		n = 1
	}

	allowed, remaining, wait, err := tb.store.ConsumeTokens(ctx, key, n, tb.burst, tb.refill)
	if err != nil {
		return nil, err
	}
	return &Result{
		Allowed:   allowed,
		Limit:     tb.burst,
		Remaining: max(0, remaining),
		ResetAt:   tb.now().Add(wait),
	}, nil
}

func (tb *TokenBucket) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return tb.store.Delete(ctx, key)
}
