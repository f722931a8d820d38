package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// ErrorWriter renders a rejected request. handler.ErrorRenderer.Write fits.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	writeError   ErrorWriter
	skip         func(r *http.Request) bool
	onStoreError func(r *http.Request, err error)
}

// WithErrorWriter sets how throttled requests are answered.
func WithErrorWriter(fn ErrorWriter) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.writeError = fn
		}
	}
}

// WithSkipFunc exempts requests for which fn returns true.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skip = fn
	}
}

// WithStoreErrorHandler observes limiter failures. The request is served
// regardless.
func WithStoreErrorHandler(fn func(r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onStoreError = fn
	}
}

// Middleware enforces limiter per key. Rejected requests get Retry-After
// and are answered with an apierror.Throttled error carrying retry_after
// metadata. It panics when keyFunc is nil.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic(ErrNilKeyFunc)
	}
	cfg := &middlewareConfig{writeError: writeStatus}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skip != nil && cfg.skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				if cfg.onStoreError != nil {
					cfg.onStoreError(r, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := max(1, int(math.Ceil(result.RetryAfter().Seconds())))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				cfg.writeError(w, r, Throttled(retryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Throttled returns the error rendered for rejected requests.
func Throttled(retryAfter int) *apierror.Error {
	return apierror.Throttled.New("rate limit exceeded", apierror.Context{
		"retry_after":        retryAfter,
		apierror.MetadataKey: map[string]any{"retry_after": retryAfter},
	}, ErrRateLimitExceeded)
}

func writeStatus(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusTooManyRequests
	if e, ok := apierror.As(err); ok {
		status = e.HTTPStatus()
	}
	http.Error(w, http.StatusText(status), status)
}
