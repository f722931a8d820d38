// Package ratelimit throttles HTTP requests with a token bucket.
//
// Rejected requests are reported as apierror.Throttled errors, so they render
// through the same error pipeline as every other failure:
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//	limiter, err := ratelimit.NewTokenBucket(store, 10, time.Second, ratelimit.WithBurst(20))
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ByIP,
//		ratelimit.WithErrorWriter(renderer.Write),
//	))
//
// Storage failures fail open: the request is served and the error is passed
// to the optional WithStoreErrorHandler callback.
package ratelimit
