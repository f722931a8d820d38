// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Headers are examined in order until one holds a valid address:
// CF-Connecting-IP, X-Forwarded-For (first valid entry), X-Real-IP. The TCP
// peer address is the fallback. GetIP returns "" when nothing parses.
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
// Downstream code reads the stored address with FromContext; the rate
// limiter keys requests by it.
package clientip
