package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"mortgage-planner/logging"
)

// RateLimitMiddleware rejects requests over the client's limit with 429 and
// reports the window state in X-RateLimit-* headers.
func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		d := limiter.Take(ip)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			logging.FromContext(r.Context()).WithComponent(logging.ComponentRateLimit).
				Warn("rate limit exceeded", logging.FieldClientIP, ip, logging.FieldPath, r.URL.Path, "retry_after_s", retry)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
