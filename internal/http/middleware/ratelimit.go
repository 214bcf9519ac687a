package middleware

import (
	"net"
	"net/http"

	"github.com/minicrm/minicrm/pkg/ratelimiter"
)

// RateLimitMiddleware throttles public endpoints per remote address using a
// fixed-window limiter.
type RateLimitMiddleware struct {
	limiter *ratelimiter.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimiter.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit enforces the namespace's policy keyed by the caller's address.
func (m *RateLimitMiddleware) Limit(namespace string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.limiter.Allow(namespace, remoteAddr(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// remoteAddr strips the port so the window is per host, not per ephemeral
// connection.
func remoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
