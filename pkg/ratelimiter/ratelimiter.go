package ratelimiter

import (
	"sync"
	"time"
)

// RatePolicy defines the rate limit configuration for a namespace.
type RatePolicy struct {
	MaxRequests int
	Window      time.Duration
}

type window struct {
	start time.Time
	count int
}

// RateLimiter provides in-memory fixed-window rate limiting with namespace
// support. It tracks request counts per namespace:key combination and
// enforces a separate policy per namespace.
//
// Example usage:
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("public_leads", 5, time.Minute)
//
//	if !rl.Allow("public_leads", remoteAddr) {
//	    return http.StatusTooManyRequests
//	}
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	policies map[string]RatePolicy
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter and starts a background cleanup
// goroutine that removes stale windows. Configure namespaces with SetPolicy
// before calling Allow.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		windows:  make(map[string]*window),
		policies: make(map[string]RatePolicy),
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// SetPolicy configures the fixed-window policy for a namespace.
func (rl *RateLimiter) SetPolicy(namespace string, maxRequests int, windowSize time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = RatePolicy{
		MaxRequests: maxRequests,
		Window:      windowSize,
	}
}

// Allow reports whether a request for the given namespace and key is within
// the configured limit. A namespace with no policy fails closed.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, exists := rl.policies[namespace]
	if !exists {
		return false
	}

	now := time.Now()
	compositeKey := namespace + ":" + key

	w, ok := rl.windows[compositeKey]
	if !ok || now.Sub(w.start) >= policy.Window {
		rl.windows[compositeKey] = &window{start: now, count: 1}
		return true
	}

	if w.count >= policy.MaxRequests {
		return false
	}

	w.count++
	return true
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeStaleWindows()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) removeStaleWindows() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, w := range rl.windows {
		// A window older than the largest configured policy window can
		// never influence an Allow decision again.
		stale := true
		for _, policy := range rl.policies {
			if now.Sub(w.start) < policy.Window {
				stale = false
				break
			}
		}
		if stale {
			delete(rl.windows, key)
		}
	}
}
