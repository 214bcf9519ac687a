package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	rl.SetPolicy("public_leads", 5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("public_leads", "1.2.3.4"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("public_leads", "1.2.3.4"), "sixth request should be denied")
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	rl.SetPolicy("public_leads", 1, time.Minute)

	assert.True(t, rl.Allow("public_leads", "1.2.3.4"))
	assert.False(t, rl.Allow("public_leads", "1.2.3.4"))
	assert.True(t, rl.Allow("public_leads", "5.6.7.8"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	rl.SetPolicy("public_leads", 1, 20*time.Millisecond)

	assert.True(t, rl.Allow("public_leads", "1.2.3.4"))
	assert.False(t, rl.Allow("public_leads", "1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("public_leads", "1.2.3.4"), "new fixed window should allow again")
}

func TestRateLimiter_UnknownNamespaceFailsClosed(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	assert.False(t, rl.Allow("unconfigured", "1.2.3.4"))
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	rl.Stop()
}
