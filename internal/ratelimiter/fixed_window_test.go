package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	limiter := NewFixedWindowLimiter(2, 50*time.Millisecond)

	allowed, _ := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, retryAfter := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 50*time.Millisecond, retryAfter)

	// a different client has its own window
	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)

	// window reset frees the first client again
	time.Sleep(80 * time.Millisecond)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
}
