package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterExhaustsTokens(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := NewRateLimiter(100, 100*time.Millisecond)

	for i := 0; i < 100; i++ {
		limiter.Allow()
	}
	assert.False(t, limiter.Allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, limiter.Allow())
}
