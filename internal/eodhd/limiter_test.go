package eodhd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// admittedWithinMinute counts reservations made at one instant that may
// start before a minute has passed.
func admittedWithinMinute(c *Client, attempts int) int {
	start := time.Now()
	admitted := 0
	for i := 0; i < attempts; i++ {
		if c.limiter.ReserveN(start, 1).DelayFrom(start) < time.Minute {
			admitted++
		}
	}
	return admitted
}

func TestClient_RateLimitPerMinute(t *testing.T) {
	assert.Equal(t, DefaultRateLimit, admittedWithinMinute(NewClient("k"), 500))
	assert.Equal(t, 15, admittedWithinMinute(NewClient("k", WithRateLimit(15)), 500))
}

func TestClient_RateLimitUnlimited(t *testing.T) {
	assert.Equal(t, 500, admittedWithinMinute(NewClient("k", WithRateLimit(0)), 500))
}
