package middleware

import (
	"sync"
	"time"

	"bookcatalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Throttle applies a per-client token bucket. The key is the user id for
// authenticated requests and the client IP otherwise, so anonymous and
// authenticated traffic get independent budgets.
func Throttle(rps float64, burst int) gin.HandlerFunc {
	limiter := newKeyedLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := UserID(c); ok {
			key = "user:" + userID.String()
		}

		if !limiter.allow(key) {
			response.TooManyRequests(c, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// keyedLimiter hands out one token bucket per key. Stale buckets are
// swept periodically so the map does not grow without bound.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	kl := &keyedLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
	}
	go kl.sweep()
	return kl
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.Lock()
	entry, ok := kl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	kl.mu.Unlock()

	return entry.limiter.Allow()
}

func (kl *keyedLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		kl.mu.Lock()
		for key, entry := range kl.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(kl.limiters, key)
			}
		}
		kl.mu.Unlock()
	}
}
