package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/docstack/docstack/pkg/response"
)

const (
	defaultAuthRPS   = 5
	defaultAuthBurst = 10
	defaultIdleTTL   = 5 * time.Minute
)

// visitor pairs a client's token bucket with its last activity, so idle
// buckets can be evicted.
type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-IP token bucket. Buckets idle longer than the
// TTL are swept out by a background goroutine.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

// NewRateLimiter builds a limiter allowing rps sustained requests per second
// with the given burst per client IP. Non-positive values fall back to the
// defaults used on credential endpoints.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration) *RateLimiter {
	if rps <= 0 {
		rps = defaultAuthRPS
	}
	if burst <= 0 {
		burst = defaultAuthBurst
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
	}
	go rl.sweep()
	return rl
}

// allow takes a token from the IP's bucket, creating the bucket on first
// sight.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.bucket.Allow()
}

// sweep evicts buckets idle past the TTL, at TTL cadence.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.idleTTL {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects requests exceeding the client's bucket with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			response.TooManyRequests(c, "too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
