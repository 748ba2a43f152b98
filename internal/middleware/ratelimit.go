package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// idleLimiterTTL is how long an unused per-IP limiter is kept
	idleLimiterTTL = 10 * time.Minute
	// sweepInterval is the minimum time between scans for idle limiters
	sweepInterval = time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages per-IP rate limiting
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	lastSweep time.Time
	rate      rate.Limit
	burst     int
	now       func() time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     r,
		burst:    burst,
		now:      time.Now,
	}
}

// GetLimiter returns the rate limiter for a given IP. At most once per
// sweepInterval it drops limiters idle longer than idleLimiterTTL.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > idleLimiterTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// retryAfterSeconds is the wait until the next token, at least one second
func (l *IPRateLimiter) retryAfterSeconds() int {
	if l.rate <= 0 {
		return 60
	}
	return int(math.Max(1, math.Ceil(1/float64(l.rate))))
}

// RateLimitMiddleware rejects requests over the per-IP budget with
// 429 and a Retry-After header
func RateLimitMiddleware(ipLimiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "anonymous"
		}
		if !ipLimiter.GetLimiter(ip).Allow() {
			retryAfter := ipLimiter.retryAfterSeconds()
			log.Printf("[RATELIMIT] Request rejected ip=%s path=%s", ip, c.Request.URL.Path)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests. Please slow down.",
				"code":       "RATE_LIMITED",
				"retryAfter": retryAfter,
			})
			return
		}
		c.Next()
	}
}
