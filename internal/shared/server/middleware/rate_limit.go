package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// unknownClient is the sentinel key used when the trusted address header is
// absent, so that unidentified traffic still shares one budget.
const unknownClient = "unknown"

// RateLimiter admits requests within a trailing sliding window, keyed by
// client address. Entries are pruned lazily on the next check for the same
// key and live for the lifetime of the process. The limiter is advisory
// abuse throttling, not a security boundary.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string][]time.Time
}

// NewRateLimiter constructs a limiter allowing limit requests per window.
// now may be nil, in which case time.Now is used; tests inject a fake clock.
func NewRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		clients: make(map[string][]time.Time),
	}
}

// Allow reports whether a request from key is admitted. Instants older than
// the window are dropped before counting, and a rejected request does not
// consume a slot. reset is when the oldest counted instant leaves the window.
func (l *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	t := l.now()
	cutoff := t.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	var recent []time.Time
	for _, inst := range l.clients[key] {
		if inst.After(cutoff) {
			recent = append(recent, inst)
		}
	}

	if len(recent) >= l.limit {
		l.clients[key] = recent
		return false, 0, recent[0].Add(l.window)
	}

	recent = append(recent, t)
	l.clients[key] = recent
	return true, l.limit - len(recent), recent[0].Add(l.window)
}

// Limit returns the configured per-window request budget.
func (l *RateLimiter) Limit() int { return l.limit }

// Window returns the configured trailing window.
func (l *RateLimiter) Window() time.Duration { return l.window }

// RateLimitConfig wires a limiter into the middleware.
type RateLimitConfig struct {
	Limiter *RateLimiter
	// IPHeader names the trusted proxy-supplied client address header
	// (e.g. CF-Connecting-IP). Missing values fall back to a shared
	// sentinel rather than the transport peer address.
	IPHeader string
}

// RateLimit rejects requests beyond the limiter's budget with 429 and the
// Retry-After / X-RateLimit-* headers. Preflight requests are not counted.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(cfg.IPHeader))
		if key == "" {
			key = unknownClient
		}

		allowed, _, reset := cfg.Limiter.Allow(key)
		if allowed {
			c.Next()
			return
		}

		retryAfter := int(cfg.Limiter.Window() / time.Second)
		if retryAfter <= 0 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limiter.Limit()))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.UnixMilli(), 10))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   "rate_limited",
			"message": "Too many requests. Please try again later.",
		})
		c.Abort()
	}
}
