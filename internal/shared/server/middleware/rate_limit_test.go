package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{Limiter: limiter, IPHeader: "CF-Connecting-IP"}))
	r.GET("/download/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitEleventhRequestRejected(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10, 60*time.Second, func() time.Time { return now })
	r := limitedRouter(limiter)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/download/abc", nil)
		req.Header.Set("CF-Connecting-IP", "203.0.113.7")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/download/abc", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("request 11 expected 429, got %d", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
	if got := resp.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("expected X-RateLimit-Limit 10, got %q", got)
	}
	if got := resp.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected X-RateLimit-Remaining 0, got %q", got)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatalf("expected error=rate_limited, got %v", payload["error"])
	}
}

func TestRateLimitWindowSlides(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10, 60*time.Second, func() time.Time { return now })

	for i := 0; i < 10; i++ {
		if allowed, _, _ := limiter.Allow("1.2.3.4"); !allowed {
			t.Fatalf("request %d unexpectedly rejected", i+1)
		}
	}
	if allowed, _, _ := limiter.Allow("1.2.3.4"); allowed {
		t.Fatal("request 11 unexpectedly admitted")
	}

	// Advancing past the window from the earliest request frees a slot.
	now = now.Add(61 * time.Second)
	if allowed, _, _ := limiter.Allow("1.2.3.4"); !allowed {
		t.Fatal("request after window elapsed was rejected")
	}
}

func TestRateLimitRejectionDoesNotConsumeSlot(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, 60*time.Second, func() time.Time { return now })

	limiter.Allow("k")
	now = now.Add(10 * time.Second)
	limiter.Allow("k")

	// Hammer the limiter while full; the rejections must not extend the
	// occupancy beyond the two admitted instants.
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second)
		if allowed, _, _ := limiter.Allow("k"); allowed {
			t.Fatalf("request while full unexpectedly admitted at +%ds", 10+i+1)
		}
	}

	// 61s after the first admitted request only that one has expired.
	now = time.Date(2026, time.January, 1, 0, 1, 1, 0, time.UTC)
	if allowed, _, _ := limiter.Allow("k"); !allowed {
		t.Fatal("slot freed by expiry was not granted")
	}
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 60*time.Second, func() time.Time { return now })
	r := limitedRouter(limiter)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/download/abc", nil)
		req.Header.Set("CF-Connecting-IP", ip)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("first request for %s expected 200, got %d", ip, resp.Code)
		}
	}
}

func TestRateLimitMissingHeaderUsesSentinel(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 60*time.Second, func() time.Time { return now })
	r := limitedRouter(limiter)

	req1 := httptest.NewRequest(http.MethodGet, "/download/abc", nil)
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first anonymous request 200, got %d", resp1.Code)
	}

	// A second request without the header shares the sentinel budget.
	req2 := httptest.NewRequest(http.MethodGet, "/download/abc", nil)
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second anonymous request 429, got %d", resp2.Code)
	}
}
