package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/shared/server/middleware"
)

func TestRateLimiterAllowBurstThenBlock(t *testing.T) {
	now := time.Now()
	limiter := middleware.NewRateLimiter(func() time.Time { return now })
	rule := middleware.RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		if allowed, _ := limiter.Allow("user-1", rule); !allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	allowed, retryAfter := limiter.Allow("user-1", rule)
	if allowed {
		t.Fatalf("request beyond burst should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}

	// A different principal has its own bucket.
	if allowed, _ := limiter.Allow("user-2", rule); !allowed {
		t.Fatalf("independent principal should be allowed")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	now := time.Now()
	limiter := middleware.NewRateLimiter(func() time.Time { return now })
	rule := middleware.RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("u", rule); !allowed {
		t.Fatalf("first request should be allowed")
	}
	if allowed, _ := limiter.Allow("u", rule); allowed {
		t.Fatalf("second immediate request should be blocked")
	}

	now = now.Add(2 * time.Second)
	if allowed, _ := limiter.Allow("u", rule); !allowed {
		t.Fatalf("request after refill should be allowed")
	}
}

func TestRateLimitMiddleware429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Now()
	limiter := middleware.NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(middleware.RateLimit(middleware.RateLimitRule{Rate: 1, Burst: 1}, limiter))
	r.POST("/api/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimitZeroRuleDisabled(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("u", middleware.RateLimitRule{}); !allowed {
			t.Fatalf("zero rule must not limit")
		}
	}
}
