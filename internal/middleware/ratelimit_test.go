package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimitBurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()

	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RateLimit(rl))

	hit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Real-Ip", "203.0.113.7")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := hit(); code != http.StatusOK {
			t.Fatalf("request %d within burst: got %d", i+1, code)
		}
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Errorf("over burst: got %d, want 429", code)
	}
}

func TestRateLimiterStopEndsCleanup(t *testing.T) {
	before := runtime.NumGoroutine()

	limiters := make([]*RateLimiter, 10)
	for i := range limiters {
		limiters[i] = NewRateLimiter(1, 1)
	}
	for _, rl := range limiters {
		rl.Stop()
	}

	// the cleanup goroutines select on stop, so they exit promptly
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("cleanup goroutines still running: %d before, %d after stop",
		before, runtime.NumGoroutine())
}
