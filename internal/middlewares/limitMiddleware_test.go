package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func hitLimiter(l *IPRateLimiter, addr string) int {
	handler := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestIPRateLimiterExhaustsBurst(t *testing.T) {
	// Zero refill rate: only the burst tokens are available.
	limiter := NewIPRateLimiter(0, 2)

	for i := 0; i < 2; i++ {
		if code := hitLimiter(limiter, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := hitLimiter(limiter, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}

	// Another address has its own bucket.
	if code := hitLimiter(limiter, "10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("different address should be admitted, got %d", code)
	}
}

func TestIPRateLimiterInstancesAreIndependent(t *testing.T) {
	exhausted := NewIPRateLimiter(0, 1)
	hitLimiter(exhausted, "10.0.0.1:1234")
	if code := hitLimiter(exhausted, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected first instance exhausted, got %d", code)
	}

	fresh := NewIPRateLimiter(0, 1)
	if code := hitLimiter(fresh, "10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("fresh instance must not inherit another instance's buckets, got %d", code)
	}
}
