package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tripshare/tripshare/internal/testutil"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
	keys   []string
}

func (f *fakeCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.keys = append(f.keys, key)
	f.counts[key]++
	return f.counts[key], nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	counter := &fakeCounter{}
	limiter := newRateLimiter(counter, 2, time.Minute, "ratelimit:auth:", nil, true)
	limiter.now = testutil.ClockAt(30 * time.Second)
	handler := limiter.Middleware(okHandler)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		if i < 2 && last.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i, last.Code)
		}
	}

	testutil.AssertStatusCode(t, last, http.StatusTooManyRequests)
	testutil.AssertHeader(t, last, "Retry-After", "30")
	testutil.AssertHeader(t, last, "X-RateLimit-Remaining", "0")
	testutil.AssertJSONError(t, last, "Rate limit exceeded. Please try again later.")
	if counter.keys[0] != "ratelimit:auth:192.0.2.1:1781524800" {
		t.Errorf("unexpected key %q", counter.keys[0])
	}
}

func TestRateLimiter_SeparateKeysPerClient(t *testing.T) {
	limiter := newRateLimiter(&fakeCounter{}, 1, time.Minute, "p:", nil, true)
	handler := limiter.Middleware(okHandler)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("first request from %s should pass, got %d", ip, rr.Code)
		}
	}
}

func TestRateLimiter_CounterFailure(t *testing.T) {
	failing := &fakeCounter{err: errors.New("redis down")}

	rr := httptest.NewRecorder()
	newRateLimiter(failing, 1, time.Minute, "p:", nil, true).Middleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("fail-open limiter should pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	newRateLimiter(failing, 1, time.Minute, "p:", nil, false).Middleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	testutil.AssertStatusCode(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONError(t, rr, "Service temporarily unavailable")
}

func TestRateLimiter_NilRedisPasses(t *testing.T) {
	rr := httptest.NewRecorder()
	NewRateLimiter(nil, 1, time.Minute, "p:", nil, false).Middleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("expected pass without redis, got %d", rr.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"X-Forwarded-For single", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "192.168.1.1:1234", "10.0.0.1"},
		{"X-Forwarded-For chain", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "192.168.1.1:1234", "10.0.0.1"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "10.0.0.2"}, "192.168.1.1:1234", "10.0.0.2"},
		{"XFF preferred over X-Real-IP", map[string]string{"X-Forwarded-For": "10.0.0.1", "X-Real-IP": "10.0.0.2"}, "192.168.1.1:1234", "10.0.0.1"},
		{"remote addr", map[string]string{}, "192.168.1.1:1234", "192.168.1.1"},
		{"remote addr without port", map[string]string{}, "192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remote

			if ip := GetClientIP(req); ip != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, ip)
			}
		})
	}
}
