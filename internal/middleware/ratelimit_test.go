package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLimitedHandler(rps float64, burst int) http.Handler {
	limiter := NewRateLimiter(rps, burst, time.Minute, newTestLogger(nil))
	return limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func sendFrom(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimitBurst(t *testing.T) {
	handler := newLimitedHandler(10.0, 3)

	for i := 0; i < 5; i++ {
		w := sendFrom(handler, "192.168.1.1:12345")

		if i < 3 {
			if w.Code != http.StatusOK {
				t.Errorf("Request %d: Expected status 200, got %d", i+1, w.Code)
			}
		} else if w.Code != http.StatusTooManyRequests {
			t.Errorf("Request %d: Expected status 429, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimitPerIP(t *testing.T) {
	handler := newLimitedHandler(1.0, 1)

	for _, addr := range []string{"192.168.1.1:12345", "10.0.0.1:54321", "172.16.0.1:9999", "203.0.113.7"} {
		if w := sendFrom(handler, addr); w.Code != http.StatusOK {
			t.Errorf("IP %s: Expected status 200, got %d", addr, w.Code)
		}
	}
}

func TestRateLimitConcurrentRequests(t *testing.T) {
	handler := newLimitedHandler(50.0, 20)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	rateLimitedCount := 0

	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := sendFrom(handler, "192.168.1.100:12345")

			mu.Lock()
			defer mu.Unlock()
			switch w.Code {
			case http.StatusOK:
				successCount++
			case http.StatusTooManyRequests:
				rateLimitedCount++
			}
		}()
	}

	wg.Wait()

	assert.NotZero(t, successCount, "expected some requests to pass")
	assert.NotZero(t, rateLimitedCount, "expected some requests to be limited")
}

func TestRateLimitRecovers(t *testing.T) {
	handler := newLimitedHandler(1.0, 1)

	assert.Equal(t, http.StatusOK, sendFrom(handler, "192.168.1.200:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(handler, "192.168.1.200:12345").Code)

	time.Sleep(1100 * time.Millisecond)

	assert.Equal(t, http.StatusOK, sendFrom(handler, "192.168.1.200:12345").Code)
}

func TestRateLimitErrorResponse(t *testing.T) {
	handler := newLimitedHandler(1.0, 1)

	sendFrom(handler, "192.168.1.50:12345")
	w := sendFrom(handler, "192.168.1.50:12345")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests","code":"RATE_LIMIT_EXCEEDED"}`, w.Body.String())
}

func TestRateLimitZeroRate(t *testing.T) {
	handler := newLimitedHandler(0, 0)

	for i := 0; i < 10; i++ {
		if w := sendFrom(handler, "192.168.1.254:12345"); w.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200 with zero rate, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimitUnknownRemoteAddr(t *testing.T) {
	handler := newLimitedHandler(1.0, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, sendFrom(handler, "not-an-ip").Code)
	}
}

func TestRateLimiterEvictIdle(t *testing.T) {
	limiter := NewRateLimiter(1.0, 1, time.Minute, newTestLogger(nil))
	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")

	limiter.mu.Lock()
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	assert.Equal(t, 1, limiter.evictIdle(time.Now()))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimiterRunCleanupStops(t *testing.T) {
	limiter := NewRateLimiter(1.0, 1, time.Minute, newTestLogger(nil))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- limiter.RunCleanup(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancellation")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		expected   string
	}{
		{"192.168.1.1:8080", "192.168.1.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"10.1.2.3", "10.1.2.3"},
		{"garbage", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		assert.Equal(t, tt.expected, extractIP(req), tt.remoteAddr)
	}
}
