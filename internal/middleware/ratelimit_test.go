package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	tb := NewTokenBucket(2, 5)

	require.True(t, tb.Allow())
	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	// Backdate the last refill instead of sleeping
	tb.mu.Lock()
	tb.lastRefill = tb.lastRefill.Add(-time.Second)
	tb.mu.Unlock()

	// Refill is capped at capacity, so exactly two more pass
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestRateLimiterKeepsClientsSeparate(t *testing.T) {
	rl := &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   1,
		refillRate: 1,
	}

	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(req))
}

func TestRateLimitMiddlewareBlocksAfterCapacity(t *testing.T) {
	handler := RateLimitMiddleware(2, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "198.51.100.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, get("/analyze").Code)
	require.Equal(t, http.StatusOK, get("/analyze").Code)

	rec := get("/analyze")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["error"])

	// A fresh client port maps to the same bucket
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	req.RemoteAddr = "198.51.100.1:9999"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitMiddlewareSkipsProbeEndpoints(t *testing.T) {
	handler := RateLimitMiddleware(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "198.51.100.2:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, get("/analyze"))
	require.Equal(t, http.StatusTooManyRequests, get("/analyze"))

	for _, path := range []string{"/health", "/metrics", "/gpu-status"} {
		assert.Equal(t, http.StatusOK, get(path), "probe endpoint %s should never be limited", path)
	}
}
