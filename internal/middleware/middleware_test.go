package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Xunop/book-faker/internal/http/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestIDGenerated(t *testing.T) {
	m := NewMiddleware(nil)
	var seen string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.RequestID(r)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
}

func TestRequestIDPropagated(t *testing.T) {
	m := NewMiddleware(nil)
	var seen string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.RequestID(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	m := NewMiddleware(nil)
	called := false
	h := m.HandleCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "7200", w.Header().Get("Access-Control-Max-Age"))
}

func TestRecovery(t *testing.T) {
	m := NewMiddleware(nil)
	h := m.Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoggingRequestPassesThrough(t *testing.T) {
	m := NewMiddleware(nil)
	w := httptest.NewRecorder()
	m.LoggingRequest(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	defer limiter.Close()
	h := NewMiddleware(limiter).RateLimit(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	h := NewMiddleware(nil).RateLimit(okHandler())
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterEvictIdle(t *testing.T) {
	limiter := NewRateLimiter(10, 10)
	defer limiter.Close()

	limiter.Allow("a")
	limiter.Allow("b")
	assert.Equal(t, 2, limiter.size())

	limiter.evictIdle(time.Now().Add(limiterIdleTimeout + time.Second))
	assert.Equal(t, 0, limiter.size())
}
