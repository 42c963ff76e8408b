package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/generator"
	"github.com/Xunop/book-faker/internal/middleware"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/Xunop/book-faker/internal/version"
	"github.com/Xunop/book-faker/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	provider, err := textsource.NewProvider()
	require.NoError(t, err)
	gen := generator.New(provider)

	pool := worker.NewPagePool(gen, 1)
	t.Cleanup(pool.Close)
	return setupHandler(config.GetDefaultOptions(), gen, nil, pool, limiter)
}

func TestHealthcheckAndVersion(t *testing.T) {
	h := newTestHandler(t, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, version.GetCurrentVersion(), w.Body.String())
}

func TestPreflight(t *testing.T) {
	h := newTestHandler(t, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBooksRouteHasCORS(t *testing.T) {
	h := newTestHandler(t, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books?seed=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitOnlyCoversAPI(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	t.Cleanup(limiter.Close)
	h := newTestHandler(t, limiter)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/locales", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
