package v1

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Xunop/book-faker/internal/cache"
	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/generator"
	"github.com/Xunop/book-faker/internal/middleware"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/Xunop/book-faker/internal/worker"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGenerator struct {
	worker.PageGenerator
	calls int
}

func (g *countingGenerator) Generate(req model.GenerationRequest) ([]*model.Book, error) {
	g.calls++
	return g.PageGenerator.Generate(req)
}

type failingGenerator struct{}

func (failingGenerator) Generate(model.GenerationRequest) ([]*model.Book, error) {
	return nil, errors.New("text source exhausted")
}

func newTestRouter(t *testing.T, gen worker.PageGenerator, pageCache cache.PageCache) *mux.Router {
	t.Helper()
	opts := config.GetDefaultOptions()
	opts.MaxExportPages = 3

	pool := worker.NewPagePool(gen, 2)
	t.Cleanup(pool.Close)

	router := mux.NewRouter()
	Server(router, NewHandler(gen, pageCache, pool, opts), middleware.NewMiddleware(nil))
	return router
}

func newGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	provider, err := textsource.NewProvider()
	require.NoError(t, err)
	return generator.New(provider)
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeBooks(t *testing.T, w *httptest.ResponseRecorder) []*model.Book {
	t.Helper()
	var books []*model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	return books
}

func TestListBooksDefaults(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/books")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	books := decodeBooks(t, w)
	require.Len(t, books, 20)
	assert.Equal(t, int64(1), books[0].Index)

	// Defaults match the explicit original query.
	explicit := serve(router, "/api/v1/books?locale=en&seed=42&page=0&likes=1.0&reviews=1.0")
	assert.Equal(t, w.Body.String(), explicit.Body.String())
}

func TestListBooksLegacyRoute(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	v1 := serve(router, "/api/v1/books?locale=de&seed=7&page=2")
	legacy := serve(router, "/api/books?locale=de&seed=7&page=2")
	require.Equal(t, http.StatusOK, legacy.Code)
	assert.Equal(t, v1.Body.String(), legacy.Body.String())

	books := decodeBooks(t, legacy)
	require.Len(t, books, 10)
	assert.Equal(t, int64(31), books[0].Index)
}

func TestListBooksBadRequests(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	for _, target := range []string{
		"/api/v1/books?page=-1",
		"/api/v1/books?locale=fr",
		"/api/v1/books?seed=abc",
		"/api/v1/books?page=1.5",
		"/api/v1/books?likes=NaN",
		"/api/v1/books?reviews=Inf",
		"/api/v1/books?reviews=1000",
	} {
		w := serve(router, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "error_message", target)
	}
}

func TestListBooksLargeLikes(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/books?likes=150")
	require.Equal(t, http.StatusOK, w.Code)
	for _, book := range decodeBooks(t, w) {
		assert.Equal(t, 150, book.Likes)
	}

	w = serve(router, "/api/v1/books?likes=1e19")
	require.Equal(t, http.StatusOK, w.Code)
	for _, book := range decodeBooks(t, w) {
		assert.Equal(t, generator.MaxCount, book.Likes)
	}
}

func TestListBooksGeneratorFailure(t *testing.T) {
	router := newTestRouter(t, failingGenerator{}, nil)

	w := serve(router, "/api/v1/books")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListBooksUsesCache(t *testing.T) {
	gen := &countingGenerator{PageGenerator: newGenerator(t)}
	pageCache, err := cache.NewLRU(8)
	require.NoError(t, err)
	router := newTestRouter(t, gen, pageCache)

	first := serve(router, "/api/v1/books?seed=3&page=1")
	second := serve(router, "/api/v1/books?seed=3&page=1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, gen.calls)

	serve(router, "/api/v1/books?seed=3&page=2")
	assert.Equal(t, 2, gen.calls)
}

func TestGetBook(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	page := decodeBooks(t, serve(router, "/api/v1/books?seed=9&page=1"))
	w := serve(router, "/api/v1/books/25?seed=9")
	require.Equal(t, http.StatusOK, w.Code)

	var book model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, *page[4], book)

	assert.Equal(t, http.StatusNotFound, serve(router, "/api/v1/books/0").Code)
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/books/export?format=csv&pages=2&seed=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="books-en-5-p0-2.csv"`, w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+20+10)
	assert.Equal(t, "30", records[len(records)-1][0])
}

func TestExportEPUB(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/books/export?format=epub&locale=ja&page=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/epub+zip", w.Header().Get("Content-Type"))

	_, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	assert.NoError(t, err)
}

func TestExportBadRequests(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	for _, target := range []string{
		"/api/v1/books/export?format=pdf",
		"/api/v1/books/export?pages=0",
		"/api/v1/books/export?pages=4",
		"/api/v1/books/export?page=-2",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(router, target).Code, target)
	}
}

func TestListLocales(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/locales")
	require.Equal(t, http.StatusOK, w.Code)

	var locales []textsource.Locale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locales))
	assert.Equal(t, textsource.SupportedLocales(), locales)
}

func TestRandomSeed(t *testing.T) {
	router := newTestRouter(t, newGenerator(t), nil)

	w := serve(router, "/api/v1/seed/random")
	require.Equal(t, http.StatusOK, w.Code)

	var body seedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body.Seed, int64(0))
	assert.Less(t, body.Seed, int64(1_000_000))
}
