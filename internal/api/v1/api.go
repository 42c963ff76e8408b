package v1

import (
	"net/http"

	"github.com/Xunop/book-faker/internal/cache"
	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/middleware"
	"github.com/Xunop/book-faker/internal/worker"
	"github.com/gorilla/mux"
)

type Handler struct {
	gen   worker.PageGenerator
	cache cache.PageCache
	pool  *worker.PagePool
	opts  *config.Options
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(gen worker.PageGenerator, pageCache cache.PageCache, pool *worker.PagePool, opts *config.Options) *Handler {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &Handler{
		gen:   gen,
		cache: pageCache,
		pool:  pool,
		opts:  opts,
	}
}

func Server(router *mux.Router, handler *Handler, mw *middleware.Middleware) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	sr.Use(mw.RateLimit)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/export", handler.exportBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/{index:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/locales", handler.listLocales).Methods(http.MethodGet)
	sr.HandleFunc("/seed/random", handler.randomSeed).Methods(http.MethodGet)

	// Route used by the original web client.
	legacy := router.PathPrefix("/api").Subrouter()
	legacy.Use(mw.RateLimit)
	legacy.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
}
