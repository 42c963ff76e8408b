package server // import "github.com/Xunop/book-faker/internal/server"

import (
	"context"
	"net/http"
	"time"

	v1 "github.com/Xunop/book-faker/internal/api/v1"
	"github.com/Xunop/book-faker/internal/cache"
	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/middleware"
	"github.com/Xunop/book-faker/internal/version"
	"github.com/Xunop/book-faker/internal/worker"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Server is the running HTTP server and what it owns.
type Server struct {
	httpServer *http.Server
	pool       *worker.PagePool
	limiter    *middleware.RateLimiter
	errc       chan error
}

// StartServer starts the HTTP server in the background.
func StartServer(opts *config.Options, gen worker.PageGenerator, pageCache cache.PageCache) (*Server, error) {
	pool := worker.NewPagePool(gen, opts.WorkerPoolSize)

	var limiter *middleware.RateLimiter
	if opts.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr(),
			Handler:           setupHandler(opts, gen, pageCache, pool, limiter),
			ReadHeaderTimeout: 10 * time.Second,
		},
		pool:    pool,
		limiter: limiter,
		errc:    make(chan error, 1),
	}

	s.startHTTPServer()
	return s, nil
}

func (s *Server) startHTTPServer() {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", zap.Error(err))
			s.errc <- err
		}
		close(s.errc)
	}()
}

// Err reports a listener failure. It is closed once the server stops.
func (s *Server) Err() <-chan error {
	return s.errc
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.pool.Close()
	if s.limiter != nil {
		s.limiter.Close()
	}
	return err
}

func setupHandler(opts *config.Options, gen worker.PageGenerator, pageCache cache.PageCache, pool *worker.PagePool, limiter *middleware.RateLimiter) http.Handler {
	router := mux.NewRouter()
	mw := middleware.NewMiddleware(limiter)

	apiHandler := v1.NewHandler(gen, pageCache, pool, opts)
	v1.Server(router, apiHandler, mw)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	// Preflight requests never match a GET route.
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	router.Use(mw.HandleCORS)

	return mw.RequestID(mw.Recovery(mw.LoggingRequest(router)))
}
