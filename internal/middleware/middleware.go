package middleware // import "github.com/Xunop/book-faker/internal/middleware"

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Xunop/book-faker/internal/http/request"
	"github.com/Xunop/book-faker/internal/http/response"
	"github.com/Xunop/book-faker/internal/log"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

type Middleware struct {
	limiter *RateLimiter
}

// NewMiddleware builds the middleware set. A nil limiter disables rate limiting.
func NewMiddleware(limiter *RateLimiter) *Middleware {
	return &Middleware{limiter: limiter}
}

func (m *Middleware) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-Id, Content-Disposition")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestID tags the request with the client supplied X-Request-Id, or a new one.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := request.WithRequestID(r.Context(), requestID)
		ctx = request.WithClientIP(ctx, request.FindClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		t1 := time.Now()
		defer func() {
			log.Debug("Incoming request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.String("proto", r.Proto),
				zap.String("client_ip", request.FindClientIP(r)),
				zap.String("request_id", request.RequestID(r)),
				zap.Int("status", rw.statusCode),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(rw, r)
	})
}

// Recovery turns a handler panic into a 500 response.
func (m *Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("request_id", request.RequestID(r)),
					zap.ByteString("stack", debug.Stack()))
				if !rw.wroteHeader {
					response.ServerError(rw, r, fmt.Errorf("panic: %v", rec))
				}
			}
		}()
		next.ServeHTTP(rw, r)
	})
}

func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(request.FindClientIP(r)) {
			response.TooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *statusWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *statusWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
