package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Xunop/book-faker/internal/http/request"
	"github.com/Xunop/book-faker/internal/log"
	"go.uber.org/zap"
)

const contentTypeHeader = `application/json`

// OK creates a new JSON response with a 200 status code.
func OK(w http.ResponseWriter, r *http.Request, body interface{}) {
	OKRaw(w, r, toJSON(body))
}

// OKRaw sends an already encoded JSON body with a 200 status code.
func OKRaw(w http.ResponseWriter, r *http.Request, body []byte) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(body)
	builder.Write()
}

// Attachment sends a file download to the client.
func Attachment(w http.ResponseWriter, r *http.Request, filename, contentType string, body []byte) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentType)
	builder.WithAttachment(filename)
	builder.WithBody(body)
	builder.Write()
}

// ServerError sends an internal error to the client.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request_id", request.RequestID(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusInternalServerError),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusInternalServerError)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(errors.New("an internal server error occurred")))
	builder.Write()
}

// BadRequest sends a bad request error to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		zap.Any("error", err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request_id", request.RequestID(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusBadRequest),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusBadRequest)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err))
	builder.Write()
}

// TooManyRequests sends a rate limit error to the client.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusTooManyRequests),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusTooManyRequests),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusTooManyRequests)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithHeader("Retry-After", "1")
	builder.WithBody(toJSONError(errors.New("too many requests")))
	builder.Write()
}

// NotFound sends a page not found error to the client.
func NotFound(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusNotFound),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusNotFound),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusNotFound)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(errors.New("resource not found")))
	builder.Write()
}

func toJSONError(err error) []byte {
	type errorMsg struct {
		ErrorMessage string `json:"error_message"`
	}

	return toJSON(errorMsg{ErrorMessage: err.Error()})
}

func toJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Unable to marshal JSON response", zap.Any("error", err))
		return []byte("")
	}

	return b
}
