package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	// maxLoggedBody caps how much of an error response is kept for logging.
	maxLoggedBody = 4 << 10
)

// operations names the store operation behind each API route.
var operations = map[string]string{
	"GET /api/v1/view":                   "view",
	"GET /api/v1/storage":                "usage",
	"POST /api/v1/folders":               "create_folder",
	"POST /api/v1/entries/upload":        "upload",
	"GET /api/v1/entries/{id}":           "get",
	"PUT /api/v1/entries/{id}/name":      "rename",
	"POST /api/v1/entries/{id}/delete":   "delete",
	"POST /api/v1/entries/{id}/restore":  "restore",
	"DELETE /api/v1/entries/{id}":        "purge",
	"GET /api/v1/entries/{id}/download":  "download",
	"GET /api/v1/entries/{id}/thumbnail": "thumbnail",
}

func operationFor(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return operations[r.Method+" "+rctx.RoutePattern()]
}

// errorBody is a minimal struct used to extract error details from JSON responses.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		started := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(started).Milliseconds()

		attrs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", duration,
			"client_ip", r.RemoteAddr,
		}

		if op := operationFor(r); op != "" {
			attrs = append(attrs, "operation", op)
			if op == "view" {
				attrs = append(attrs, "section", r.URL.Query().Get("section"))
			}
		}

		if id := chi.URLParam(r, "id"); id != "" {
			attrs = append(attrs, "entry_id", id)
		}

		// Add query string for error responses to help reproduce issues.
		if wrapped.status >= 400 && r.URL.RawQuery != "" {
			attrs = append(attrs, "query", r.URL.RawQuery)
		}

		// For error responses, extract and attach error details from the body.
		if wrapped.status >= 400 && wrapped.body.Len() > 0 {
			var parsed errorBody
			if err := json.Unmarshal(wrapped.body.Bytes(), &parsed); err == nil && parsed.Error != nil {
				attrs = append(attrs, "error_code", parsed.Error.Code)
				attrs = append(attrs, "error_message", parsed.Error.Message)
				if parsed.Error.Details != "" {
					attrs = append(attrs, "error_details", parsed.Error.Details)
				}
			}
		}

		switch {
		case wrapped.status >= 500:
			slog.Error("request", attrs...)
		case wrapped.status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	})
}

type responseWriter struct {
	http.ResponseWriter
	status      int
	body        bytes.Buffer
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.status = statusCode
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status >= 400 && rw.body.Len() < maxLoggedBody {
		rw.body.Write(b[:min(len(b), maxLoggedBody-rw.body.Len())])
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
