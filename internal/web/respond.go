// Package web holds the HTTP plumbing shared by all service handlers.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
)

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError writes a structured error payload; the error kind picks the
// status code. Untyped errors become opaque 500s so internals never leak.
func WriteError(w http.ResponseWriter, requestID string, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		statusCode = http.StatusNotFound
		message = err.Error()
	case apperrors.KindInvalidInput:
		statusCode = http.StatusBadRequest
		message = err.Error()
	case apperrors.KindInvalidState:
		statusCode = http.StatusConflict
		message = err.Error()
	case apperrors.KindDuplicate:
		statusCode = http.StatusConflict
		message = err.Error()
	}

	WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// WriteStateError is WriteError with InvalidState mapped to 400 instead of
// 409; delete endpoints use it where a non-deletable state is a bad request.
func WriteStateError(w http.ResponseWriter, requestID string, err error) {
	if apperrors.KindOf(err) == apperrors.KindInvalidState {
		WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      err.Error(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"request_id": requestID,
		})
		return
	}
	WriteError(w, requestID, err)
}

// WithLogging wraps a handler with request logging middleware
func WithLogging(log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		r = r.WithContext(WithRequestID(r.Context(), requestID))

		log.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		log.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
