package server

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/podut/wp-ai-studio/internal/common"
)

// withMiddleware wraps a handler with logging, CORS and panic recovery
func withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return loggingMiddleware(corsMiddleware(recoveryMiddleware(handler)))
}

// withConditionalMiddleware skips logging for paths that upgrade the
// connection; wrapping the ResponseWriter breaks WebSocket hijacking
func withConditionalMiddleware(handler http.HandlerFunc, skipLoggingPaths ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, path := range skipLoggingPaths {
			if strings.HasPrefix(r.URL.Path, path) {
				corsMiddleware(recoveryMiddleware(handler))(w, r)
				return
			}
		}
		loggingMiddleware(corsMiddleware(recoveryMiddleware(handler)))(w, r)
	}
}

// loggingMiddleware logs HTTP requests with timing information
func loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(wrapped, r)

		logger := common.GetLogger()
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("HTTP request")
	}
}

// corsMiddleware adds CORS headers for local development
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// recoveryMiddleware recovers from panics and returns a 500 error
func recoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger := common.GetLogger()
				logger.Error().
					Str("path", r.URL.Path).
					Str("panic", fmt.Sprintf("%v", err)).
					Msg("Recovered from panic in HTTP handler")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
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

// Hijack implements http.Hijacker so wrapped handlers can still
// upgrade connections
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
	}
	return hijacker.Hijack()
}
