package http

import (
	"net/http"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
)

// withLogging emits one access-log line per request with the status and
// response size captured through the responseWriter decorator.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		decorated := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(decorated, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", decorated.status).
			Dur("duration", time.Since(start)).
			Int("size", decorated.size).
			Send()
	})
}
