// Package middleware holds the HTTP middleware chain: trace-ID injection,
// request logging, and request metrics. Each piece is independent and
// composes through the standard func(http.Handler) http.Handler shape.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"tradegate/internal/platform/logger"
)

// NewTrace returns middleware that assigns each request a trace ID, binds a
// logger carrying it into the request context, and echoes the ID back on
// the response. Apply it before anything that logs so every line of a
// request correlates.
func NewTrace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := uuid.NewString()
			log := base.With(slog.String("trace_id", traceID))
			ctx := logger.WithLogger(r.Context(), log)

			w.Header().Set("X-Trace-Id", traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
