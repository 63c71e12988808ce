package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tradegate/internal/platform/metrics"
)

// Metrics records every request into the Prometheus HTTP instruments. Paths
// are fixed routes here (/rpc, /soap, /health), so labeling by URL path
// does not blow up series cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		metrics.RecordHTTPRequest(r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
