package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/api/middleware"
	"tradegate/internal/platform/logger"
	"tradegate/internal/platform/metrics"
)

func TestNewTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	middleware.NewTrace(base)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rpc", nil))

	traceID := w.Header().Get("X-Trace-Id")
	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry),
		"handler log line must go through the context logger")
	assert.Equal(t, traceID, entry["trace_id"])
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	handler := middleware.NewTrace(base)(middleware.RequestLog(next))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/soap", nil))

	require.Equal(t, http.StatusTeapot, w.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/soap", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(len("short and stout")), entry["bytes"])
	assert.NotEmpty(t, entry["trace_id"])
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	middleware.Metrics(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics-probe", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/metrics-probe", "202")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}
