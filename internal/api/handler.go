package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"tradegate/internal/fault"
	"tradegate/internal/platform/logger"
	"tradegate/internal/platform/metrics"
	"tradegate/internal/rpc"
)

// Handler serves the HTTP surface of the dispatcher: both envelopes, the
// schema directory, and the health probe.
type Handler struct {
	dispatcher *rpc.Dispatcher
	logger     *slog.Logger
}

// NewHandler creates the HTTP handler around a configured dispatcher.
// Panics if dispatcher is nil. A nil logger falls back to slog.Default().
func NewHandler(dispatcher *rpc.Dispatcher, log *slog.Logger) *Handler {
	if dispatcher == nil {
		panic("api: dispatcher is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		dispatcher: dispatcher,
		logger:     log.With(slog.String("component", "api")),
	}
}

// bearerToken extracts the credential from the Authorization header. An
// empty result means the caller sent no usable token; whether that matters
// is decided per operation, so no fault is raised here.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// dispatch runs one operation and records its outcome. The metric label
// collapses unregistered names to "unknown" so arbitrary request strings
// cannot mint new series.
func (h *Handler) dispatch(r *http.Request, name string, params rpc.ParamSource) (any, *fault.Fault) {
	result, flt := h.dispatcher.Handle(r.Context(), name, params, bearerToken(r))

	operation, outcome := name, "ok"
	if flt != nil {
		outcome = "client_fault"
		if flt.Category == fault.CategoryServer {
			outcome = "server_fault"
		}
		if flt.Code == fault.CodeUnknownOperation {
			operation = "unknown"
		}
	}
	metrics.RecordOperation(operation, outcome)

	return result, flt
}

// writeJSON writes a JSON response with the given status code and payload.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}
