package api

import "net/http"

// Health answers liveness probes without touching the database: an outage
// shows up as operation faults, not as a dead process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "tradegate",
	})
}
