package api

import "net/http"

// schemaResponse is the discovery document served at GET /rpc/schema. It
// plays the role a WSDL plays for a classic SOAP endpoint: every operation,
// whether it needs credentials, and the parameters it accepts.
type schemaResponse struct {
	Service    string `json:"service"`
	Operations any    `json:"operations"`
}

// Schema serves the operation directory.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, schemaResponse{
		Service:    "tradegate",
		Operations: h.dispatcher.Directory(),
	})
}
