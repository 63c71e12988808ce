package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tradegate/internal/fault"
	"tradegate/internal/rpc"
)

// rpcRequest is the JSON envelope: an operation name plus its parameters.
// Parameters stay raw here because only the dispatcher knows which input
// type they decode into.
type rpcRequest struct {
	Operation  string          `json:"operation"`
	Parameters json.RawMessage `json:"parameters"`
}

// rpcResponse wraps a successful result. Result is null for operations that
// return nothing, such as DeleteUser or Logout.
type rpcResponse struct {
	Result any `json:"result"`
}

// rpcFaultResponse wraps a fault. A response carries either a result or a
// fault, never both.
type rpcFaultResponse struct {
	Fault *fault.Fault `json:"fault"`
}

// HandleRPC serves the JSON envelope at POST /rpc. The HTTP status mirrors
// the fault's status so plain HTTP clients can branch without parsing the
// body.
func (h *Handler) HandleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		flt := fault.ValidationError(fmt.Sprintf("Invalid request body: %v", err), "")
		h.writeJSON(w, r, flt.Status, rpcFaultResponse{Fault: flt})
		return
	}

	result, flt := h.dispatch(r, req.Operation, rpc.JSONParams(req.Parameters))
	if flt != nil {
		h.writeJSON(w, r, flt.Status, rpcFaultResponse{Fault: flt})
		return
	}
	h.writeJSON(w, r, http.StatusOK, rpcResponse{Result: result})
}
