// Package rpc implements the operation dispatcher: a transport-neutral
// registry that maps operation names to handlers and adapts every handler
// outcome into a result or a structured fault. The dispatcher itself never
// touches storage or credentials; it is pure routing plus failure
// translation.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tradegate/internal/fault"
	"tradegate/internal/platform/logger"
)

// ParamSource supplies the raw operation parameters from whatever envelope
// the transport received. Decode populates the operation's typed input in
// place, like json.Unmarshal.
type ParamSource interface {
	Decode(v any) error
}

// JSONParams adapts a raw JSON document to the ParamSource interface.
type JSONParams []byte

// Decode implements ParamSource. An absent parameters document decodes to
// the input's zero value; required-field checks happen in the handler.
func (p JSONParams) Decode(v any) error {
	if len(p) == 0 {
		return nil
	}
	return json.Unmarshal(p, v)
}

// HandlerFunc executes one operation. input is the decoded parameter struct
// produced by Operation.NewInput (nil for parameterless operations); token
// is the raw bearer token, empty when the caller sent none.
type HandlerFunc func(ctx context.Context, input any, token string) (any, error)

// Operation describes one dispatchable operation.
type Operation struct {
	// Name is the canonical operation identifier. Lookup is exact: no
	// case-folding, no partial matches.
	Name string

	// RequiresAuth is advertised in the schema directory. Enforcement
	// happens inside the handler so authentication always precedes
	// validation.
	RequiresAuth bool

	// NewInput returns a fresh pointer to the operation's input struct,
	// or nil for operations that take no parameters.
	NewInput func() any

	// Handle executes the operation.
	Handle HandlerFunc
}

// Dispatcher routes operation calls to registered handlers.
type Dispatcher struct {
	ops    map[string]Operation
	order  []string
	logger *slog.Logger
}

// NewDispatcher creates an empty dispatcher. If logger is nil, a default
// logger will be used.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		ops:    make(map[string]Operation),
		logger: logger.With(slog.String("component", "dispatcher")),
	}
}

// Register adds an operation to the dispatcher. Registration happens once
// at startup, so invalid registrations panic rather than return an error.
func (d *Dispatcher) Register(op Operation) {
	if op.Name == "" {
		panic("operation name cannot be empty")
	}
	if op.Handle == nil {
		panic(fmt.Sprintf("operation %s has no handler", op.Name))
	}
	if _, exists := d.ops[op.Name]; exists {
		panic(fmt.Sprintf("operation %s registered twice", op.Name))
	}
	d.ops[op.Name] = op
	d.order = append(d.order, op.Name)
}

// Handle routes one operation call. It returns either a result value or a
// fault, never both. Handler panics are contained here and surface as
// internal faults so one bad call cannot take the process down.
func (d *Dispatcher) Handle(ctx context.Context, name string, params ParamSource, token string) (result any, flt *fault.Fault) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	op, ok := d.ops[name]
	if !ok {
		log.Debug("unknown operation requested", slog.String("operation", name))
		return nil, fault.UnknownOperation(name)
	}

	var input any
	if op.NewInput != nil {
		input = op.NewInput()
		if params != nil {
			if err := params.Decode(input); err != nil {
				log.Debug("failed to decode operation parameters",
					slog.String("operation", name),
					slog.String("error", err.Error()))
				return nil, fault.ValidationError(fmt.Sprintf("Invalid parameters: %v", err), "")
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("operation handler panicked",
				slog.String("operation", name),
				slog.Any("panic", r))
			result = nil
			flt = fault.Internal(fmt.Sprintf("%v", r))
		}
	}()

	out, err := op.Handle(ctx, input, token)
	if err != nil {
		f := fault.FromError(err)
		if f.Status >= 500 {
			log.Error("operation failed",
				slog.String("operation", name),
				slog.Int("code", f.Code),
				slog.String("error", err.Error()))
		} else {
			log.Debug("operation rejected",
				slog.String("operation", name),
				slog.Int("code", f.Code),
				slog.String("detail", f.Detail))
		}
		return nil, f
	}

	return out, nil
}
