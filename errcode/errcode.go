package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	UnknownPin     Code = "unknown_pin"
	PinInUse       Code = "pin_in_use"

	// Menu model construction.
	CycleDetected   Code = "cycle_detected"
	SharedNode      Code = "shared_node"
	EmptySubMenu    Code = "empty_submenu"
	UnknownKind     Code = "unknown_kind"
	RootNotSubMenu  Code = "root_not_submenu"
	EmptyLabel      Code = "empty_label"
	UnknownHandler  Code = "unknown_handler"
	InvalidBounds   Code = "invalid_bounds"
	DuplicateKey    Code = "duplicate_key"
	DuplicateHandle Code = "duplicate_handler"

	// Input configuration.
	UnknownTopology Code = "unknown_topology"
	MissingConfig   Code = "missing_config"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
