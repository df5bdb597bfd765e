package circuiterr

import (
	"fmt"

	"circuitforge/internal/acir"
)

// Internal reports a violated caller invariant: a malformed value id, a
// non-constant radix, an uninitialized memory block. These should never
// surface from a correct caller; they exist so bugs fail loudly instead of
// silently producing a malformed circuit.
type Internal struct {
	Code    Code
	Message string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInternal(code Code, format string, args ...any) *Internal {
	return &Internal{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Runtime reports that a well-formed operation could not be carried out for
// the operands it was given. Unlike Internal, a Runtime error is a property
// of the circuit under construction, not of the caller, so it may carry an
// assertion payload describing what the caller should report to a user.
type Runtime struct {
	Code    Code
	Message string
	Payload *acir.AssertionPayload
}

func (e *Runtime) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewRuntime(code Code, payload *acir.AssertionPayload, format string, args ...any) *Runtime {
	return &Runtime{Code: code, Message: fmt.Sprintf(format, args...), Payload: payload}
}
