// Package oracle models the two kinds of external collaborator the value
// table calls into for operations it cannot express as a pure polynomial
// identity: Brillig, an unconstrained bytecode VM used for quotient and
// inverse hints, and black-box functions, pre-built gadgets a proving
// backend solves directly (range checks, AND, XOR).
//
// Neither interface performs real cryptographic work here: the circuit's
// soundness never depends on what these calls return, only on the
// polynomial identities the value table emits around them. Implementing a
// faithful Brillig VM or black-box solver is out of scope; only the
// interface shape and the opcodes a call emits are modeled.
package oracle

import "circuitforge/internal/acir"

// Brillig calls an unconstrained routine and returns the witnesses it
// solved for. predicate, when non-nil, gates the call: under a predicate
// of zero the call's outputs are unconstrained garbage, which is always
// safe because the surrounding identities are themselves predicate-gated.
type Brillig interface {
	Call(c acir.Container, fn acir.BrilligFunc, predicate *acir.Expr, inputs []acir.Expr, outputs int) ([]acir.Witness, error)
}

// BlackBox calls a gadget a proving backend implements directly rather
// than through generic polynomial identities.
type BlackBox interface {
	Call(c acir.Container, fn acir.BlackBoxFunc, inputs []acir.Expr, bitSize uint32, outputs int) ([]acir.Witness, error)
}

// StubBrillig is the in-process Brillig implementation used throughout the
// circuit package and its tests. It allocates a fresh witness for each
// declared output and records the call as an opcode; it never computes an
// actual result, matching Brillig's role as an external,
// cryptographically-opaque collaborator.
type StubBrillig struct{}

func (StubBrillig) Call(c acir.Container, fn acir.BrilligFunc, predicate *acir.Expr, inputs []acir.Expr, outputs int) ([]acir.Witness, error) {
	out := make([]acir.Witness, outputs)
	for i := range out {
		out[i] = c.NextWitnessIndex()
	}
	if err := c.PushOpcode(acir.BrilligCall{Func: fn, Inputs: inputs, Outputs: out, Predicate: predicate}); err != nil {
		return nil, err
	}
	return out, nil
}

// StubBlackBox is the in-process BlackBox implementation; see StubBrillig.
type StubBlackBox struct{}

func (StubBlackBox) Call(c acir.Container, fn acir.BlackBoxFunc, inputs []acir.Expr, bitSize uint32, outputs int) ([]acir.Witness, error) {
	out := make([]acir.Witness, outputs)
	for i := range out {
		out[i] = c.NextWitnessIndex()
	}
	if err := c.PushOpcode(acir.BlackBoxCall{Func: fn, Inputs: inputs, Outputs: out, BitSize: bitSize}); err != nil {
		return nil, err
	}
	return out, nil
}
