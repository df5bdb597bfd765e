// Package circuiterr defines the coded error types produced while lowering
// values into constraints.
//
// Code ranges:
//
//	E1001-E1099  internal errors: a value-table or container invariant was
//	             violated by the caller. These indicate a bug in the caller,
//	             not a property of the circuit being built.
//	E1100-E1199  runtime errors: the operation is well-formed but cannot be
//	             carried out for the given operands (e.g. division by a
//	             constant too large for the width budget).
package circuiterr

type Code string

const (
	// Internal: the caller referenced a value id that was never created.
	CodeUndeclaredValue Code = "E1001"
	// Internal: a value expected to resolve to a witness did not.
	CodeImpossibleUnwrap Code = "E1002"
	// Internal: a decomposition radix was not a compile-time constant.
	CodeNonConstantRadix Code = "E1003"
	// Internal: a memory block id was used before being initialized.
	CodeUninitializedBlock Code = "E1004"
	// Internal: a memory access index fell outside the block's declared length.
	CodeMemoryOutOfBounds Code = "E1005"
	// Internal: a bit size of zero was supplied where at least one bit is required.
	CodeZeroBitSize Code = "E1006"

	// Runtime: division by a constant whose magnitude exceeds the field or
	// the configured width budget.
	CodeDivisorTooLarge Code = "E1100"
	// Runtime: an unbounded-width division was requested for an operand
	// whose bit size could not be bounded.
	CodeUnsupportedUnboundedDivision Code = "E1101"
	// Runtime: a provably-false assertion was folded at construction time.
	CodeProvablyFalseAssertion Code = "E1102"
	// Runtime: an oracle call failed to produce the expected number of outputs.
	CodeOracleArityMismatch Code = "E1103"
	// Runtime: a constant-folded division by the constant zero.
	CodeDivisionByZero Code = "E1104"
)
