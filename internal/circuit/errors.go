package circuit

import (
	"fmt"

	"circuitforge/internal/circuiterr"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func undeclared(v Var) error {
	return circuiterr.NewInternal(circuiterr.CodeUndeclaredValue, "value %d was never created in this context", v)
}

func impossibleUnwrap(v Var) error {
	return circuiterr.NewInternal(circuiterr.CodeImpossibleUnwrap, "value %d did not resolve to any known form", v)
}

func nonConstantRadix() error {
	return circuiterr.NewInternal(circuiterr.CodeNonConstantRadix, "decomposition radix must be a compile-time constant")
}

func zeroBitSize() error {
	return circuiterr.NewInternal(circuiterr.CodeZeroBitSize, "bit size must be at least 1")
}
