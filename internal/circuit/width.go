package circuit

import "circuitforge/internal/acir"

// Width bounds how many multiplicative terms an affine expression may
// accumulate before an arithmetic operation must flatten one of its
// operands to a fresh witness. Bounded(1) gives the classic one-product-
// per-identity shape; Unbounded lets expressions grow without eager
// flattening, trading opcode count for opcode size.
type Width struct {
	unbounded bool
	k         int
}

func Unbounded() Width {
	return Width{unbounded: true}
}

func Bounded(k int) Width {
	if k < 1 {
		k = 1
	}
	return Width{k: k}
}

func (w Width) Fits(e acir.Expr) bool {
	if w.unbounded {
		return true
	}
	return e.Width() <= w.k
}
