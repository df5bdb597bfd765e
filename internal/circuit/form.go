package circuit

import (
	"circuitforge/internal/acir"
	"circuitforge/internal/field"
)

// Var is a dense index into a Context's value table.
type Var int

// Form is the tagged representation a Var resolves to: a compile-time
// constant, a bare witness, or a general affine expression over
// witnesses. Keeping the three cases distinct lets the arithmetic layer
// take the cheapest path available (e.g. constant folding) instead of
// always routing through the general expression case.
type Form interface {
	isForm()
	toExpr() acir.Expr
}

type ConstForm struct {
	C field.Element
}

func (ConstForm) isForm()              {}
func (f ConstForm) toExpr() acir.Expr  { return acir.ExprFromConst(f.C) }

type WitForm struct {
	W acir.Witness
}

func (WitForm) isForm()             {}
func (f WitForm) toExpr() acir.Expr { return acir.ExprFromWitness(f.W) }

type ExprForm struct {
	E acir.Expr
}

func (ExprForm) isForm()             {}
func (f ExprForm) toExpr() acir.Expr { return f.E }

// newForm canonicalizes a raw affine expression into the cheapest Form
// that represents it: a bare constant, a bare witness, or, failing both, a
// general expression.
func newForm(e acir.Expr) Form {
	e = e.Normalize()
	if e.IsConstant() {
		return ConstForm{C: e.Constant}
	}
	if w, ok := e.ToWitness(); ok {
		return WitForm{W: w}
	}
	return ExprForm{E: e}
}
