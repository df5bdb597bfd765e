// Package circuit lowers a small value algebra over field elements into
// the polynomial-identity, memory, and oracle-call opcodes of an
// acir.Container. Every operation takes and returns Var, a handle into the
// Context's value table. Failures detected here are typed errors from
// circuitforge/internal/circuiterr; errors returned by the container or an
// oracle (such as an out-of-bounds memory access) are passed through as
// they are.
package circuit

import (
	"github.com/rs/zerolog"

	"circuitforge/internal/acir"
	"circuitforge/internal/field"
	"circuitforge/internal/oracle"
)

// Warning is a non-fatal observation recorded while lowering, such as a
// range check against a bit size wider than the field can distinguish.
type Warning struct {
	Message string
}

// Config selects the width budget and logging sink for a Context.
type Config struct {
	Width  Width
	Logger zerolog.Logger
}

// Context is the value table together with the container, oracle
// collaborators, and width budget it lowers into. A Context is not safe
// for concurrent use; build one circuit per goroutine.
type Context struct {
	container acir.Container
	brillig   oracle.Brillig
	blackbox  oracle.BlackBox
	width     Width
	log       zerolog.Logger

	values         []Form
	constWitnesses map[string]acir.Witness
	warnings       []Warning
	oneVar         Var
	nextBlock      uint32
}

func NewContext(container acir.Container, brillig oracle.Brillig, blackbox oracle.BlackBox, cfg Config) *Context {
	log := cfg.Logger
	ctx := &Context{
		container:      container,
		brillig:        brillig,
		blackbox:       blackbox,
		width:          cfg.Width,
		log:            log,
		constWitnesses: map[string]acir.Witness{},
	}
	ctx.oneVar = ctx.AddConstant(field.One())
	return ctx
}

// NewDefaultContext builds a Context over a fresh in-process container and
// the stub oracle collaborators, the configuration exercised by the CLI
// and REPL.
func NewDefaultContext(width Width) *Context {
	return NewContext(acir.NewGeneratedContainer(), oracle.StubBrillig{}, oracle.StubBlackBox{}, Config{Width: width, Logger: zerolog.Nop()})
}

// OneVar returns the always-one value, used as the default predicate for
// unconditional operations.
func (c *Context) OneVar() Var {
	return c.oneVar
}

func (c *Context) Container() acir.Container {
	return c.container
}

func (c *Context) Warnings() []Warning {
	return c.warnings
}

func (c *Context) warn(format string, args ...any) {
	w := Warning{Message: sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	c.log.Debug().Msg(w.Message)
}

func (c *Context) createValue(f Form) Var {
	c.values = append(c.values, f)
	return Var(len(c.values) - 1)
}

// AddConstant interns a field constant as a Var, reusing the witness-level
// cache is unnecessary here since constants never need a witness unless
// promoted later by an operation that requires one.
func (c *Context) AddConstant(v field.Element) Var {
	return c.createValue(ConstForm{C: v})
}

// AddVariable allocates a fresh, unconstrained witness and returns the Var
// referencing it.
func (c *Context) AddVariable() Var {
	w := c.container.NextWitnessIndex()
	return c.createValue(WitForm{W: w})
}

func (c *Context) form(v Var) (Form, error) {
	if int(v) < 0 || int(v) >= len(c.values) {
		return nil, undeclared(v)
	}
	return c.values[v], nil
}

// VarToExpression returns the affine expression a Var currently resolves
// to.
func (c *Context) VarToExpression(v Var) (acir.Expr, error) {
	f, err := c.form(v)
	if err != nil {
		return acir.Expr{}, err
	}
	return f.toExpr(), nil
}

// VarToWitness materializes v as a bare witness, allocating one and
// binding it with an AssertZero opcode if v is not already a bare witness
// or constant-folded witness.
func (c *Context) VarToWitness(v Var) (acir.Witness, error) {
	f, err := c.form(v)
	if err != nil {
		return 0, err
	}
	switch ff := f.(type) {
	case WitForm:
		return ff.W, nil
	case ConstForm:
		return c.constWitness(ff.C), nil
	case ExprForm:
		return c.container.GetOrCreateWitness(ff.E), nil
	}
	return 0, impossibleUnwrap(v)
}

// constWitness returns a cached witness bound to the constant c,
// allocating and binding one on first use. Reusing the witness for a
// repeated constant keeps opcode count from growing with how many times a
// literal appears in the source program.
func (c *Context) constWitness(val field.Element) acir.Witness {
	key := string(func() []byte { b := val.Bytes(); return b[:] }())
	if w, ok := c.constWitnesses[key]; ok {
		return w
	}
	w := c.container.GetOrCreateWitness(acir.ExprFromConst(val))
	c.constWitnesses[key] = w
	return w
}

// GetOrCreateWitnessVar returns a Var guaranteed to resolve to a bare
// witness, materializing one if v was a constant or a general expression.
func (c *Context) GetOrCreateWitnessVar(v Var) (Var, error) {
	f, err := c.form(v)
	if err != nil {
		return 0, err
	}
	if _, ok := f.(WitForm); ok {
		return v, nil
	}
	w, err := c.VarToWitness(v)
	if err != nil {
		return 0, err
	}
	return c.createValue(WitForm{W: w}), nil
}

// MarkVariablesEquivalent records that a and b denote the same value,
// rewriting both table entries to whichever of the two forms is cheapest,
// so later lookups of either resolve through it without re-emitting the
// other's defining opcodes. A constant beats a witness beats a general
// expression; two witnesses collapse to the lower-indexed one; two general
// expressions keep whichever carries fewer terms. The choice is
// commutative: MarkVariablesEquivalent(a, b) and MarkVariablesEquivalent(b,
// a) leave both variables resolving to the same form. It does not itself
// emit an equality constraint; callers that need one call AssertEqVar.
func (c *Context) MarkVariablesEquivalent(a, b Var) error {
	fa, err := c.form(a)
	if err != nil {
		return err
	}
	fb, err := c.form(b)
	if err != nil {
		return err
	}
	canonical := preferredForm(fa, fb)
	c.values[a] = canonical
	c.values[b] = canonical
	return nil
}

// preferredForm picks the cheaper of two forms already known to denote the
// same value.
func preferredForm(lhs, rhs Form) Form {
	if _, ok := lhs.(ConstForm); ok {
		return lhs
	}
	if _, ok := rhs.(ConstForm); ok {
		return rhs
	}
	lw, lIsWit := lhs.(WitForm)
	rw, rIsWit := rhs.(WitForm)
	switch {
	case lIsWit && rIsWit:
		if rw.W < lw.W {
			return rw
		}
		return lw
	case lIsWit:
		return lw
	case rIsWit:
		return rw
	}
	le := lhs.(ExprForm)
	re := rhs.(ExprForm)
	if exprTermCount(re.E) < exprTermCount(le.E) {
		return re
	}
	return le
}

func exprTermCount(e acir.Expr) int {
	return len(e.MulTerms) + len(e.LinearTerms)
}

func (c *Context) applyWidthBudget(e acir.Expr) acir.Expr {
	e = e.Normalize()
	if c.width.Fits(e) {
		return e
	}
	w := c.container.GetOrCreateWitness(e)
	return acir.ExprFromWitness(w)
}

func (c *Context) newExprValue(e acir.Expr) Var {
	return c.createValue(newForm(c.applyWidthBudget(e)))
}

// Finish hands the underlying container back to the caller together with
// every warning recorded while lowering. It records no input or return
// witness lists on the container.
func (c *Context) Finish() (acir.Container, []Warning) {
	return c.container, c.warnings
}
