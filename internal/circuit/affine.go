package circuit

import (
	"circuitforge/internal/acir"
	"circuitforge/internal/circuiterr"
	"circuitforge/internal/field"
)

func (c *Context) NegVar(a Var) (Var, error) {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	return c.newExprValue(ea.Neg()), nil
}

func (c *Context) AddVar(a, b Var) (Var, error) {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return 0, err
	}
	return c.newExprValue(ea.Add(eb)), nil
}

func (c *Context) SubVar(a, b Var) (Var, error) {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return 0, err
	}
	return c.newExprValue(ea.Sub(eb)), nil
}

// reduceToLinear flattens v's expression to one with no multiplicative
// terms, promoting it to a witness first if it already carries any. Degree
// cannot exceed two: multiplying two expressions that both already carry a
// product term would need a cubic identity no opcode here can express.
func (c *Context) reduceToLinear(v Var) (acir.Expr, error) {
	e, err := c.VarToExpression(v)
	if err != nil {
		return acir.Expr{}, err
	}
	if e.IsLinear() {
		return e, nil
	}
	w := c.container.GetOrCreateWitness(e)
	c.values[v] = WitForm{W: w}
	return acir.ExprFromWitness(w), nil
}

// MulVar multiplies two values. Constant operands fold away for free;
// otherwise both operands are reduced to expressions with no existing
// product terms (promoting each operand that carries one to a witness, the
// narrower one first when both do) and fully expanded into the result's
// product terms.
func (c *Context) MulVar(a, b Var) (Var, error) {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return 0, err
	}
	if ea.IsConstant() {
		return c.newExprValue(eb.Scale(ea.Constant)), nil
	}
	if eb.IsConstant() {
		return c.newExprValue(ea.Scale(eb.Constant)), nil
	}

	// Either operand already carrying a product term must collapse to a
	// bare witness before multiplying: the result type can only hold
	// degree-2 terms, so multiplying two degree-2-bearing operands (or
	// one degree-2 operand by anything but a constant) would need a
	// degree-3 term it cannot represent. On a tie, the narrower operand
	// is reduced first, but both get reduced whenever both need it.
	if ea.Width() > 0 && eb.Width() > 0 {
		if ea.Width() <= eb.Width() {
			if ea, err = c.reduceToLinear(a); err != nil {
				return 0, err
			}
		} else {
			if eb, err = c.reduceToLinear(b); err != nil {
				return 0, err
			}
		}
	}
	if !ea.IsLinear() {
		if ea, err = c.reduceToLinear(a); err != nil {
			return 0, err
		}
	}
	if !eb.IsLinear() {
		if eb, err = c.reduceToLinear(b); err != nil {
			return 0, err
		}
	}

	var result acir.Expr
	for _, ta := range ea.LinearTerms {
		for _, tb := range eb.LinearTerms {
			result.MulTerms = append(result.MulTerms, acir.MulTerm{Coeff: ta.Coeff.Mul(tb.Coeff), LHS: ta.W, RHS: tb.W})
		}
		result.LinearTerms = append(result.LinearTerms, acir.LinearTerm{Coeff: ta.Coeff.Mul(eb.Constant), W: ta.W})
	}
	for _, tb := range eb.LinearTerms {
		result.LinearTerms = append(result.LinearTerms, acir.LinearTerm{Coeff: tb.Coeff.Mul(ea.Constant), W: tb.W})
	}
	result.Constant = ea.Constant.Mul(eb.Constant)

	return c.newExprValue(result), nil
}

// EqVar returns a Var holding 1 when a and b denote equal values and 0
// otherwise, without asserting anything about the result.
func (c *Context) EqVar(a, b Var) (Var, error) {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return 0, err
	}
	if ea.IsConstant() && eb.IsConstant() {
		if ea.Constant.Equal(eb.Constant) {
			return c.oneVar, nil
		}
		return c.AddConstant(field.Zero()), nil
	}
	w := c.container.IsEqual(ea, eb)
	return c.createValue(WitForm{W: w}), nil
}

// AssertEqVar constrains a and b to be equal. When the difference
// constant-folds to zero, the two values are already known equal and no
// opcode is needed. When it constant-folds to a nonzero value, the
// assertion can never be satisfied; rather than refuse to build it, a
// warning is recorded and the always-failing identity is emitted anyway,
// matching a caller that deliberately wants the provably-false constraint
// to show up in the circuit. Either way, a successful call also merges the
// two table entries through MarkVariablesEquivalent.
func (c *Context) AssertEqVar(a, b Var, payload *acir.AssertionPayload) error {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return err
	}
	diff := ea.Sub(eb)
	if diff.IsConstant() {
		if diff.Constant.IsZero() {
			return c.MarkVariablesEquivalent(a, b)
		}
		c.warn("assert_eq: %s != %s is provably false", ea.Constant, eb.Constant)
	}
	if err := c.container.PushOpcode(acir.AssertZero{Expr: diff}); err != nil {
		return err
	}
	if payload != nil {
		c.container.AddAssertionPayload(payload.Selector, *payload)
	}
	return c.MarkVariablesEquivalent(a, b)
}

// AssertNeqVar constrains a and b to differ whenever predicate is 1; under
// predicate 0 the assertion is vacuous. When the difference constant-folds
// to a nonzero value ahead of time, the assertion is trivially true
// whatever the predicate, and no opcode is emitted at all.
func (c *Context) AssertNeqVar(a, b, predicate Var, payload *acir.AssertionPayload) error {
	ea, err := c.VarToExpression(a)
	if err != nil {
		return err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return err
	}
	diff := ea.Sub(eb)
	predExpr, err := c.VarToExpression(predicate)
	if err != nil {
		return err
	}

	if diff.IsConstant() {
		if diff.Constant.IsZero() {
			if predExpr.IsConstant() && !predExpr.Constant.IsZero() {
				return provablyFalse(payload, "assert_neq: %s == %s", ea.Constant, eb.Constant)
			}
			// predicate is not known to be unconditionally true; fall
			// through and let the general gadget encode the conditional.
		} else {
			// difference is nonzero regardless of predicate: trivially
			// true, no opcode needed, no payload recorded.
			return nil
		}
	}

	diffW := c.container.GetOrCreateWitness(diff)
	predW := c.container.GetOrCreateWitness(predExpr)
	invOut, err := c.brillig.Call(c.container, acir.BrilligInverse, &predExpr, []acir.Expr{diff}, 1)
	if err != nil {
		return err
	}
	inv := invOut[0]

	// predicate - predicate*diff*inv == 0 needs a cubic term (pred*diff*inv);
	// bind t = diff*inv first, then constrain predicate*(1-t) == 0.
	t := c.container.GetOrCreateWitness(acir.Expr{MulTerms: []acir.MulTerm{{Coeff: field.One(), LHS: diffW, RHS: inv}}})
	finalIdentity := acir.Expr{
		MulTerms:    []acir.MulTerm{{Coeff: field.One().Neg(), LHS: predW, RHS: t}},
		LinearTerms: []acir.LinearTerm{{Coeff: field.One(), W: predW}},
	}
	if err := c.container.PushOpcode(acir.AssertZero{Expr: finalIdentity}); err != nil {
		return err
	}
	if payload != nil {
		c.container.AddAssertionPayload(payload.Selector, *payload)
	}
	return nil
}

// InvVar returns the multiplicative inverse of v, gated by predicate: under
// predicate 0 the check is vacuous; under predicate 1 it forces v*inv ==
// predicate, which is impossible to satisfy when v is actually zero. A
// constant v folds the inverse itself through field inversion (zero maps
// to zero by convention) but still goes through the same check, so a
// constant zero under an unconditional predicate is as unsatisfiable as a
// witness zero would be. A non-constant v is inverted via a Brillig hint
// instead of field inversion, since its value isn't known until proving
// time.
func (c *Context) InvVar(v, predicate Var) (Var, error) {
	ev, err := c.VarToExpression(v)
	if err != nil {
		return 0, err
	}
	if ev.IsConstant() {
		invVar := c.AddConstant(ev.Constant.Inverse())
		check, err := c.MulVar(invVar, v)
		if err != nil {
			return 0, err
		}
		if err := c.AssertEqVar(check, predicate, nil); err != nil {
			return 0, err
		}
		return invVar, nil
	}
	predExpr, err := c.VarToExpression(predicate)
	if err != nil {
		return 0, err
	}
	out, err := c.brillig.Call(c.container, acir.BrilligInverse, &predExpr, []acir.Expr{ev}, 1)
	if err != nil {
		return 0, err
	}
	inv := out[0]
	vW := c.container.GetOrCreateWitness(ev)
	predW := c.container.GetOrCreateWitness(predExpr)
	// predicate * (v*inv - 1) == 0
	t := c.container.GetOrCreateWitness(acir.Expr{MulTerms: []acir.MulTerm{{Coeff: field.One(), LHS: vW, RHS: inv}}, Constant: field.One().Neg()})
	identity := acir.Expr{MulTerms: []acir.MulTerm{{Coeff: field.One(), LHS: predW, RHS: t}}}
	if err := c.container.PushOpcode(acir.AssertZero{Expr: identity}); err != nil {
		return 0, err
	}
	return c.createValue(WitForm{W: inv}), nil
}

func provablyFalse(payload *acir.AssertionPayload, format string, args ...any) error {
	return circuiterr.NewRuntime(circuiterr.CodeProvablyFalseAssertion, payload, format, args...)
}
