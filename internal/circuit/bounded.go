package circuit

import (
	"math/big"

	"circuitforge/internal/acir"
	"circuitforge/internal/circuiterr"
	"circuitforge/internal/field"
)

// RangeConstrainVar asserts that v's value fits in bitSize bits. A
// constant v is checked immediately and reported as provably false if it
// doesn't fit; a witness or expression is bound to a fresh witness and
// range-constrained through the container. Requesting a bit size at or
// above the field's own bit width is accepted but warned about: such a
// constraint no longer distinguishes every element from its negation.
func (c *Context) RangeConstrainVar(v Var, bitSize uint32) error {
	if bitSize == 0 {
		return zeroBitSize()
	}
	if bitSize >= uint32(field.MaxBits()) {
		c.warn("range constraint of %d bits is at or above the field width and cannot separate every value from its negation", bitSize)
	}
	e, err := c.VarToExpression(v)
	if err != nil {
		return err
	}
	if e.IsConstant() {
		if uint32(e.Constant.NumBits()) > bitSize {
			return circuiterr.NewRuntime(circuiterr.CodeProvablyFalseAssertion, nil, "constant %s does not fit in %d bits", e.Constant, bitSize)
		}
		return nil
	}
	w := c.container.GetOrCreateWitness(e)
	return c.container.RangeConstraint(w, bitSize)
}

// BoundConstraintWithOffset enforces lhs + offset <= rhs by range
// constraining rhs - (lhs + offset) to bits bits. When rhs and offset are
// both compile-time constants, the bound folds into a single constant r =
// 2^bits - 1 - (rhs - offset) and the range check runs over lhs + r
// directly, saving the subtraction's own opcode.
func (c *Context) BoundConstraintWithOffset(lhs, rhs, offset Var, bits uint32) error {
	rhsExpr, err := c.VarToExpression(rhs)
	if err != nil {
		return err
	}
	offsetExpr, err := c.VarToExpression(offset)
	if err != nil {
		return err
	}
	if rhsExpr.IsConstant() && offsetExpr.IsConstant() {
		rVal := maskOfBits(bits).Sub(rhsExpr.Constant.Sub(offsetExpr.Constant))
		rVar := c.AddConstant(rVal)
		sum, err := c.AddVar(lhs, rVar)
		if err != nil {
			return err
		}
		return c.RangeConstrainVar(sum, bits)
	}

	lhsPlusOffset, err := c.AddVar(lhs, offset)
	if err != nil {
		return err
	}
	diff, err := c.SubVar(rhs, lhsPlusOffset)
	if err != nil {
		return err
	}
	return c.RangeConstrainVar(diff, bits)
}

// EuclideanDivisionVar computes the unsigned quotient and remainder of a
// divided by b, both assumed to fit in bitSize bits. predicate gates the
// division: under predicate 0 the result is trivially (0, 0) and nothing
// about a or b is constrained, since the caller has already decided the
// division shouldn't happen (a guard against dividing by a value that
// might be zero). Dividing by the constant 1 is also handled before any
// opcode is emitted, since the answer (a, 0) needs no reconstruction
// identity to prove. When both operands are constant and the division is
// live, the result folds at construction time with no opcodes at all.
// Otherwise a Brillig hint supplies a candidate (q, r), which the identity
// a - (b*q + r) == 0 and the range/bound constraints on q and r then pin
// down uniquely. A non-constant b additionally carries a guard identity
// forbidding b == 0 under a live predicate, since the reconstruction
// identity alone is satisfiable by q=r=0 when b is actually zero. A
// constant b instead carries a bound on q tied to the field modulus,
// since q*b could otherwise wrap the modulus and satisfy the
// reconstruction identity with a q too large to be the real quotient.
func (c *Context) EuclideanDivisionVar(a, b Var, bitSize uint32, predicate Var) (q, r Var, err error) {
	if bitSize == 0 {
		return 0, 0, zeroBitSize()
	}
	aExpr, err := c.VarToExpression(a)
	if err != nil {
		return 0, 0, err
	}
	bExpr, err := c.VarToExpression(b)
	if err != nil {
		return 0, 0, err
	}
	predExpr, err := c.VarToExpression(predicate)
	if err != nil {
		return 0, 0, err
	}

	if predExpr.IsConstant() && predExpr.Constant.IsZero() {
		return c.AddConstant(field.Zero()), c.AddConstant(field.Zero()), nil
	}
	if bExpr.IsConstant() && bExpr.Constant.IsOne() {
		return a, c.AddConstant(field.Zero()), nil
	}

	if aExpr.IsConstant() && bExpr.IsConstant() {
		bBig := bExpr.Constant.BigInt()
		if bBig.Sign() == 0 {
			return 0, 0, circuiterr.NewRuntime(circuiterr.CodeDivisionByZero, nil, "division by the constant 0")
		}
		aBig := aExpr.Constant.BigInt()
		qBig := new(big.Int)
		rBig := new(big.Int)
		qBig.DivMod(aBig, bBig, rBig)
		return c.AddConstant(field.FromBigInt(qBig)), c.AddConstant(field.FromBigInt(rBig)), nil
	}

	outs, err := c.brillig.Call(c.container, acir.BrilligQuotient, &predExpr, []acir.Expr{aExpr, bExpr}, 2)
	if err != nil {
		return 0, 0, err
	}
	qVar := c.createValue(WitForm{W: outs[0]})
	rVar := c.createValue(WitForm{W: outs[1]})

	bq, err := c.MulVar(b, qVar)
	if err != nil {
		return 0, 0, err
	}
	bqr, err := c.AddVar(bq, rVar)
	if err != nil {
		return 0, 0, err
	}
	diff, err := c.SubVar(a, bqr)
	if err != nil {
		return 0, 0, err
	}
	gated, err := c.MulVar(predicate, diff)
	if err != nil {
		return 0, 0, err
	}
	gatedExpr, err := c.VarToExpression(gated)
	if err != nil {
		return 0, 0, err
	}
	if err := c.container.PushOpcode(acir.AssertZero{Expr: gatedExpr}); err != nil {
		return 0, 0, err
	}

	if bExpr.IsConstant() {
		if err := c.constantDivisorOverflowGuard(qVar, bExpr.Constant); err != nil {
			return 0, 0, err
		}
	} else {
		if err := c.nonZeroDivisorGuard(b, predicate); err != nil {
			return 0, 0, err
		}
	}

	if err := c.RangeConstrainVar(qVar, bitSize); err != nil {
		return 0, 0, err
	}
	if err := c.RangeConstrainVar(rVar, bitSize); err != nil {
		return 0, 0, err
	}
	// r < b
	if err := c.BoundConstraintWithOffset(rVar, b, c.oneVar, bitSize); err != nil {
		return 0, 0, err
	}

	return qVar, rVar, nil
}

// nonZeroDivisorGuard pushes (b==0)*predicate == 0, forbidding a live
// predicate from pairing with a divisor that turns out to be zero. Without
// it, the reconstruction identity a - (b*q+r) == 0 is satisfiable by
// q=r=0 whenever b is actually zero, regardless of what a is.
func (c *Context) nonZeroDivisorGuard(b, predicate Var) error {
	bIsZero, err := c.EqVar(b, c.AddConstant(field.Zero()))
	if err != nil {
		return err
	}
	guard, err := c.MulVar(bIsZero, predicate)
	if err != nil {
		return err
	}
	guardExpr, err := c.VarToExpression(guard)
	if err != nil {
		return err
	}
	return c.container.PushOpcode(acir.AssertZero{Expr: guardExpr})
}

// constantDivisorOverflowGuard bounds q by floor(modulus/b): any larger q
// lets b*q wrap the field modulus, which could make the reconstruction
// identity hold for a q that is not the true quotient.
func (c *Context) constantDivisorOverflowGuard(qVar Var, bConst field.Element) error {
	bBig := bConst.BigInt()
	maxQBig := new(big.Int).Div(field.Modulus(), bBig)
	maxQVar := c.AddConstant(field.FromBigInt(maxQBig))
	overflowBits := uint32(maxQBig.BitLen()) + 1
	return c.BoundConstraintWithOffset(qVar, maxQVar, c.AddConstant(field.Zero()), overflowBits)
}

// TruncateVar reduces x, known to fit in maxBit bits, to its low k bits:
// the remainder of dividing x by 2^k.
func (c *Context) TruncateVar(x Var, k, maxBit uint32) (Var, error) {
	if k >= maxBit {
		return x, nil
	}
	divisor := c.AddConstant(powerOfTwo(k))
	_, r, err := c.EuclideanDivisionVar(x, divisor, maxBit, c.oneVar)
	return r, err
}

func powerOfTwo(k uint32) field.Element {
	out := field.One()
	two := fieldTwo()
	for i := uint32(0); i < k; i++ {
		out = out.Mul(two)
	}
	return out
}

// twoComplement computes tc(x,s) = x + 2*s*(2^(bitSize-1) - x): x itself
// when s is 0 and 2^bitSize - x when s is 1. Applied to a two's-complement
// value with its own sign bit it yields the magnitude; applied to a
// magnitude with a sign bit it yields the two's-complement encoding.
func (c *Context) twoComplement(x, sign Var, bitSize uint32) (Var, error) {
	threshold := c.AddConstant(powerOfTwo(bitSize - 1))
	inner, err := c.SubVar(threshold, x)
	if err != nil {
		return 0, err
	}
	twiceSign, err := c.MulVar(sign, c.AddConstant(fieldTwo()))
	if err != nil {
		return 0, err
	}
	scaled, err := c.MulVar(twiceSign, inner)
	if err != nil {
		return 0, err
	}
	return c.AddVar(x, scaled)
}

// SignedDivisionVar computes the truncating signed quotient and remainder
// of a divided by b, both bitSize-bit two's-complement values, by mapping
// both operands to their magnitudes with twoComplement, dividing the
// magnitudes unsigned, and mapping the results back: the quotient takes
// the xor of the operands' signs, the remainder takes the dividend's sign.
func (c *Context) SignedDivisionVar(a, b Var, bitSize uint32, predicate Var) (q, r Var, err error) {
	signA, err := c.signOf(a, bitSize)
	if err != nil {
		return 0, 0, err
	}
	signB, err := c.signOf(b, bitSize)
	if err != nil {
		return 0, 0, err
	}
	tcA, err := c.twoComplement(a, signA, bitSize)
	if err != nil {
		return 0, 0, err
	}
	tcB, err := c.twoComplement(b, signB, bitSize)
	if err != nil {
		return 0, 0, err
	}
	uq, ur, err := c.EuclideanDivisionVar(tcA, tcB, bitSize, predicate)
	if err != nil {
		return 0, 0, err
	}
	qSign, err := c.XorVar(signA, signB, 1)
	if err != nil {
		return 0, 0, err
	}
	q, err = c.twoComplement(uq, qSign, bitSize)
	if err != nil {
		return 0, 0, err
	}
	r, err = c.twoComplement(ur, signA, bitSize)
	if err != nil {
		return 0, 0, err
	}
	return q, r, nil
}

// MoreThanEqVar returns 1 when a >= b and 0 otherwise, both assumed to fit
// in bitSize bits, via the standard shifted-division trick:
// (a - b + 2^bitSize) / 2^bitSize is 1 exactly when a >= b.
func (c *Context) MoreThanEqVar(a, b Var, bitSize uint32) (Var, error) {
	diff, err := c.SubVar(a, b)
	if err != nil {
		return 0, err
	}
	shifted, err := c.AddVar(diff, c.AddConstant(powerOfTwo(bitSize)))
	if err != nil {
		return 0, err
	}
	divisor := c.AddConstant(powerOfTwo(bitSize))
	q, _, err := c.EuclideanDivisionVar(shifted, divisor, bitSize+1, c.oneVar)
	return q, err
}

func (c *Context) LessThanVar(a, b Var, bitSize uint32) (Var, error) {
	ge, err := c.MoreThanEqVar(a, b, bitSize)
	if err != nil {
		return 0, err
	}
	return c.SubVar(c.oneVar, ge)
}

// LessThanSigned compares two bitSize-bit two's-complement values.
// Operands of the same sign compare like their unsigned encodings;
// operands of differing sign compare by sign alone, since every negative
// value is less than every non-negative one.
func (c *Context) LessThanSigned(a, b Var, bitSize uint32) (Var, error) {
	signA, err := c.signOf(a, bitSize)
	if err != nil {
		return 0, err
	}
	signB, err := c.signOf(b, bitSize)
	if err != nil {
		return 0, err
	}
	ltUnsigned, err := c.LessThanVar(a, b, bitSize)
	if err != nil {
		return 0, err
	}
	sameSign, err := c.EqVar(signA, signB)
	if err != nil {
		return 0, err
	}
	whenSame, err := c.MulVar(sameSign, ltUnsigned)
	if err != nil {
		return 0, err
	}
	notSame, err := c.SubVar(c.oneVar, sameSign)
	if err != nil {
		return 0, err
	}
	whenDiff, err := c.MulVar(notSame, signA)
	if err != nil {
		return 0, err
	}
	return c.AddVar(whenSame, whenDiff)
}
