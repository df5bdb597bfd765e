package circuit

import (
	"circuitforge/internal/acir"
	"circuitforge/internal/field"
)

func (c *Context) bitwiseBlackBox(fn acir.BlackBoxFunc, a, b Var, bitSize uint32) (Var, error) {
	if bitSize == 0 {
		return 0, zeroBitSize()
	}
	ea, err := c.VarToExpression(a)
	if err != nil {
		return 0, err
	}
	eb, err := c.VarToExpression(b)
	if err != nil {
		return 0, err
	}
	out, err := c.blackbox.Call(c.container, fn, []acir.Expr{ea, eb}, bitSize, 1)
	if err != nil {
		return 0, err
	}
	return c.createValue(WitForm{W: out[0]}), nil
}

func (c *Context) AndVar(a, b Var, bitSize uint32) (Var, error) {
	return c.bitwiseBlackBox(acir.BlackBoxAND, a, b, bitSize)
}

func (c *Context) XorVar(a, b Var, bitSize uint32) (Var, error) {
	return c.bitwiseBlackBox(acir.BlackBoxXOR, a, b, bitSize)
}

// OrVar has no dedicated black box: it is built from AND and the
// inclusion-exclusion identity a|b = a + b - a&b, which needs only the
// affine layer once the AND term is known.
func (c *Context) OrVar(a, b Var, bitSize uint32) (Var, error) {
	and, err := c.AndVar(a, b, bitSize)
	if err != nil {
		return 0, err
	}
	sum, err := c.AddVar(a, b)
	if err != nil {
		return 0, err
	}
	return c.SubVar(sum, and)
}

// NotVar computes the bitwise complement of a bitSize-bounded value,
// mask - v, a pure affine operation: no oracle call, no extra constraint.
// It is only correct for values already known to fit in bitSize bits.
func (c *Context) NotVar(v Var, bitSize uint32) (Var, error) {
	if bitSize == 0 {
		return 0, zeroBitSize()
	}
	mask := maskOfBits(bitSize)
	maskVar := c.AddConstant(mask)
	return c.SubVar(maskVar, v)
}

func fieldTwo() field.Element {
	return field.FromUint64(2)
}

func maskOfBits(bitSize uint32) field.Element {
	one := field.One()
	two := field.FromUint64(2)
	pow := one
	for i := uint32(0); i < bitSize; i++ {
		pow = pow.Mul(two)
	}
	return pow.Sub(one)
}
