package circuit

import "math/bits"

// RadixDecomposeVar decomposes v into little-endian digits base radix,
// each fitting in the same number of bits, enough digits to cover
// bitSize. radix must resolve to a compile-time constant: a decomposition
// whose digit count depended on a witness couldn't be range-constrained
// ahead of time.
func (c *Context) RadixDecomposeVar(v, radixVar Var, bitSize uint32) ([]Var, error) {
	if bitSize == 0 {
		return nil, zeroBitSize()
	}
	radixForm, err := c.form(radixVar)
	if err != nil {
		return nil, err
	}
	cf, ok := radixForm.(ConstForm)
	if !ok {
		return nil, nonConstantRadix()
	}
	radixBig := cf.C.BigInt()
	if !radixBig.IsUint64() || radixBig.Uint64() < 2 {
		return nil, nonConstantRadix()
	}
	radix := uint32(radixBig.Uint64())

	bitsPerLimb := uint32(bits.Len32(radix - 1))
	if bitsPerLimb == 0 {
		bitsPerLimb = 1
	}
	limbs := (bitSize + bitsPerLimb - 1) / bitsPerLimb

	vExpr, err := c.VarToExpression(v)
	if err != nil {
		return nil, err
	}
	ws, err := c.container.RadixLEDecompose(vExpr, radix, limbs, bitsPerLimb)
	if err != nil {
		return nil, err
	}
	out := make([]Var, len(ws))
	for i, w := range ws {
		out[i] = c.createValue(WitForm{W: w})
	}
	return out, nil
}

// BitDecomposeVar is RadixDecomposeVar specialized to base 2, the form
// used internally to extract a value's sign bit for signed arithmetic.
func (c *Context) BitDecomposeVar(v Var, bitSize uint32) ([]Var, error) {
	two := c.AddConstant(fieldTwo())
	return c.RadixDecomposeVar(v, two, bitSize)
}

// signOf returns the most significant bit of v's bitSize-bit
// representation, the sign bit under the two's-complement convention used
// by signed division and signed comparison.
func (c *Context) signOf(v Var, bitSize uint32) (Var, error) {
	digits, err := c.BitDecomposeVar(v, bitSize)
	if err != nil {
		return 0, err
	}
	return digits[len(digits)-1], nil
}
