package circuit

import "testing"

// These exercise the signed layer over small two's-complement witness
// values; since the sign bit is itself derived via bit decomposition of a
// witness (not a compile-time constant), the division and comparison do
// not constant-fold and are checked for opcode emission and error-free
// construction only, not solved values, matching the scope of a Brillig
// hint that is not actually evaluated here.
func TestSignedDivisionOfWitnessesBuildsWithoutError(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	if _, _, err := ctx.SignedDivisionVar(a, b, 8, ctx.OneVar()); err != nil {
		t.Fatal(err)
	}
}

func TestLessThanSignedOfWitnessesBuildsWithoutError(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	if _, err := ctx.LessThanSigned(a, b, 8); err != nil {
		t.Fatal(err)
	}
}

func TestTwoComplementOfZeroSignIsIdentity(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 5)
	zeroSign := constVar(t, ctx, 0)
	tc, err := ctx.twoComplement(a, zeroSign, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !mustExpr(t, ctx, tc).Equal(mustExpr(t, ctx, a)) {
		t.Fatalf("two's complement under a zero sign bit should be the identity")
	}
}
