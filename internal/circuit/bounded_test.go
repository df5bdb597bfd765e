package circuit

import (
	"testing"

	"circuitforge/internal/field"
)

func TestEuclideanDivisionConstantFolds(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 17)
	b := constVar(t, ctx, 5)
	before := len(ctx.Container().Opcodes())
	q, r, err := ctx.EuclideanDivisionVar(a, b, 8, ctx.OneVar())
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) != before {
		t.Fatalf("dividing two constants should emit no opcodes")
	}
	if !mustExpr(t, ctx, q).Equal(field.FromUint64(3)) {
		t.Fatalf("17/5 quotient = %s, want 3", mustExpr(t, ctx, q))
	}
	if !mustExpr(t, ctx, r).Equal(field.FromUint64(2)) {
		t.Fatalf("17/5 remainder = %s, want 2", mustExpr(t, ctx, r))
	}
}

func TestEuclideanDivisionByZeroConstantErrors(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 17)
	b := constVar(t, ctx, 0)
	if _, _, err := ctx.EuclideanDivisionVar(a, b, 8, ctx.OneVar()); err == nil {
		t.Fatalf("expected division by zero to error")
	}
}

func TestEuclideanDivisionOfWitnessesEmitsReconstructionAndBounds(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	if _, _, err := ctx.EuclideanDivisionVar(a, b, 8, ctx.OneVar()); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) == 0 {
		t.Fatalf("dividing two witnesses must emit opcodes binding quotient and remainder")
	}
}

func TestEuclideanDivisionByConstantOneShortCircuits(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	one := constVar(t, ctx, 1)
	before := len(ctx.Container().Opcodes())
	q, r, err := ctx.EuclideanDivisionVar(a, one, 32, ctx.OneVar())
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) != before {
		t.Fatalf("dividing a fresh witness by the constant 1 should emit no opcodes")
	}
	if q != a {
		t.Fatalf("dividing by 1 should return the dividend itself as the quotient")
	}
	if !mustExpr(t, ctx, r).IsZero() {
		t.Fatalf("dividing by 1 should return a zero remainder")
	}
}

func TestEuclideanDivisionUnderZeroPredicateShortCircuits(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	zeroPredicate := constVar(t, ctx, 0)
	before := len(ctx.Container().Opcodes())
	q, r, err := ctx.EuclideanDivisionVar(a, b, 32, zeroPredicate)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) != before {
		t.Fatalf("a division gated off by predicate 0 should emit no opcodes")
	}
	if !mustExpr(t, ctx, q).IsZero() || !mustExpr(t, ctx, r).IsZero() {
		t.Fatalf("a division gated off by predicate 0 should trivially return (0, 0)")
	}
}

func TestEuclideanDivisionOfWitnessByVariableDivisorGuardsAgainstZero(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	before := len(ctx.Container().Opcodes())
	if _, _, err := ctx.EuclideanDivisionVar(a, b, 8, ctx.OneVar()); err != nil {
		t.Fatal(err)
	}
	// the reconstruction identity, the divisor-nonzero guard, and the
	// range/bound checks on q and r together must be more than one opcode.
	if got := len(ctx.Container().Opcodes()) - before; got < 2 {
		t.Fatalf("dividing by a non-constant divisor should emit a nonzero-divisor guard in addition to the reconstruction identity, got %d opcodes", got)
	}
}

func TestEuclideanDivisionOfWitnessByConstantDivisorGuardsOverflow(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := constVar(t, ctx, 5)
	before := len(ctx.Container().Opcodes())
	if _, _, err := ctx.EuclideanDivisionVar(a, b, 8, ctx.OneVar()); err != nil {
		t.Fatal(err)
	}
	if got := len(ctx.Container().Opcodes()) - before; got < 2 {
		t.Fatalf("dividing by a constant divisor should emit a quotient-overflow guard in addition to the reconstruction identity, got %d opcodes", got)
	}
}

func TestRangeConstrainConstantThatFitsIsNoOp(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 3)
	before := len(ctx.Container().Opcodes())
	if err := ctx.RangeConstrainVar(a, 8); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) != before {
		t.Fatalf("range constraining a constant that fits should not emit an opcode")
	}
}

func TestRangeConstrainConstantThatDoesNotFitErrors(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 256)
	if err := ctx.RangeConstrainVar(a, 8); err == nil {
		t.Fatalf("256 does not fit in 8 bits, expected an error")
	}
}

func TestBoundConstraintWithOffsetConstantPathAccepts(t *testing.T) {
	ctx := newTestContext()
	lhs := ctx.AddVariable()
	rhs := constVar(t, ctx, 10)
	offset := constVar(t, ctx, 1)
	if err := ctx.BoundConstraintWithOffset(lhs, rhs, offset, 8); err != nil {
		t.Fatal(err)
	}
}

func TestMoreThanEqVarConstantFolds(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 10)
	b := constVar(t, ctx, 3)
	ge, err := ctx.MoreThanEqVar(a, b, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !mustExpr(t, ctx, ge).IsOne() {
		t.Fatalf("10 >= 3 should fold to 1")
	}

	lt, err := ctx.LessThanVar(a, b, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !mustExpr(t, ctx, lt).IsZero() {
		t.Fatalf("10 < 3 should fold to 0")
	}
}

func TestTruncateVarConstantFolds(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 0b10110)
	trunc, err := ctx.TruncateVar(a, 3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !mustExpr(t, ctx, trunc).Equal(field.FromUint64(0b110)) {
		t.Fatalf("truncate(0b10110, 3) = %s, want 0b110", mustExpr(t, ctx, trunc))
	}
}

func TestBitDecomposeOfConstantYieldsOneDigitPerBit(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 0b1011)
	digits, err := ctx.BitDecomposeVar(a, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(digits) != 4 {
		t.Fatalf("expected 4 digits, got %d", len(digits))
	}
}

func TestRadixDecomposeRejectsNonConstantRadix(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	radix := ctx.AddVariable()
	if _, err := ctx.RadixDecomposeVar(a, radix, 8); err == nil {
		t.Fatalf("expected an error for a non-constant radix")
	}
}
