package circuit

import (
	"testing"

	"circuitforge/internal/field"
)

func TestNotVarConstantFolds(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 0b0110)
	not, err := ctx.NotVar(a, 4)
	if err != nil {
		t.Fatal(err)
	}
	got := mustExpr(t, ctx, not)
	if !got.Equal(field.FromUint64(0b1001)) {
		t.Fatalf("not(0b0110, 4 bits) = %s, want 0b1001", got)
	}
}

func TestAndXorOrEmitBlackBoxOpcodes(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()

	if _, err := ctx.AndVar(a, b, 8); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.XorVar(a, b, 8); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.OrVar(a, b, 8); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Container().Opcodes()) < 3 {
		t.Fatalf("expected at least 3 opcodes from AND, XOR, and OR's internal AND call")
	}
}

func TestBitwiseZeroBitSizeErrors(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	if _, err := ctx.NotVar(a, 0); err == nil {
		t.Fatalf("expected an error for a zero bit size")
	}
}
