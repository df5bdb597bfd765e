package circuit

import (
	"testing"

	"circuitforge/internal/field"
)

func newTestContext() *Context {
	return NewDefaultContext(Bounded(4))
}

func TestAddConstantDoesNotAllocateWitness(t *testing.T) {
	ctx := newTestContext()
	before := ctx.Container().CurrentWitnessIndex()
	ctx.AddConstant(field.FromUint64(42))
	after := ctx.Container().CurrentWitnessIndex()
	if before != after {
		t.Fatalf("AddConstant allocated a witness: before=%d after=%d", before, after)
	}
}

func TestAddVariableAllocatesFreshWitnessEachTime(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	wa, err := ctx.VarToWitness(a)
	if err != nil {
		t.Fatal(err)
	}
	wb, err := ctx.VarToWitness(b)
	if err != nil {
		t.Fatal(err)
	}
	if wa == wb {
		t.Fatalf("two distinct AddVariable calls produced the same witness")
	}
}

func TestVarToExpressionUnknownVarErrors(t *testing.T) {
	ctx := newTestContext()
	if _, err := ctx.VarToExpression(Var(999)); err == nil {
		t.Fatalf("expected an error for an undeclared value")
	}
}

func TestConstWitnessIsCachedAcrossCalls(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddConstant(field.FromUint64(7))
	b := ctx.AddConstant(field.FromUint64(7))
	wa, err := ctx.VarToWitness(a)
	if err != nil {
		t.Fatal(err)
	}
	wb, err := ctx.VarToWitness(b)
	if err != nil {
		t.Fatal(err)
	}
	if wa != wb {
		t.Fatalf("equal constants should share a materialized witness: got %d and %d", wa, wb)
	}
}

func TestMarkVariablesEquivalentRedirectsLookups(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	if err := ctx.MarkVariablesEquivalent(a, b); err != nil {
		t.Fatal(err)
	}
	ea, _ := ctx.VarToExpression(a)
	eb, _ := ctx.VarToExpression(b)
	if ea.Constant.Cmp(eb.Constant) != 0 || len(ea.LinearTerms) != len(eb.LinearTerms) {
		t.Fatalf("b should now resolve through a's form")
	}
}

func TestMarkVariablesEquivalentPrefersWitnessOverExpression(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	sum, err := ctx.AddVar(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.MarkVariablesEquivalent(sum, a); err != nil {
		t.Fatal(err)
	}
	fSum, err := ctx.form(sum)
	if err != nil {
		t.Fatal(err)
	}
	fA, err := ctx.form(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fSum.(WitForm); !ok {
		t.Fatalf("a general expression merged with a witness should adopt the witness form, got %T", fSum)
	}
	if _, ok := fA.(WitForm); !ok {
		t.Fatalf("the witness side of the merge should remain a witness form, got %T", fA)
	}
}

func TestGetOrCreateWitnessVarIsNoOpForExistingWitness(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	got, err := ctx.GetOrCreateWitnessVar(a)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("GetOrCreateWitnessVar should return the same Var for an already-bare witness")
	}
}
