package circuit

import "testing"

func TestInitializeArrayThenReadWrite(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 1)
	b := constVar(t, ctx, 2)
	block, err := ctx.InitializeArray([]Var{a, b}, 0)
	if err != nil {
		t.Fatal(err)
	}
	idx := constVar(t, ctx, 0)
	if _, err := ctx.ReadFromMemory(block, idx); err != nil {
		t.Fatal(err)
	}
	newVal := constVar(t, ctx, 9)
	if err := ctx.WriteToMemory(block, idx, newVal); err != nil {
		t.Fatal(err)
	}
}

func TestFlattenNestedArray(t *testing.T) {
	ctx := newTestContext()
	a := ctx.AddVariable()
	b := ctx.AddVariable()
	c := ctx.AddVariable()
	d := ctx.AddVariable()
	flat := FlattenNestedArray([][]Var{{a, b}, {c, d}})
	if len(flat) != 4 {
		t.Fatalf("expected 4 flattened values, got %d", len(flat))
	}
}

func TestInitializeReturnDataUsesReturnDataTag(t *testing.T) {
	ctx := newTestContext()
	a := constVar(t, ctx, 1)
	if _, err := ctx.InitializeReturnData([]Var{a}); err != nil {
		t.Fatal(err)
	}
}
