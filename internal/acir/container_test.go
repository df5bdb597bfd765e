package acir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitforge/internal/field"
)

func TestGetOrCreateWitnessIsIdempotentForBareWitness(t *testing.T) {
	c := NewGeneratedContainer()
	w := c.NextWitnessIndex()
	got := c.GetOrCreateWitness(ExprFromWitness(w))
	assert.Equal(t, w, got)
	assert.Empty(t, c.Opcodes(), "materializing a bare witness should not emit a binding opcode")
}

func TestGetOrCreateWitnessBindsNonTrivialExpr(t *testing.T) {
	c := NewGeneratedContainer()
	a := c.NextWitnessIndex()
	e := ExprFromWitness(a).Add(ExprFromConst(field.FromUint64(3)))
	w := c.GetOrCreateWitness(e)
	require.NotEqual(t, a, w)
	require.Len(t, c.Opcodes(), 1)
	_, ok := c.Opcodes()[0].(AssertZero)
	assert.True(t, ok)
}

func TestIsEqualWitnessesDistinctExpressions(t *testing.T) {
	c := NewGeneratedContainer()
	a := c.NextWitnessIndex()
	b := c.NextWitnessIndex()
	isZero := c.IsEqual(ExprFromWitness(a), ExprFromWitness(b))
	assert.NotEqual(t, a, isZero)
	assert.NotEqual(t, b, isZero)
	assert.NotEmpty(t, c.Opcodes())
}

func TestMemoryInitThenReadSameCellOk(t *testing.T) {
	c := NewGeneratedContainer()
	w0 := c.NextWitnessIndex()
	require.NoError(t, c.PushOpcode(MemoryInit{Block: 1, Init: []Witness{w0}, Tag: BlockTypeMemory}))
	require.NoError(t, c.PushOpcode(MemoryOp{
		Block: 1,
		Op:    MemOpRead,
		Index: ExprFromConst(field.Zero()),
		Value: ExprFromWitness(w0),
	}))
}

func TestMemoryReadOutOfBoundsErrors(t *testing.T) {
	c := NewGeneratedContainer()
	w0 := c.NextWitnessIndex()
	require.NoError(t, c.PushOpcode(MemoryInit{Block: 1, Init: []Witness{w0}, Tag: BlockTypeMemory}))
	err := c.PushOpcode(MemoryOp{
		Block: 1,
		Op:    MemOpRead,
		Index: ExprFromConst(field.FromUint64(5)),
		Value: ExprFromWitness(w0),
	})
	assert.Error(t, err)
}

func TestMemoryReadUndeclaredBlockErrors(t *testing.T) {
	c := NewGeneratedContainer()
	err := c.PushOpcode(MemoryOp{
		Block: 99,
		Op:    MemOpRead,
		Index: ExprFromConst(field.Zero()),
	})
	assert.Error(t, err)
}

func TestRadixLEDecomposeReconstructs(t *testing.T) {
	c := NewGeneratedContainer()
	a := c.NextWitnessIndex()
	limbs, err := c.RadixLEDecompose(ExprFromWitness(a), 2, 8, 1)
	require.NoError(t, err)
	assert.Len(t, limbs, 8)
	// 8 range constraints + 1 reconstruction identity
	assert.Len(t, c.Opcodes(), 9)
}

func TestRadixLEDecomposeRejectsRadixBelowTwo(t *testing.T) {
	c := NewGeneratedContainer()
	a := c.NextWitnessIndex()
	_, err := c.RadixLEDecompose(ExprFromWitness(a), 1, 8, 1)
	assert.Error(t, err)
}

func TestLastOpcodeLocationTracksLength(t *testing.T) {
	c := NewGeneratedContainer()
	assert.Equal(t, Location(0), c.LastOpcodeLocation())
	w := c.NextWitnessIndex()
	require.NoError(t, c.PushOpcode(AssertZero{Expr: ExprFromWitness(w)}))
	assert.Equal(t, Location(0), c.LastOpcodeLocation())
	require.NoError(t, c.PushOpcode(AssertZero{Expr: ExprFromWitness(w)}))
	assert.Equal(t, Location(1), c.LastOpcodeLocation())
}
