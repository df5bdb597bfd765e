package acir

import (
	"fmt"

	"circuitforge/internal/field"
)

// Container is the opcode sink the value table lowers into. It owns
// witness allocation, the emitted opcode stream, memory blocks, and the
// side tables (assertion payloads, error types) consulted when a
// constraint fails at proving time.
type Container interface {
	NextWitnessIndex() Witness
	CurrentWitnessIndex() Witness
	PushOpcode(op Opcode) error
	GetOrCreateWitness(e Expr) Witness
	IsEqual(lhs, rhs Expr) Witness
	RangeConstraint(w Witness, bitSize uint32) error
	RadixLEDecompose(e Expr, radix uint32, limbs uint32, bits uint32) ([]Witness, error)
	LastOpcodeLocation() Location
	AddAssertionPayload(sel ErrorSelector, payload AssertionPayload)
	AddErrorType(sel ErrorSelector, et ErrorType)
	AssertionPayloads() map[ErrorSelector]AssertionPayload
	ErrorTypes() map[ErrorSelector]ErrorType
	Opcodes() []Opcode
	BlockLen(id BlockId) (uint32, bool)
	IsMemoryInitialized(id BlockId, index uint32) bool
}

// GeneratedContainer is the concrete, in-process Container used by both
// the circuit package and its tests; it performs no cryptographic work of
// its own, only bookkeeping.
type GeneratedContainer struct {
	witnessCounter Witness
	opcodes        []Opcode
	blocks         map[BlockId]*MemoryBlock
	payloads       map[ErrorSelector]AssertionPayload
	errorTypes     map[ErrorSelector]ErrorType
}

func NewGeneratedContainer() *GeneratedContainer {
	return &GeneratedContainer{
		blocks:     map[BlockId]*MemoryBlock{},
		payloads:   map[ErrorSelector]AssertionPayload{},
		errorTypes: map[ErrorSelector]ErrorType{},
	}
}

func (c *GeneratedContainer) NextWitnessIndex() Witness {
	c.witnessCounter++
	return c.witnessCounter
}

func (c *GeneratedContainer) CurrentWitnessIndex() Witness {
	return c.witnessCounter
}

func (c *GeneratedContainer) PushOpcode(op Opcode) error {
	switch o := op.(type) {
	case MemoryInit:
		c.blocks[o.Block] = newMemoryBlock(o.Tag, uint32(len(o.Init)))
		for i := range o.Init {
			c.blocks[o.Block].markInitialized(uint32(i))
		}
	case MemoryOp:
		block, ok := c.blocks[o.Block]
		if !ok {
			return fmt.Errorf("acir: memory op on undeclared block %d", o.Block)
		}
		if idx, isConst := constIndex(o.Index); isConst {
			if idx >= block.Len {
				return fmt.Errorf("acir: memory index %d out of bounds for block %d of length %d", idx, o.Block, block.Len)
			}
			if o.Op == MemOpRead && !block.isInitialized(idx) {
				return fmt.Errorf("acir: read of uninitialized cell %d in block %d", idx, o.Block)
			}
			if o.Op == MemOpWrite {
				block.markInitialized(idx)
			}
		}
	}
	c.opcodes = append(c.opcodes, op)
	return nil
}

func constIndex(e Expr) (uint32, bool) {
	if !e.IsConstant() {
		return 0, false
	}
	bi := e.Constant.BigInt()
	if !bi.IsUint64() {
		return 0, false
	}
	return uint32(bi.Uint64()), true
}

// GetOrCreateWitness materializes e as a witness. When e already denotes a
// bare witness it is returned unchanged; otherwise a fresh witness is
// allocated and bound to e with an AssertZero opcode.
func (c *GeneratedContainer) GetOrCreateWitness(e Expr) Witness {
	if w, ok := e.ToWitness(); ok {
		return w
	}
	w := c.NextWitnessIndex()
	binding := e.Sub(ExprFromWitness(w))
	_ = c.PushOpcode(AssertZero{Expr: binding})
	return w
}

// IsEqual returns a witness holding 1 when lhs == rhs and 0 otherwise,
// using the standard difference/inverse gadget: for diff = lhs - rhs,
// allocate inv and isZero such that diff*inv == 1-isZero and
// isZero*diff == 0. A diff of zero forces isZero to 1 because the first
// identity degenerates to 0 == 1-isZero; any nonzero diff forces isZero to
// 0 because inv can then be its true inverse.
func (c *GeneratedContainer) IsEqual(lhs, rhs Expr) Witness {
	diff := lhs.Sub(rhs)
	diffW := c.GetOrCreateWitness(diff)
	inv := c.NextWitnessIndex()
	isZero := c.NextWitnessIndex()

	// diff*inv + isZero - 1 == 0   (i.e. diff*inv == 1 - isZero)
	eq1 := Expr{
		MulTerms:    []MulTerm{{Coeff: field.One(), LHS: diffW, RHS: inv}},
		LinearTerms: []LinearTerm{{Coeff: field.One(), W: isZero}},
		Constant:    field.One().Neg(),
	}
	_ = c.PushOpcode(AssertZero{Expr: eq1})

	// diff*isZero == 0
	eq2 := Expr{MulTerms: []MulTerm{{Coeff: field.One(), LHS: diffW, RHS: isZero}}}
	_ = c.PushOpcode(AssertZero{Expr: eq2})

	return isZero
}

func (c *GeneratedContainer) RangeConstraint(w Witness, bitSize uint32) error {
	if bitSize == 0 {
		return fmt.Errorf("acir: range constraint of zero bits")
	}
	return c.PushOpcode(BlackBoxCall{
		Func:    BlackBoxRange,
		Inputs:  []Expr{ExprFromWitness(w)},
		BitSize: bitSize,
	})
}

// RadixLEDecompose decomposes e into limbs little-endian digits base
// radix, each range-constrained to bits, and emits the reconstruction
// identity e - sum(limb_i * radix^i) == 0.
func (c *GeneratedContainer) RadixLEDecompose(e Expr, radix uint32, limbs uint32, bits uint32) ([]Witness, error) {
	if radix < 2 {
		return nil, fmt.Errorf("acir: radix must be at least 2, got %d", radix)
	}
	out := make([]Witness, limbs)
	recon := ExprFromConst(field.Zero())
	base := field.One()
	radixElem := field.FromUint64(uint64(radix))
	for i := uint32(0); i < limbs; i++ {
		w := c.NextWitnessIndex()
		out[i] = w
		if err := c.RangeConstraint(w, bits); err != nil {
			return nil, err
		}
		recon = recon.AddScaled(base, ExprFromWitness(w))
		base = base.Mul(radixElem)
	}
	identity := e.Sub(recon)
	if err := c.PushOpcode(AssertZero{Expr: identity}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GeneratedContainer) LastOpcodeLocation() Location {
	if len(c.opcodes) == 0 {
		return 0
	}
	return Location(len(c.opcodes) - 1)
}

func (c *GeneratedContainer) AddAssertionPayload(sel ErrorSelector, payload AssertionPayload) {
	c.payloads[sel] = payload
}

func (c *GeneratedContainer) AddErrorType(sel ErrorSelector, et ErrorType) {
	c.errorTypes[sel] = et
}

func (c *GeneratedContainer) AssertionPayloads() map[ErrorSelector]AssertionPayload {
	return c.payloads
}

func (c *GeneratedContainer) ErrorTypes() map[ErrorSelector]ErrorType {
	return c.errorTypes
}

func (c *GeneratedContainer) Opcodes() []Opcode {
	return c.opcodes
}

func (c *GeneratedContainer) BlockLen(id BlockId) (uint32, bool) {
	b, ok := c.blocks[id]
	if !ok {
		return 0, false
	}
	return b.Len, true
}

func (c *GeneratedContainer) IsMemoryInitialized(id BlockId, index uint32) bool {
	b, ok := c.blocks[id]
	if !ok {
		return false
	}
	return b.isInitialized(index)
}
