package circuit

import "circuitforge/internal/acir"

// InitializeArray declares a new memory block populated with values,
// returning the block's id. Each element is materialized to a witness
// since a memory block's initial contents must be concrete witnesses, not
// general expressions.
func (c *Context) InitializeArray(values []Var, tag acir.BlockType) (acir.BlockId, error) {
	init := make([]acir.Witness, len(values))
	for i, v := range values {
		w, err := c.VarToWitness(v)
		if err != nil {
			return 0, err
		}
		init[i] = w
	}
	id := acir.BlockId(c.nextBlock)
	c.nextBlock++
	if err := c.container.PushOpcode(acir.MemoryInit{Block: id, Init: init, Tag: tag}); err != nil {
		return 0, err
	}
	return id, nil
}

// InitializeReturnData is InitializeArray specialized to the block type
// that marks the program's external return values.
func (c *Context) InitializeReturnData(values []Var) (acir.BlockId, error) {
	return c.InitializeArray(values, acir.BlockTypeReturnData)
}

// FlattenNestedArray flattens a Var, a []Var, or a [][]Var into a single
// flat slice in row-major order, the shape InitializeArray needs for a
// multi-dimensional source array. Any other type, including slices nested
// more than two levels deep, yields nil.
func FlattenNestedArray(nested any) []Var {
	switch v := nested.(type) {
	case Var:
		return []Var{v}
	case []Var:
		return v
	case [][]Var:
		var out []Var
		for _, inner := range v {
			out = append(out, inner...)
		}
		return out
	default:
		return nil
	}
}

// ReadFromMemory reads the cell at index from block, returning a Var
// bound to a fresh witness the underlying solver fills in.
func (c *Context) ReadFromMemory(block acir.BlockId, index Var) (Var, error) {
	idxExpr, err := c.VarToExpression(index)
	if err != nil {
		return 0, err
	}
	w := c.container.NextWitnessIndex()
	if err := c.container.PushOpcode(acir.MemoryOp{
		Block: block,
		Op:    acir.MemOpRead,
		Index: idxExpr,
		Value: acir.ExprFromWitness(w),
	}); err != nil {
		return 0, err
	}
	return c.createValue(WitForm{W: w}), nil
}

// WriteToMemory overwrites the cell at index in block with value.
func (c *Context) WriteToMemory(block acir.BlockId, index, value Var) error {
	idxExpr, err := c.VarToExpression(index)
	if err != nil {
		return err
	}
	valExpr, err := c.VarToExpression(value)
	if err != nil {
		return err
	}
	return c.container.PushOpcode(acir.MemoryOp{
		Block: block,
		Op:    acir.MemOpWrite,
		Index: idxExpr,
		Value: valExpr,
	})
}
