package script

import (
	"fmt"

	"circuitforge/internal/acir"
	"circuitforge/internal/circuit"
	"circuitforge/internal/field"
)

// state holds the bindings accumulated while evaluating a Program: most
// names resolve to a circuit.Var, but names bound by "array" resolve to a
// memory block id instead, since the two are not interchangeable.
type state struct {
	ctx    *circuit.Context
	vars   map[string]circuit.Var
	blocks map[string]acir.BlockId
}

// Eval runs prog against ctx, returning the final variable bindings so a
// caller (the CLI, the REPL) can inspect named results.
func Eval(prog *Program, ctx *circuit.Context) (map[string]circuit.Var, error) {
	st := &state{ctx: ctx, vars: map[string]circuit.Var{}, blocks: map[string]acir.BlockId{}}
	for i, stmt := range prog.Stmts {
		if err := st.exec(stmt); err != nil {
			return nil, fmt.Errorf("script: line %d (%s): %w", i+1, stmt.Op, err)
		}
	}
	return st.vars, nil
}

func (s *state) resolveVar(op *Operand) (circuit.Var, error) {
	if op.Int != nil {
		return s.ctx.AddConstant(field.FromInt64(*op.Int)), nil
	}
	name := *op.Name
	if name == "one" {
		return s.ctx.OneVar(), nil
	}
	if v, ok := s.vars[name]; ok {
		return v, nil
	}
	if _, ok := s.blocks[name]; ok {
		return 0, fmt.Errorf("%q names a memory block, not a value", name)
	}
	return 0, fmt.Errorf("undefined name %q", name)
}

func (s *state) resolveBits(op *Operand) (uint32, error) {
	if op.Int == nil {
		return 0, fmt.Errorf("expected an integer bit size")
	}
	return uint32(*op.Int), nil
}

func (s *state) resolveBlock(op *Operand) (acir.BlockId, error) {
	if op.Name == nil {
		return 0, fmt.Errorf("expected a memory block name")
	}
	b, ok := s.blocks[*op.Name]
	if !ok {
		return 0, fmt.Errorf("undefined memory block %q", *op.Name)
	}
	return b, nil
}

func (s *state) bindVars(targets []string, vs ...circuit.Var) error {
	if len(targets) != len(vs) {
		return fmt.Errorf("expected %d target name(s), got %d", len(vs), len(targets))
	}
	for i, name := range targets {
		s.vars[name] = vs[i]
	}
	return nil
}

func (s *state) exec(stmt *Stmt) error {
	args := stmt.Args
	one := s.ctx.OneVar()

	switch stmt.Op {
	case "const":
		if len(args) != 1 || args[0].Int == nil {
			return fmt.Errorf("const takes one integer literal")
		}
		return s.bindVars(stmt.Targets, s.ctx.AddConstant(field.FromInt64(*args[0].Int)))

	case "var":
		return s.bindVars(stmt.Targets, s.ctx.AddVariable())

	case "add", "sub", "mul", "eq":
		if len(args) != 2 {
			return fmt.Errorf("%s takes two operands", stmt.Op)
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		var r circuit.Var
		switch stmt.Op {
		case "add":
			r, err = s.ctx.AddVar(a, b)
		case "sub":
			r, err = s.ctx.SubVar(a, b)
		case "mul":
			r, err = s.ctx.MulVar(a, b)
		case "eq":
			r, err = s.ctx.EqVar(a, b)
		}
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "neg":
		if len(args) != 1 {
			return fmt.Errorf("neg takes one operand")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		r, err := s.ctx.NegVar(a)
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "inv":
		if len(args) < 1 {
			return fmt.Errorf("inv takes one operand and an optional predicate")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		pred := one
		if len(args) > 1 {
			if pred, err = s.resolveVar(args[1]); err != nil {
				return err
			}
		}
		r, err := s.ctx.InvVar(a, pred)
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "assert_eq":
		if len(args) != 2 {
			return fmt.Errorf("assert_eq takes two operands")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		return s.ctx.AssertEqVar(a, b, nil)

	case "assert_neq":
		if len(args) < 2 {
			return fmt.Errorf("assert_neq takes two operands and an optional predicate")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		pred := one
		if len(args) > 2 {
			if pred, err = s.resolveVar(args[2]); err != nil {
				return err
			}
		}
		return s.ctx.AssertNeqVar(a, b, pred, nil)

	case "and", "or", "xor":
		if len(args) != 3 {
			return fmt.Errorf("%s takes two operands and a bit size", stmt.Op)
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[2])
		if err != nil {
			return err
		}
		var r circuit.Var
		switch stmt.Op {
		case "and":
			r, err = s.ctx.AndVar(a, b, bits)
		case "or":
			r, err = s.ctx.OrVar(a, b, bits)
		case "xor":
			r, err = s.ctx.XorVar(a, b, bits)
		}
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "not":
		if len(args) != 2 {
			return fmt.Errorf("not takes one operand and a bit size")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[1])
		if err != nil {
			return err
		}
		r, err := s.ctx.NotVar(a, bits)
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "div", "sdiv":
		if len(args) < 3 {
			return fmt.Errorf("%s takes two operands, a bit size, and an optional predicate", stmt.Op)
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[2])
		if err != nil {
			return err
		}
		pred := one
		if len(args) > 3 {
			if pred, err = s.resolveVar(args[3]); err != nil {
				return err
			}
		}
		var q, r circuit.Var
		if stmt.Op == "div" {
			q, r, err = s.ctx.EuclideanDivisionVar(a, b, bits, pred)
		} else {
			q, r, err = s.ctx.SignedDivisionVar(a, b, bits, pred)
		}
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, q, r)

	case "trunc":
		if len(args) != 3 {
			return fmt.Errorf("trunc takes a value, a target bit width, and a max bit width")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		k, err := s.resolveBits(args[1])
		if err != nil {
			return err
		}
		maxBit, err := s.resolveBits(args[2])
		if err != nil {
			return err
		}
		r, err := s.ctx.TruncateVar(a, k, maxBit)
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "range":
		if len(args) != 2 {
			return fmt.Errorf("range takes a value and a bit size")
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[1])
		if err != nil {
			return err
		}
		return s.ctx.RangeConstrainVar(a, bits)

	case "bound":
		if len(args) != 4 {
			return fmt.Errorf("bound takes lhs, rhs, offset, and a bit size")
		}
		lhs, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		rhs, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		offset, err := s.resolveVar(args[2])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[3])
		if err != nil {
			return err
		}
		return s.ctx.BoundConstraintWithOffset(lhs, rhs, offset, bits)

	case "lt", "gte", "lts":
		if len(args) != 3 {
			return fmt.Errorf("%s takes two operands and a bit size", stmt.Op)
		}
		a, err := s.resolveVar(args[0])
		if err != nil {
			return err
		}
		b, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		bits, err := s.resolveBits(args[2])
		if err != nil {
			return err
		}
		var r circuit.Var
		switch stmt.Op {
		case "lt":
			r, err = s.ctx.LessThanVar(a, b, bits)
		case "gte":
			r, err = s.ctx.MoreThanEqVar(a, b, bits)
		case "lts":
			r, err = s.ctx.LessThanSigned(a, b, bits)
		}
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "array":
		if len(stmt.Targets) != 1 {
			return fmt.Errorf("array binds exactly one block name")
		}
		vals := make([]circuit.Var, len(args))
		for i, a := range args {
			v, err := s.resolveVar(a)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		id, err := s.ctx.InitializeArray(vals, acir.BlockTypeMemory)
		if err != nil {
			return err
		}
		s.blocks[stmt.Targets[0]] = id
		return nil

	case "read":
		if len(args) != 2 {
			return fmt.Errorf("read takes a block name and an index")
		}
		block, err := s.resolveBlock(args[0])
		if err != nil {
			return err
		}
		idx, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		r, err := s.ctx.ReadFromMemory(block, idx)
		if err != nil {
			return err
		}
		return s.bindVars(stmt.Targets, r)

	case "write":
		if len(args) != 3 {
			return fmt.Errorf("write takes a block name, an index, and a value")
		}
		block, err := s.resolveBlock(args[0])
		if err != nil {
			return err
		}
		idx, err := s.resolveVar(args[1])
		if err != nil {
			return err
		}
		val, err := s.resolveVar(args[2])
		if err != nil {
			return err
		}
		return s.ctx.WriteToMemory(block, idx, val)

	default:
		return fmt.Errorf("unknown operation %q", stmt.Op)
	}
}
