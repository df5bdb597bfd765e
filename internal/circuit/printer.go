package circuit

import (
	"fmt"
	"strings"

	"circuitforge/internal/acir"
)

// Printer renders a Context's emitted opcodes as a flat, human-readable
// listing, used by the CLI and REPL to show what a script lowered to.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) writeIndent() {
	p.output.WriteString(strings.Repeat("  ", p.indent))
}

func (p *Printer) writeLine(format string, args ...any) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteByte('\n')
}

// Print renders every opcode in container plus a summary of warnings
// recorded while lowering.
func (p *Printer) Print(container acir.Container, warnings []Warning) string {
	opcodes := container.Opcodes()
	p.writeLine("circuit: %d opcode(s), next witness w%d", len(opcodes), container.CurrentWitnessIndex())
	p.indent++
	for i, op := range opcodes {
		p.writeLine("[%d] %s", i, describeOpcode(op))
	}
	p.indent--
	if len(warnings) > 0 {
		p.writeLine("warnings:")
		p.indent++
		for _, w := range warnings {
			p.writeLine("- %s", w.Message)
		}
		p.indent--
	}
	return p.output.String()
}

func describeOpcode(op acir.Opcode) string {
	switch o := op.(type) {
	case acir.AssertZero:
		return fmt.Sprintf("assert_zero(%s)", describeExpr(o.Expr))
	case acir.MemoryInit:
		return fmt.Sprintf("memory_init(block=%d, len=%d, tag=%d)", o.Block, len(o.Init), o.Tag)
	case acir.MemoryOp:
		return fmt.Sprintf("memory_op(block=%d, op=%d, index=%s)", o.Block, o.Op, describeExpr(o.Index))
	case acir.BrilligCall:
		return fmt.Sprintf("brillig_call(fn=%d, outputs=%v)", o.Func, o.Outputs)
	case acir.BlackBoxCall:
		return fmt.Sprintf("black_box_call(fn=%d, bits=%d, outputs=%v)", o.Func, o.BitSize, o.Outputs)
	default:
		return "opcode(?)"
	}
}

func describeExpr(e acir.Expr) string {
	var sb strings.Builder
	for _, t := range e.MulTerms {
		fmt.Fprintf(&sb, "%s*w%d*w%d + ", t.Coeff, t.LHS, t.RHS)
	}
	for _, t := range e.LinearTerms {
		fmt.Fprintf(&sb, "%s*w%d + ", t.Coeff, t.W)
	}
	fmt.Fprintf(&sb, "%s", e.Constant)
	return sb.String()
}
