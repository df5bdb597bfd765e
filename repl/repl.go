// Package repl provides an interactive read-eval-print loop over the
// script language, evaluating statements against one persistent circuit
// as the session progresses.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"circuitforge/internal/circuit"
	"circuitforge/internal/script"
)

const prompt = ">> "

// Start runs the loop, reading lines from in and writing prompts and
// results to out, until in is exhausted or a line reads "exit" or "quit".
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	ctx := circuit.NewDefaultContext(circuit.Bounded(4))

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			return
		}
		if line == "" {
			continue
		}

		prog, err := script.ParseSource("repl", line)
		if err != nil {
			fmt.Fprintln(out, color.RedString("parse error: %v", err))
			continue
		}
		vars, err := script.Eval(prog, ctx)
		if err != nil {
			fmt.Fprintln(out, color.RedString("eval error: %v", err))
			continue
		}
		for name, v := range vars {
			e, err := ctx.VarToExpression(v)
			if err != nil {
				continue
			}
			if e.IsConstant() {
				fmt.Fprintln(out, color.GreenString("%s = %s", name, e.Constant))
			} else {
				fmt.Fprintln(out, color.GreenString("%s = <expr>", name))
			}
		}
	}
}
