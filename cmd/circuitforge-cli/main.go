// Command circuitforge-cli lowers a script file into an opcode listing and
// prints it to standard output.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"circuitforge/internal/circuit"
	"circuitforge/internal/script"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: circuitforge-cli <script-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	prog, err := script.ParseFile(path)
	if err != nil {
		reportError(path, err)
		os.Exit(1)
	}

	ctx := circuit.NewDefaultContext(circuit.Bounded(4))
	if _, err := script.Eval(prog, ctx); err != nil {
		reportError(path, err)
		os.Exit(1)
	}

	color.Green("✅ lowered %s successfully", path)
	container, warnings := ctx.Finish()
	fmt.Print(circuit.NewPrinter().Print(container, warnings))
}

func reportError(path string, err error) {
	color.Red("❌ failed to process %s", path)
	color.HiRed("  %v", err)
}
