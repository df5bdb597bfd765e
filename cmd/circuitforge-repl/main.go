// Command circuitforge-repl starts an interactive session over the script
// language.
package main

import (
	"os"

	"circuitforge/repl"
)

func main() {
	repl.Start(os.Stdin, os.Stdout)
}
