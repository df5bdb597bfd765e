// Package script defines a small instruction-list language for driving
// the circuit package from a file or a REPL: one operation per line,
// results bound on the left of "=", operands on the right. It is
// deliberately not an SSA front end: no types, no control flow, no
// functions, just a flat sequence of calls into Context.
package script

// Program is a sequence of statements, one circuit operation each.
type Program struct {
	Stmts []*Stmt `{ @@ }`
}

// Stmt binds zero or more names to the result(s) of calling Op with Args.
// A statement with no target names (e.g. an assertion) is written without
// the leading "name(s) =".
type Stmt struct {
	Targets []string   `( @Ident ( "," @Ident )* "=" )?`
	Op      string     `@Ident`
	Args    []*Operand `{ @@ }`
}

// Operand is either an integer literal or a reference to an
// earlier-bound name.
type Operand struct {
	Int  *int64  `( @Int`
	Name *string `| @Ident )`
}
