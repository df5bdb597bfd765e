package script

import "github.com/alecthomas/participle/v2/lexer"

// ScriptLexer tokenizes the flat instruction-list language the circuit
// package's command-line and REPL front ends accept: one operation per
// line, operands separated by whitespace, results bound with "=".
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[,=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
