package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(ScriptLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("script: failed to build parser: %w", err))
	}
	return p
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source one line at a time, since the grammar itself
// does not treat a line break as the end of a statement. Each line is
// prefixed with the newlines before it so reported positions keep their
// source line.
func ParseSource(sourceName, source string) (*Program, error) {
	prog := &Program{}
	for i, line := range strings.Split(source, "\n") {
		p, err := parser.ParseString(sourceName, strings.Repeat("\n", i)+line)
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, p.Stmts...)
	}
	return prog, nil
}
