package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestStartEchoesConstantBindings(t *testing.T) {
	in := strings.NewReader("a = const 5\nexit\n")
	var out bytes.Buffer
	Start(in, &out)
	if !strings.Contains(out.String(), "a = 5") {
		t.Fatalf("expected output to report a = 5, got: %s", out.String())
	}
}

func TestStartReportsParseErrors(t *testing.T) {
	in := strings.NewReader("===\nexit\n")
	var out bytes.Buffer
	Start(in, &out)
	if !strings.Contains(out.String(), "parse error") {
		t.Fatalf("expected a parse error to be reported, got: %s", out.String())
	}
}

func TestStartStopsAtEOF(t *testing.T) {
	in := strings.NewReader("a = const 1\n")
	var out bytes.Buffer
	Start(in, &out)
	if !strings.Contains(out.String(), "a = 1") {
		t.Fatalf("expected output before EOF, got: %s", out.String())
	}
}
