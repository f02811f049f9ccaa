package taicalc

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPos(t *testing.T) {
	_, err := Parse("a = 1\nb = $")
	pos, ok := ErrorPos(err)
	if !ok {
		t.Fatalf("got %v", err)
	}
	if pos.Line != 2 || pos.Column != 5 {
		t.Fatalf("got %v", pos)
	}

	_, err = Parse("(1 +\n  )")
	pos, ok = ErrorPos(fmt.Errorf("wrapped: %w", err))
	if !ok {
		t.Fatalf("got %v", err)
	}
	if pos.Line != 2 || pos.Column != 3 {
		t.Fatalf("got %v", pos)
	}

	_, err = Evaluate("x", nil)
	if _, ok := ErrorPos(err); ok {
		t.Fatal("eval errors carry no position")
	}
}

func TestSnippet(t *testing.T) {
	src := "a = 1\nb = $"
	got := Snippet(src, Pos{Line: 2, Column: 5})
	if got != "b = $\n    ^\n" {
		t.Fatalf("got %q", got)
	}

	got = Snippet("\tx $", Pos{Line: 1, Column: 4})
	if got != "\tx $\n\t  ^\n" {
		t.Fatalf("got %q", got)
	}

	got = Snippet("数 $", Pos{Line: 1, Column: 3})
	if got != "数 $\n   ^\n" {
		t.Fatalf("got %q", got)
	}

	if got := Snippet(src, Pos{Line: 3, Column: 1}); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestErrorCategories(t *testing.T) {
	errs := []struct {
		err      error
		category error
	}{
		{&LexError{}, ErrLex},
		{&ParseError{}, ErrParse},
		{&UndefinedVariableError{}, ErrEval},
		{&UndefinedFunctionError{}, ErrEval},
		{&ArityMismatchError{}, ErrEval},
		{&NotCallableError{}, ErrEval},
		{&TypeError{}, ErrEval},
		{&DepthExceededError{}, ErrEval},
	}
	for _, e := range errs {
		if !errors.Is(e.err, e.category) {
			t.Fatalf("%T: got %v", e.err, errors.Unwrap(e.err))
		}
	}
	if errors.Is(&LexError{}, ErrParse) {
		t.Fatal("categories should be distinct")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err     error
		message string
	}{
		{&LexError{Char: '$', Pos: Pos{Line: 1, Column: 3}}, `unexpected character '$' at 1:3`},
		{&UndefinedVariableError{Name: "x"}, "undefined variable: x"},
		{&UndefinedFunctionError{Name: "f"}, "undefined function: f"},
		{&NotCallableError{Value: "number 3"}, "not callable: number 3"},
		{&TypeError{Op: "+", Value: "<builtin sin>"}, "+: expected number, got <builtin sin>"},
		{&DepthExceededError{Max: 8}, "call depth exceeds 8"},
		{
			&ParseError{
				Expected: "')'",
				Found:    Token{Kind: TokenNumber, Text: "2", Pos: Pos{Line: 1, Column: 4}},
			},
			`expected ')', found number "2" at 1:4`,
		},
	}
	for _, test := range tests {
		if msg := test.err.Error(); msg != test.message {
			t.Fatalf("got %q, want %q", msg, test.message)
		}
	}
}
