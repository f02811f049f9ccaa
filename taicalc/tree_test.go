package taicalc

import (
	"errors"
	"reflect"
	"testing"
)

func TestTreeRoundTrip(t *testing.T) {
	sources := []string{
		"1 + 2 * x",
		"-a ^ 2",
		"not (a and b) or c",
		"if x < 1 then f(x, 2) else g()",
		"(a, b) => a * b",
		"() => 0",
		"f(1)(2)(x => x)",
	}
	for _, src := range sources {
		expr, err := ParseExpr(src)
		if err != nil {
			t.Fatalf("src %q: %v", src, err)
		}
		back, err := FromTree(ToTree(expr))
		if err != nil {
			t.Fatalf("src %q: %v", src, err)
		}
		if !reflect.DeepEqual(expr, back) {
			t.Fatalf("src %q: got %v", src, ToTree(back))
		}
	}
}

func TestProgramTreeRoundTrip(t *testing.T) {
	program, err := Parse("def f(x) = x + 1\ny = f(2); y * 2")
	if err != nil {
		t.Fatal(err)
	}
	tree := ProgramToTree(program)
	if tree[0] != TagProgram || len(tree) != 4 {
		t.Fatalf("got %v", tree)
	}
	back, err := ProgramFromTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(program, back) {
		t.Fatalf("got %v", ProgramToTree(back))
	}
}

func TestFromTreeLooseTypes(t *testing.T) {
	expr, err := FromTree([]any{
		"lambda", []string{"x"},
		[]any{"binary", "+", []any{"id", "x"}, []any{"num", 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := &Lambda{
		Params: []string{"x"},
		Body: &Binary{
			Op:    OpAdd,
			Left:  &Ident{Name: "x"},
			Right: &NumberLit{Value: 1},
		},
	}
	if !reflect.DeepEqual(expr, expected) {
		t.Fatalf("got %v", ToTree(expr))
	}

	expr, err = FromTree([]any{"num", int64(3)})
	if err != nil {
		t.Fatal(err)
	}
	if lit, ok := expr.(*NumberLit); !ok || lit.Value != 3 {
		t.Fatalf("got %#v", expr)
	}

	expr, err = FromTree([]any{"call", []any{"id", "f"}})
	if err != nil {
		t.Fatal(err)
	}
	if call, ok := expr.(*Call); !ok || call.Args == nil || len(call.Args) != 0 {
		t.Fatalf("got %#v", expr)
	}
}

func TestFromTreeErrors(t *testing.T) {
	trees := []any{
		nil,
		"num",
		[]any{},
		[]any{1, 2},
		[]any{"nope", 1},
		[]any{"num"},
		[]any{"num", "1"},
		[]any{"num", 1, 2},
		[]any{"id", 1},
		[]any{"unary", "+", []any{"num", 1}},
		[]any{"binary", "=", []any{"num", 1}, []any{"num", 2}},
		[]any{"binary", "+", []any{"num", 1}},
		[]any{"if", []any{"num", 1}, []any{"num", 2}},
		[]any{"call"},
		[]any{"lambda", "x", []any{"id", "x"}},
		[]any{"lambda", []any{1}, []any{"id", "x"}},
		[]any{"assign", "x"},
		[]any{"binary", "+", []any{"num", 1}, []any{"bad"}},
	}
	for _, tree := range trees {
		_, err := FromTree(tree)
		if err == nil {
			t.Fatalf("tree %v: should fail", tree)
		}
		if !errors.Is(err, ErrBadTree) {
			t.Fatalf("tree %v: got %v", tree, err)
		}
	}

	if _, err := ProgramFromTree([]any{"num", 1}); !errors.Is(err, ErrBadTree) {
		t.Fatalf("got %v", err)
	}
}
