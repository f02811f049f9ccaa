package debugs

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/taicalc/taicalc"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func execStarlark(t *testing.T, calc *taicalc.Context, src string) (starlark.StringDict, error) {
	t.Helper()
	thread := &starlark.Thread{
		Name: t.Name(),
	}
	return starlark.ExecFileOptions(&syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}, thread, "test.star", src, Globals(calc))
}

func asFloat(t *testing.T, v starlark.Value) float64 {
	t.Helper()
	f, ok := starlark.AsFloat(v)
	if !ok {
		t.Fatalf("got %v", v)
	}
	return f
}

func TestGlobals(t *testing.T) {
	calc := taicalc.NewContext(nil)
	if _, err := calc.Exec("def sq(x) = x * x; r = 3; adder = n => x => x + n"); err != nil {
		t.Fatal(err)
	}

	globals, err := execStarlark(t, calc, `
a = sq(4)
b = r + 1
c = eval("r * 2")
d = sqrt(16)
e = adder(80)(1)
t = ast("1 + x")
p = ast("x = 1; x")
n = len(builtins)
set("z", 5.0)
`)
	if err != nil {
		t.Fatal(err)
	}

	if v := asFloat(t, globals["a"]); v != 16 {
		t.Fatalf("got %v", v)
	}
	if v := asFloat(t, globals["b"]); v != 4 {
		t.Fatalf("got %v", v)
	}
	if v := asFloat(t, globals["c"]); v != 6 {
		t.Fatalf("got %v", v)
	}
	if v := asFloat(t, globals["d"]); v != 4 {
		t.Fatalf("got %v", v)
	}
	if v := asFloat(t, globals["e"]); v != 81 {
		t.Fatalf("got %v", v)
	}
	if s := globals["t"].String(); s != `["binary", "+", ["num", 1.0], ["id", "x"]]` {
		t.Fatalf("got %s", s)
	}
	if s := globals["p"].String(); !strings.HasPrefix(s, `["program", ["assign", "x"`) {
		t.Fatalf("got %s", s)
	}
	if n, err := starlark.AsInt32(globals["n"]); err != nil || n != len(taicalc.BuiltinNames()) {
		t.Fatalf("got %v", globals["n"])
	}

	z, ok := calc.Get("z")
	if !ok || z != 5 {
		t.Fatalf("got %v %v", z, ok)
	}
}

func TestGlobalsErrors(t *testing.T) {
	calc := taicalc.NewContext(nil)
	if _, err := calc.Exec("def f(a, b) = a + b"); err != nil {
		t.Fatal(err)
	}

	_, err := execStarlark(t, calc, `f(1)`)
	var arity *taicalc.ArityMismatchError
	if !errors.As(err, &arity) {
		t.Fatalf("got %v", err)
	}

	_, err = execStarlark(t, calc, `f("a", 1)`)
	if err == nil || !strings.Contains(err.Error(), "expected number, got string") {
		t.Fatalf("got %v", err)
	}

	_, err = execStarlark(t, calc, `f(a = 1, b = 2)`)
	if err == nil || !strings.Contains(err.Error(), "keyword") {
		t.Fatalf("got %v", err)
	}

	_, err = execStarlark(t, calc, `ast("1 +")`)
	if !errors.Is(err, taicalc.ErrParse) {
		t.Fatalf("got %v", err)
	}
}

func TestToStarlarkValue(t *testing.T) {
	calc := taicalc.NewContext(nil)
	tests := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"number", taicalc.Number(2.5), starlark.Float(2.5)},
		{"bool", true, starlark.True},
		{"string", "x", starlark.String("x")},
		{"int", 3, starlark.MakeInt(3)},
		{"int64", int64(3), starlark.MakeInt64(3)},
		{"float64", 0.5, starlark.Float(0.5)},
		{"strings", []string{"a", "b"}, starlark.NewList([]starlark.Value{
			starlark.String("a"), starlark.String("b"),
		})},
		{"tree", []any{"num", 1.0}, starlark.NewList([]starlark.Value{
			starlark.String("num"), starlark.Float(1),
		})},
		{"map", map[string]any{"g": 9.81}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("g"), starlark.Float(9.81))
			return d
		}()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := toStarlarkValue(calc, test.input)
			equal, err := starlark.Equal(got, test.expected)
			if err != nil {
				t.Fatal(err)
			}
			if !equal {
				t.Fatalf("got %v, want %v", got, test.expected)
			}
		})
	}

	sin, _ := taicalc.LookupBuiltin("sin")
	if b, ok := toStarlarkValue(calc, sin).(*starlark.Builtin); !ok || b.Name() != "sin" {
		t.Fatalf("got %v", b)
	}

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		toStarlarkValue(calc, make(chan bool))
	})
}
