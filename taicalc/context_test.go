package taicalc

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestContextPersistence(t *testing.T) {
	ctx := NewContext(nil)
	if _, err := EvaluateWithContext("x = 5", ctx); err != nil {
		t.Fatal(err)
	}
	v, err := EvaluateWithContext("x * x", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v != 25 {
		t.Fatalf("got %v", v)
	}
	if _, err := EvaluateWithContext("y = x * 4", ctx); err != nil {
		t.Fatal(err)
	}
	y, ok := ctx.Get("y")
	if !ok || y != 20 {
		t.Fatalf("got %v %v", y, ok)
	}

	// fresh contexts share nothing
	if _, err := EvaluateWithContext("x", NewContext(nil)); err == nil {
		t.Fatal("should fail")
	}
}

func TestContextSetGet(t *testing.T) {
	ctx := NewContext(nil)
	ctx.Set("rate", 0.5)
	v, err := EvaluateWithContext("rate * 10", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v != 5 {
		t.Fatalf("got %v", v)
	}

	if _, err := ctx.Exec("def f(x) = x"); err != nil {
		t.Fatal(err)
	}
	if _, ok := ctx.Get("f"); ok {
		t.Fatal("functions have no numeric value")
	}
	if fn, ok := ctx.Lookup("f"); !ok || !isFunction(fn) {
		t.Fatalf("got %v", fn)
	}

	names := ctx.Names()
	for _, name := range []string{"pi", "e", "tau", "true", "false", "rate", "f"} {
		if !slices.Contains(names, name) {
			t.Fatalf("missing %s in %v", name, names)
		}
	}
}

func TestContextSetFunc(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetFunc("double", 1, func(args []float64) (float64, error) {
		return args[0] * 2, nil
	})
	fail := errors.New("fail")
	ctx.SetFunc("fail", 0, func(args []float64) (float64, error) {
		return 0, fail
	})

	v, err := EvaluateWithContext("double(21)", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %v", v)
	}

	v, err = EvaluateWithContext("g = double; g(g(1))", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v != 4 {
		t.Fatalf("got %v", v)
	}

	_, err = EvaluateWithContext("double(1, 2)", ctx)
	var arity *ArityMismatchError
	if !errors.As(err, &arity) {
		t.Fatalf("got %v", err)
	}

	_, err = EvaluateWithContext("1 + fail()", ctx)
	if !errors.Is(err, fail) {
		t.Fatalf("got %v", err)
	}
}

func TestContextCall(t *testing.T) {
	ctx := NewContext(nil)
	fn, err := ctx.Exec("def area(w, h) = w * h; area")
	if err != nil {
		t.Fatal(err)
	}
	v, err := ctx.Call(fn, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if v != Number(12) {
		t.Fatalf("got %v", v)
	}

	sqrt, ok := LookupBuiltin("sqrt")
	if !ok {
		t.Fatal("sqrt not found")
	}
	v, err = ctx.Call(sqrt, 9)
	if err != nil {
		t.Fatal(err)
	}
	if v != Number(3) {
		t.Fatalf("got %v", v)
	}

	if _, err := ctx.Call(Number(1)); err == nil {
		t.Fatal("should fail")
	}
}

func TestContextRun(t *testing.T) {
	program, err := Parse("n = n + 1")
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewContext(nil)
	ctx.Set("n", 0)
	for range 3 {
		if _, err := ctx.Run(program); err != nil {
			t.Fatal(err)
		}
	}
	n, _ := ctx.Get("n")
	if n != 3 {
		t.Fatalf("got %v", n)
	}
}

func ExampleEvaluate() {
	v, err := Evaluate("2 + 3 * 4", nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: 14
}

func ExampleContext() {
	ctx := NewContext(nil)
	if _, err := EvaluateWithContext("def square(x) = x ^ 2", ctx); err != nil {
		panic(err)
	}
	v, err := EvaluateWithContext("square(9) + 1", ctx)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: 82
}
