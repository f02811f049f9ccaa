package taicalc

import (
	"errors"
	"slices"
	"testing"
)

func TestEnv(t *testing.T) {
	root := NewEnv(nil)
	root.Define("a", Number(1))
	root.Define("b", Number(2))

	child := root.Child()
	if child.Parent() != root {
		t.Fatal("bad parent")
	}
	child.Define("a", Number(10))

	v, ok := child.Get("a")
	if !ok || v != Number(10) {
		t.Fatalf("got %v", v)
	}
	v, ok = child.Get("b")
	if !ok || v != Number(2) {
		t.Fatalf("got %v", v)
	}
	v, ok = root.Get("a")
	if !ok || v != Number(1) {
		t.Fatalf("got %v", v)
	}

	if _, ok := root.Get("c"); ok {
		t.Fatal("should not exist")
	}
	_, err := child.Lookup("c")
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "c" {
		t.Fatalf("got %v", err)
	}

	// assign walks to the defining scope
	if err := child.Assign("b", Number(20)); err != nil {
		t.Fatal(err)
	}
	v, _ = root.Get("b")
	if v != Number(20) {
		t.Fatalf("got %v", v)
	}
	if err := child.Assign("a", Number(100)); err != nil {
		t.Fatal(err)
	}
	v, _ = root.Get("a")
	if v != Number(1) {
		t.Fatalf("got %v", v)
	}
	if err := child.Assign("c", Number(1)); !errors.As(err, &undef) {
		t.Fatalf("got %v", err)
	}

	if names := root.Names(); !slices.Equal(names, []string{"a", "b"}) {
		t.Fatalf("got %v", names)
	}
	if names := child.Names(); !slices.Equal(names, []string{"a"}) {
		t.Fatalf("got %v", names)
	}
}
