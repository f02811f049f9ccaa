package configs

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

var testSchema = `
prompt?: string
max_depth?: int & >=0
variables?: [string]: number
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/local.cue",
		"testdata/user.cue",
	}, testSchema)
	if err := loader.Err(); err != nil {
		t.Fatal(err)
	}

	var prompt string
	if err := loader.AssignFirst("prompt", &prompt); err != nil {
		t.Fatal(err)
	}
	if prompt != "calc> " {
		t.Fatalf("got %q", prompt)
	}

	var depth int
	if err := loader.AssignFirst("max_depth", &depth); err != nil {
		t.Fatal(err)
	}
	if depth != 100 {
		t.Fatalf("got %d", depth)
	}

	var g float64
	if err := loader.AssignFirst("variables.g", &g); err != nil {
		t.Fatal(err)
	}
	if g != 9.81 {
		t.Fatalf("got %v", g)
	}

	err := loader.AssignFirst("history_file", &prompt)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

	paths, err := loader.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(paths, []string{"testdata/local.cue", "testdata/user.cue"}) {
		t.Fatalf("got %v", paths)
	}
}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/local.cue",
		"testdata/user.cue",
	}, testSchema)

	var prompts []string
	for value, err := range loader.IterCueValues("prompt") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		prompts = append(prompts, s)
	}
	if str := fmt.Sprintf("%q", prompts); str != `["calc> " "> "]` {
		t.Fatalf("got %s", str)
	}

	var gs []float64
	for vars := range All[map[string]float64](loader, "variables") {
		gs = append(gs, vars["g"])
	}
	if !slices.Equal(gs, []float64{9.81, 10}) {
		t.Fatalf("got %v", gs)
	}

	// max_depth only in the first source
	var depths []int
	for depth := range All[int](loader, "max_depth") {
		depths = append(depths, depth)
	}
	if !slices.Equal(depths, []int{100}) {
		t.Fatalf("got %v", depths)
	}
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/user.cue"}, testSchema)
	if got := First[string](loader, "prompt"); got != "> " {
		t.Fatalf("got %q", got)
	}
	if got := First[int](loader, "max_depth"); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}
	var prompt string
	if err := loader.AssignFirst("prompt", &prompt); err == nil {
		t.Fatal("should error")
	}
}

func TestSchemaViolation(t *testing.T) {
	loader := NewSourceLoader([]Source{
		{
			Name:    "depth.cue",
			Content: []byte(`max_depth: -1`),
		},
	}, testSchema)
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}

	loader = NewSourceLoader([]Source{
		{
			Name:    "vars.cue",
			Content: []byte(`variables: x: "one"`),
		},
	}, testSchema)
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"testdata/nope.cue"}, testSchema)
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}
}

func TestNoSchema(t *testing.T) {
	loader := NewSourceLoader([]Source{
		{
			Name:    "any.cue",
			Content: []byte(`anything: [1, 2, 3]`),
		},
	}, "")
	list := First[[]int](loader, "anything")
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}
}
