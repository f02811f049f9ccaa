package calcconfigs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taicalc/configs"
	"github.com/reusee/taicalc/modes"
)

func testScope(t *testing.T, sources ...string) dscope.Scope {
	var srcs []configs.Source
	for i, src := range sources {
		srcs = append(srcs, configs.Source{
			Name:    filepath.Join("testdata", string(rune('a'+i))+".cue"),
			Content: []byte(src),
		})
	}
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return NewLoader(srcs)
		},
	)
}

func TestDefaults(t *testing.T) {
	testScope(t).Call(func(
		loader configs.Loader,
		maxDepth MaxDepth,
		precision Precision,
		prompt Prompt,
		historyFile HistoryFile,
		variables Variables,
	) {
		if err := loader.Err(); err != nil {
			t.Fatal(err)
		}
		if maxDepth != 0 {
			t.Fatalf("got %d", maxDepth)
		}
		if precision != -1 {
			t.Fatalf("got %d", precision)
		}
		if prompt != "> " {
			t.Fatalf("got %q", prompt)
		}
		if filepath.Base(string(historyFile)) != ".taicalc_history" {
			t.Fatalf("got %s", historyFile)
		}
		if len(variables) != 0 {
			t.Fatalf("got %v", variables)
		}
	})
}

func TestSettings(t *testing.T) {
	testScope(t,
		`
		max_depth: 200
		precision: 0
		prompt: "= "
		history_file: "~/calc/history"
		variables: {
			g: 9.81
			answer: 42
		}
		`,
		`
		max_depth: 10
		precision: 6
		variables: {
			g: 10
			k: 1.380649e-23
		}
		`,
	).Call(func(
		loader configs.Loader,
		maxDepth MaxDepth,
		precision Precision,
		prompt Prompt,
		historyFile HistoryFile,
		variables Variables,
	) {
		if err := loader.Err(); err != nil {
			t.Fatal(err)
		}
		if maxDepth != 200 {
			t.Fatalf("got %d", maxDepth)
		}
		if precision != 0 {
			t.Fatalf("got %d", precision)
		}
		if prompt != "= " {
			t.Fatalf("got %q", prompt)
		}
		home, err := os.UserHomeDir()
		if err == nil && string(historyFile) != filepath.Join(home, "calc", "history") {
			t.Fatalf("got %s", historyFile)
		}
		if variables["g"] != 9.81 {
			t.Fatalf("got %v", variables)
		}
		if variables["answer"] != 42 {
			t.Fatalf("got %v", variables)
		}
		if variables["k"] != 1.380649e-23 {
			t.Fatalf("got %v", variables)
		}
	})
}

func TestSchema(t *testing.T) {
	for _, src := range []string{
		`max_depth: -1`,
		`precision: 18`,
		`prompt: 1`,
		`variables: "1-x": 1`,
		`variables: x: "one"`,
		`colour: "red"`,
	} {
		testScope(t, src).Call(func(
			loader configs.Loader,
		) {
			if err := loader.Err(); err == nil {
				t.Fatalf("%s: should fail", src)
			}
		})
	}
}

func TestConfigsLoaderDiscovery(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(
		filepath.Join(dir, "taicalc.cue"),
		[]byte(`prompt: "here> "`),
		0644,
	); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		loader configs.Loader,
		prompt Prompt,
	) {
		paths, err := loader.Paths()
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) == 0 || filepath.Base(paths[0]) != "taicalc.cue" {
			t.Fatalf("got %v", paths)
		}
		if prompt != "here> " {
			t.Fatalf("got %q", prompt)
		}
	})
}
