package calcconfigs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/configs"
)

type MaxDepth int

var maxDepthFlag = cmds.Var[*int]("-max-depth")

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	if *maxDepthFlag != nil {
		return MaxDepth(max(0, **maxDepthFlag))
	}
	return MaxDepth(configs.First[int](loader, "max_depth"))
}

// Precision is the number of significant digits of printed results; -1 prints the shortest exact form.
type Precision int

var precisionFlag = cmds.Var[*int]("-precision")

func (Module) Precision(
	loader configs.Loader,
) Precision {
	if *precisionFlag != nil {
		return Precision(min(max(-1, **precisionFlag), 17))
	}
	if p, ok := first[int](loader, "precision"); ok {
		return Precision(p)
	}
	return -1
}

type Prompt string

func (Module) Prompt(
	loader configs.Loader,
) Prompt {
	return Prompt(firstNonZero(
		configs.First[string](loader, "prompt"),
		"> ",
	))
}

type HistoryFile string

func (Module) HistoryFile(
	loader configs.Loader,
) HistoryFile {
	path := configs.First[string](loader, "history_file")
	home, err := os.UserHomeDir()
	if err != nil {
		return HistoryFile(path)
	}
	if path == "" {
		return HistoryFile(filepath.Join(home, ".taicalc_history"))
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		path = filepath.Join(home, rest)
	}
	return HistoryFile(path)
}

// Variables are numbers defined in every new session.
type Variables map[string]float64

func (Module) Variables(
	loader configs.Loader,
) Variables {
	ret := make(Variables)
	for vars := range configs.All[map[string]float64](loader, "variables") {
		for name, value := range vars {
			if _, ok := ret[name]; ok {
				continue
			}
			ret[name] = value
		}
	}
	return ret
}

func first[T any](loader configs.Loader, path string) (ret T, ok bool) {
	for value := range configs.All[T](loader, path) {
		return value, true
	}
	return
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}
