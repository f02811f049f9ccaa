package debugs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/taicalc/logs"
	"github.com/reusee/taicalc/taicalc"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens an interactive starlark prompt on stdin over the bindings of calc.
// Changes made through set() and eval() stay in calc after the prompt ends.
type Tap func(ctx context.Context, what string, calc *taicalc.Context)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, calc *taicalc.Context) {
		globals := Globals(calc)
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Println(msg)
			},
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
		}, thread, globals)
	}
}
