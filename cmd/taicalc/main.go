package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/reusee/dscope"
	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/configs"
	"github.com/reusee/taicalc/modes"
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	todo := actions
	if len(todo) == 0 {
		if readline.IsTerminal(int(os.Stdin.Fd())) {
			todo = []action{
				func(ctx context.Context, app *App) error {
					return app.REPL(ctx)
				},
			}
		} else {
			todo = []action{
				func(ctx context.Context, app *App) error {
					return app.Run(ctx, "-")
				},
			}
		}
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	os.Exit(run(scope, todo))
}

// run performs todo in order, stopping at the first failure. It returns the process exit code.
func run(scope dscope.Scope, todo []action) (code int) {
	scope.Call(func(
		loader configs.Loader,
		stderr Stderr,
	) {
		if err := loader.Err(); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			code = 1
		}
	})
	if code != 0 {
		return
	}

	scope.Call(func(
		ctx context.Context,
		app *App,
	) {
		for _, act := range todo {
			if err := act(ctx, app); err != nil {
				app.report(ctx, err)
				code = 1
				return
			}
		}
	})
	return
}
