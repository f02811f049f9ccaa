package main

import (
	"context"
	"strings"

	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/trees"
)

// action runs after every command line word has been consumed, so flags given anywhere before it apply.
type action func(ctx context.Context, app *App) error

var actions []action

// treeFormat is set by the words following -format.
var treeFormat = trees.FormatJSON

var printAll = cmds.Switch("-print-all")

func queue(act action) {
	actions = append(actions, act)
}

func init() {
	formats := make(map[string]*cmds.Command)
	for _, format := range trees.Formats {
		formats[string(format)] = cmds.Func(func() {
			treeFormat = format
		}).Desc("encode syntax trees as " + string(format))
	}
	formats["yml"] = formats[string(trees.FormatYAML)]
	cmds.Define("-format", cmds.Sub(formats).Desc("select the ast encoding by the next word"))

	cmds.Define("eval", cmds.Func(func(words []string) {
		src := strings.Join(words, " ")
		queue(func(ctx context.Context, app *App) error {
			return app.Eval(ctx, src)
		})
	}).Desc("evaluate the remaining words as a program and print the result").Alias("e"))

	cmds.Define("run", cmds.Func(func(path *string) {
		p := *path
		queue(func(ctx context.Context, app *App) error {
			return app.Run(ctx, p)
		})
	}).Desc("run a program file, or standard input for - or no path"))

	cmds.Define("ast", cmds.Func(func(words []string) {
		src := strings.Join(words, " ")
		queue(func(ctx context.Context, app *App) error {
			return app.AST(ctx, string(treeFormat), src)
		})
	}).Desc("print the syntax tree of the remaining words in the -format encoding"))

	cmds.Define("fmt", cmds.Func(func(words []string) {
		src := strings.Join(words, " ")
		queue(func(ctx context.Context, app *App) error {
			return app.Fmt(ctx, src)
		})
	}).Desc("print the remaining words in canonical form"))

	cmds.Define("repl", cmds.Func(func() {
		queue(func(ctx context.Context, app *App) error {
			return app.REPL(ctx)
		})
	}).Desc("start an interactive session"))

	cmds.Define("tap", cmds.Func(func() {
		queue(func(ctx context.Context, app *App) error {
			return app.Tap(ctx)
		})
	}).Desc("open a starlark prompt over the session bindings"))
}
