package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/reusee/e5"
	"github.com/reusee/taicalc/calcconfigs"
	"github.com/reusee/taicalc/debugs"
	"github.com/reusee/taicalc/logs"
	"github.com/reusee/taicalc/taicalc"
	"github.com/reusee/taicalc/trees"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// App runs command line actions against one calculator session.
type App struct {
	logger      logs.Logger
	newSpan     logs.NewSpan
	tap         debugs.Tap
	stdin       Stdin
	stdout      Stdout
	stderr      Stderr
	maxDepth    calcconfigs.MaxDepth
	precision   calcconfigs.Precision
	prompt      calcconfigs.Prompt
	historyFile calcconfigs.HistoryFile
	variables   calcconfigs.Variables
	defines     Defines
	printAll    PrintAll

	calc *taicalc.Context
}

func (Module) App(
	logger logs.Logger,
	newSpan logs.NewSpan,
	tap debugs.Tap,
	stdin Stdin,
	stdout Stdout,
	stderr Stderr,
	maxDepth calcconfigs.MaxDepth,
	precision calcconfigs.Precision,
	prompt calcconfigs.Prompt,
	historyFile calcconfigs.HistoryFile,
	variables calcconfigs.Variables,
	defines Defines,
	printAll PrintAll,
) *App {
	return &App{
		logger:      logger,
		newSpan:     newSpan,
		tap:         tap,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		maxDepth:    maxDepth,
		precision:   precision,
		prompt:      prompt,
		historyFile: historyFile,
		variables:   variables,
		defines:     defines,
		printAll:    printAll,
	}
}

// SourceError keeps the source text of a failed program for snippet rendering.
type SourceError struct {
	Name   string
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return e.Name + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (a *App) session() (*taicalc.Context, error) {
	if a.calc != nil {
		return a.calc, nil
	}

	calc := taicalc.NewContext(&taicalc.Options{
		Stdout:   a.stdout,
		Logger:   a.logger,
		MaxDepth: int(a.maxDepth),
	})
	for _, name := range slices.Sorted(maps.Keys(a.variables)) {
		calc.Set(name, a.variables[name])
	}
	for _, def := range a.defines {
		name, expr, ok := strings.Cut(def, "=")
		if !ok {
			return nil, fmt.Errorf("bad definition %q, expecting name=expression", def)
		}
		name = strings.TrimSpace(name)
		if !isIdentifier(name) {
			return nil, fmt.Errorf("bad variable name %q", name)
		}
		value, err := taicalc.EvaluateWithContext(expr, calc)
		if err != nil {
			return nil, &SourceError{
				Name:   "define " + name,
				Source: expr,
				Err:    err,
			}
		}
		calc.Set(name, value)
	}

	a.calc = calc
	return calc, nil
}

func isIdentifier(name string) bool {
	tokens, err := taicalc.Tokenize(name)
	if err != nil {
		return false
	}
	return len(tokens) == 2 &&
		tokens[0].Kind == taicalc.TokenIdentifier &&
		tokens[0].Text == name
}

func (a *App) formatValue(v taicalc.Value) string {
	if n, ok := v.(taicalc.Number); ok {
		return taicalc.FormatNumber(float64(n), int(a.precision))
	}
	return v.String()
}

func (a *App) printValue(v taicalc.Value) {
	if v == nil {
		return
	}
	fmt.Fprintln(a.stdout, a.formatValue(v))
}

// execPrint evaluates src and prints its final value, or the value of every statement under PrintAll.
func (a *App) execPrint(ctx context.Context, name string, src string) error {
	calc, err := a.session()
	if err != nil {
		return err
	}
	program, err := taicalc.Parse(src)
	if err != nil {
		return &SourceError{
			Name:   name,
			Source: src,
			Err:    err,
		}
	}

	steps := []*taicalc.Program{program}
	if a.printAll {
		steps = nil
		for _, stmt := range program.Statements {
			steps = append(steps, &taicalc.Program{
				Statements: []taicalc.Expr{stmt},
			})
		}
	}
	for _, step := range steps {
		v, err := calc.RunContext(ctx, step)
		if err != nil {
			return &SourceError{
				Name:   name,
				Source: src,
				Err:    err,
			}
		}
		a.printValue(v)
	}
	return nil
}

// Eval evaluates src and prints its value.
func (a *App) Eval(ctx context.Context, src string) error {
	return a.execPrint(ctx, "", src)
}

// Run evaluates a program file, or standard input for "" and "-", and prints like Eval.
func (a *App) Run(ctx context.Context, path string) error {
	name := path
	var content []byte
	var err error
	if path == "" || path == "-" {
		name = "stdin"
		content, err = io.ReadAll(a.stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return wrap(err)
	}

	ctx, _ = a.newSpan(ctx, "", "run "+name)
	a.logger.DebugContext(ctx, "program loaded",
		"name", name,
		"bytes", len(content),
	)

	return a.execPrint(ctx, name, string(content))
}

func parse(src string) (*taicalc.Program, error) {
	program, err := taicalc.Parse(src)
	if err != nil {
		return nil, &SourceError{
			Source: src,
			Err:    err,
		}
	}
	return program, nil
}

// AST prints the syntax tree of src. A single statement prints as an expression tree.
func (a *App) AST(ctx context.Context, format string, src string) error {
	if format == "" {
		format = string(trees.FormatJSON)
	}
	f, err := trees.ParseFormat(format)
	if err != nil {
		return err
	}
	program, err := parse(src)
	if err != nil {
		return err
	}
	if len(program.Statements) == 1 {
		return trees.EncodeExpr(a.stdout, f, program.Statements[0])
	}
	return trees.EncodeProgram(a.stdout, f, program)
}

// Fmt prints src in canonical form.
func (a *App) Fmt(ctx context.Context, src string) error {
	program, err := parse(src)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, taicalc.FormatProgram(program))
	return err
}

// Tap opens the starlark prompt over the session.
func (a *App) Tap(ctx context.Context) error {
	calc, err := a.session()
	if err != nil {
		return err
	}
	a.tap(ctx, "session", calc)
	return nil
}

func (a *App) report(ctx context.Context, err error) {
	a.logger.DebugContext(ctx, "failed",
		"error", logs.WrapSpan(ctx, err),
	)
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		if pos, ok := taicalc.ErrorPos(sourceErr.Err); ok {
			fmt.Fprint(a.stderr, taicalc.Snippet(sourceErr.Source, pos))
		}
	}
}
