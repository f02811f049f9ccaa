package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/taicalc/taicalc"
)

const continuationPrompt = "... "

func (a *App) REPL(ctx context.Context) error {
	ctx, _ = a.newSpan(ctx, "", "repl")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      string(a.prompt),
		HistoryFile: string(a.historyFile),
	})
	if err != nil {
		return wrap(err)
	}
	defer rl.Close()

	var pending string
	for {
		if pending != "" {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(string(a.prompt))
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending = ""
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return wrap(err)
		}
		if a.handleLine(ctx, &pending, line) {
			return nil
		}
	}
}

// handleLine evaluates one line of input and reports whether the session should end.
// Input that stops at end of input is kept in pending until a later line completes it
// or a blank line abandons it.
func (a *App) handleLine(ctx context.Context, pending *string, line string) (quit bool) {
	trimmed := strings.TrimSpace(line)

	if *pending == "" {
		if blank(line) {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			return a.meta(ctx, trimmed)
		}
	}

	src := line
	if *pending != "" {
		src = *pending + "\n" + line
	}

	program, err := taicalc.Parse(src)
	if err != nil {
		if incomplete(err) && trimmed != "" {
			*pending = src
			return false
		}
		*pending = ""
		a.report(ctx, &SourceError{
			Source: src,
			Err:    err,
		})
		return false
	}
	*pending = ""

	calc, err := a.session()
	if err != nil {
		a.report(ctx, err)
		return false
	}
	v, err := calc.RunContext(ctx, program)
	if err != nil {
		a.report(ctx, &SourceError{
			Source: src,
			Err:    err,
		})
		return false
	}
	a.printValue(v)
	return false
}

// blank reports whether line holds nothing but whitespace and comments.
func blank(line string) bool {
	tokens, err := taicalc.Tokenize(line)
	if err != nil {
		return false
	}
	for _, token := range tokens {
		if token.Kind != taicalc.TokenNewline && token.Kind != taicalc.TokenEOF {
			return false
		}
	}
	return true
}

func incomplete(err error) bool {
	var parseErr *taicalc.ParseError
	return errors.As(err, &parseErr) && parseErr.Found.Kind == taicalc.TokenEOF
}

var metaCommands = [][2]string{
	{":vars", "list session bindings"},
	{":builtins", "list builtin functions"},
	{":ast <program>", "print the syntax tree"},
	{":fmt <program>", "print the canonical form"},
	{":tap", "open a starlark prompt over the session"},
	{":help", "print this help"},
	{":quit", "end the session"},
}

func (a *App) meta(ctx context.Context, cmd string) (quit bool) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch name {

	case ":q", ":quit", ":exit":
		return true

	case ":vars":
		var calc *taicalc.Context
		calc, err = a.session()
		if err != nil {
			break
		}
		for _, name := range calc.Names() {
			value, _ := calc.Lookup(name)
			fmt.Fprintf(a.stdout, "%s = %s\n", name, a.formatValue(value))
		}

	case ":builtins":
		fmt.Fprintln(a.stdout, strings.Join(taicalc.BuiltinNames(), " "))

	case ":ast":
		err = a.AST(ctx, string(treeFormat), arg)

	case ":fmt":
		err = a.Fmt(ctx, arg)

	case ":tap":
		err = a.Tap(ctx)

	case ":help":
		for _, c := range metaCommands {
			fmt.Fprintf(a.stdout, "%-16s%s\n", c[0], c[1])
		}

	default:
		err = fmt.Errorf("unknown command %s, try :help", name)
	}

	if err != nil {
		a.report(ctx, err)
	}
	return false
}
