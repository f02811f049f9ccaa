package main

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/taicalc/calcconfigs"
	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/debugs"
)

type Module struct {
	dscope.Module
	Configs calcconfigs.Module
	Debugs  debugs.Module
}

type (
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
)

func (Module) Stdin() Stdin {
	return os.Stdin
}

func (Module) Stdout() Stdout {
	return os.Stdout
}

func (Module) Stderr() Stderr {
	return os.Stderr
}

// Defines are name=expression pairs from -define, evaluated in order when a session starts.
type Defines []string

var defineArgs = cmds.Collect[string]("-define")

func (Module) Defines() Defines {
	return Defines(*defineArgs)
}

// PrintAll prints the value of every statement instead of only the last one.
type PrintAll bool

func (Module) PrintAll() PrintAll {
	return PrintAll(*printAll)
}
