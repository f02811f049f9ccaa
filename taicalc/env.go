package taicalc

import (
	"maps"
	"slices"
)

// Env is one scope of the chain. Parent links are only ever set to scopes that already exist.
type Env struct {
	parent *Env
	vars   map[string]Value
}

func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   make(map[string]Value),
	}
}

func (e *Env) Child() *Env {
	return NewEnv(e)
}

func (e *Env) Parent() *Env {
	return e.parent
}

// Define inserts or overwrites name in this scope only.
func (e *Env) Define(name string, value Value) {
	e.vars[name] = value
}

func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Env) Lookup(name string) (Value, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}
	return nil, &UndefinedVariableError{
		Name: name,
	}
}

// Assign updates the nearest scope that already defines name.
func (e *Env) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{
		Name: name,
	}
}

// Names returns the sorted names bound in this scope.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}
