package taicalc

import (
	"context"
	"math"
)

// Context is a persistent session whose root scope survives across evaluations.
// It is not safe for concurrent use.
type Context struct {
	env         *Env
	interpreter *Interpreter
}

func NewContext(opts *Options) *Context {
	env := NewEnv(nil)
	defineConstants(env)
	return &Context{
		env:         env,
		interpreter: NewInterpreter(opts),
	}
}

func defineConstants(env *Env) {
	env.Define("pi", Number(math.Pi))
	env.Define("e", Number(math.E))
	env.Define("tau", Number(2*math.Pi))
	env.Define("true", Number(1))
	env.Define("false", Number(0))
}

func (c *Context) Env() *Env {
	return c.env
}

func (c *Context) Interpreter() *Interpreter {
	return c.interpreter
}

func (c *Context) Set(name string, value float64) {
	c.env.Define(name, Number(value))
}

// Get returns the numeric value bound to name. Function bindings report false.
func (c *Context) Get(name string) (float64, bool) {
	v, ok := c.env.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.(Number)
	return float64(n), ok
}

func (c *Context) Lookup(name string) (Value, bool) {
	return c.env.Get(name)
}

// SetFunc binds a host function taking exactly arity numbers.
func (c *Context) SetFunc(name string, arity int, fn func(args []float64) (float64, error)) {
	c.env.Define(name, &NativeFunc{
		Name:  name,
		Arity: arity,
		Func:  fn,
	})
}

func (c *Context) Names() []string {
	return c.env.Names()
}

// Exec parses and evaluates a program in the context and returns its final value.
func (c *Context) Exec(source string) (Value, error) {
	return c.ExecContext(context.Background(), source)
}

// ExecContext is Exec with log records attached to ctx.
func (c *Context) ExecContext(ctx context.Context, source string) (Value, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return c.RunContext(ctx, program)
}

func (c *Context) Run(program *Program) (Value, error) {
	return c.RunContext(context.Background(), program)
}

func (c *Context) RunContext(ctx context.Context, program *Program) (Value, error) {
	return c.interpreter.EvalProgramContext(ctx, program, c.env)
}

func (c *Context) Call(fn Value, args ...float64) (Value, error) {
	values := make([]Value, 0, len(args))
	for _, arg := range args {
		values = append(values, Number(arg))
	}
	return c.interpreter.Call(fn, values)
}
