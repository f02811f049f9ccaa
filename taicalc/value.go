package taicalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is one of Number, *Closure, *Builtin, *NativeFunc.
type Value interface {
	valueNode()
	String() string
}

type Number float64

// Closure is a user function. Env is the live defining scope, not a copy.
type Closure struct {
	Name   string // binding name for def statements and named assignments
	Params []string
	Body   Expr
	Env    *Env
}

// NativeFunc is a host function registered through Context.SetFunc.
type NativeFunc struct {
	Name  string
	Arity int
	Func  func(args []float64) (float64, error)
}

func (Number) valueNode()      {}
func (*Closure) valueNode()    {}
func (*Builtin) valueNode()    {}
func (*NativeFunc) valueNode() {}

func (n Number) String() string {
	return FormatNumber(float64(n), -1)
}

func (c *Closure) String() string {
	name := c.Name
	if name == "" {
		name = "lambda"
	}
	return fmt.Sprintf("<function %s(%s)>", name, strings.Join(c.Params, ", "))
}

func (b *Builtin) String() string {
	return fmt.Sprintf("<builtin %s>", b.Name)
}

func (n *NativeFunc) String() string {
	return fmt.Sprintf("<native %s>", n.Name)
}

// FormatNumber renders v with prec significant digits, or the shortest exact form when prec < 0.
func FormatNumber(v float64, prec int) string {
	if prec < 0 &&
		v == math.Trunc(v) &&
		math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', prec, 64)
}

func describeValue(v Value) string {
	switch v := v.(type) {
	case Number:
		return "number " + v.String()
	case nil:
		return "nothing"
	}
	return v.String()
}

func isFunction(v Value) bool {
	switch v.(type) {
	case *Closure, *Builtin, *NativeFunc:
		return true
	}
	return false
}
