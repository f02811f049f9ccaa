package taicalc

import (
	"slices"

	"github.com/samber/lo"
)

type BuiltinFunc func(in *Interpreter, args []float64) (float64, error)

// Builtin is a named entry of the fixed registry, with one implementation per accepted arity
// or a single variadic implementation.
type Builtin struct {
	Name      string
	overloads map[int]BuiltinFunc
	variadic  BuiltinFunc
	minArgs   int
}

var builtins = make(map[string]*Builtin)

func getBuiltin(name string) *Builtin {
	b, ok := builtins[name]
	if !ok {
		b = &Builtin{
			Name:      name,
			overloads: make(map[int]BuiltinFunc),
		}
		builtins[name] = b
	}
	return b
}

func defFixed(name string, arity int, fn BuiltinFunc) {
	b := getBuiltin(name)
	if _, ok := b.overloads[arity]; ok {
		panic("duplicated builtin " + name)
	}
	b.overloads[arity] = fn
}

func defVariadic(name string, minArgs int, fn BuiltinFunc) {
	b := getBuiltin(name)
	if b.variadic != nil {
		panic("duplicated builtin " + name)
	}
	b.variadic = fn
	b.minArgs = minArgs
}

func LookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames returns the sorted registry names.
func BuiltinNames() []string {
	names := lo.Keys(builtins)
	slices.Sort(names)
	return names
}

func (b *Builtin) Variadic() bool {
	return b.variadic != nil
}

// Arities returns the accepted argument counts, or the minimum for variadic builtins.
func (b *Builtin) Arities() []int {
	if b.variadic != nil {
		return []int{b.minArgs}
	}
	arities := lo.Keys(b.overloads)
	slices.Sort(arities)
	return arities
}

func (b *Builtin) resolve(numArgs int) (BuiltinFunc, error) {
	if b.variadic != nil {
		if numArgs < b.minArgs {
			return nil, &ArityMismatchError{
				Name:     b.Name,
				Expected: []int{b.minArgs},
				AtLeast:  true,
				Got:      numArgs,
			}
		}
		return b.variadic, nil
	}
	fn, ok := b.overloads[numArgs]
	if !ok {
		return nil, &ArityMismatchError{
			Name:     b.Name,
			Expected: b.Arities(),
			Got:      numArgs,
		}
	}
	return fn, nil
}
