package debugs

import (
	"fmt"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/taicalc/taicalc"
	"github.com/samber/lo"
	"go.starlark.net/starlark"
)

// Globals exposes the bindings of calc to starlark.
// Numbers become floats and functions become builtins that call back into calc.
// eval(src), ast(src), set(name, value) and builtins operate on the same session.
func Globals(calc *taicalc.Context) starlark.StringDict {
	globals := make(starlark.StringDict)
	for _, name := range calc.Names() {
		value, ok := calc.Lookup(name)
		if !ok {
			continue
		}
		globals[name] = toStarlarkValue(calc, value)
	}

	globals["eval"] = starlarkutil.MakeFunc("eval", func(src string) (float64, error) {
		return taicalc.EvaluateWithContext(src, calc)
	})

	globals["set"] = starlarkutil.MakeFunc("set", func(name string, value float64) {
		calc.Set(name, value)
	})

	globals["ast"] = starlark.NewBuiltin("ast", func(
		_ *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var src string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &src); err != nil {
			return nil, err
		}
		program, err := taicalc.Parse(src)
		if err != nil {
			return nil, err
		}
		if len(program.Statements) == 1 {
			return toStarlarkValue(calc, taicalc.ToTree(program.Statements[0])), nil
		}
		return toStarlarkValue(calc, taicalc.ProgramToTree(program)), nil
	})

	globals["builtins"] = starlark.NewList(lo.Map(
		taicalc.BuiltinNames(),
		func(name string, _ int) starlark.Value {
			return starlark.String(name)
		},
	))

	return globals
}

func toStarlarkValue(calc *taicalc.Context, v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case taicalc.Number:
		return starlark.Float(v)

	case *taicalc.Closure, *taicalc.Builtin, *taicalc.NativeFunc:
		return callable(calc, v.(taicalc.Value))

	case bool:
		return starlark.Bool(v)

	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)

	case float64:
		return starlark.Float(v)

	case []string:
		return starlark.NewList(lo.Map(v, func(s string, _ int) starlark.Value {
			return starlark.String(s)
		}))

	case []any:
		return starlark.NewList(lo.Map(v, func(elem any, _ int) starlark.Value {
			return toStarlarkValue(calc, elem)
		}))

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, elem := range v {
			_ = d.SetKey(starlark.String(k), toStarlarkValue(calc, elem))
		}
		return d

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

func callable(calc *taicalc.Context, fn taicalc.Value) *starlark.Builtin {
	name := fn.String()
	switch fn := fn.(type) {
	case *taicalc.Closure:
		if fn.Name != "" {
			name = fn.Name
		}
	case *taicalc.Builtin:
		name = fn.Name
	case *taicalc.NativeFunc:
		name = fn.Name
	}

	return starlark.NewBuiltin(name, func(
		_ *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		nums := make([]float64, 0, len(args))
		for i, arg := range args {
			f, ok := starlark.AsFloat(arg)
			if !ok {
				return nil, fmt.Errorf("%s: argument %d: expected number, got %s", b.Name(), i+1, arg.Type())
			}
			nums = append(nums, f)
		}
		ret, err := calc.Call(fn, nums...)
		if err != nil {
			return nil, err
		}
		return toStarlarkValue(calc, ret), nil
	})
}
