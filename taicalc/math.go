package taicalc

import (
	"fmt"
	"math"
	"strings"
)

func init() {
	// trigonometric
	defFixed("sin", 1, unary(math.Sin))
	defFixed("cos", 1, unary(math.Cos))
	defFixed("tan", 1, unary(math.Tan))
	defFixed("asin", 1, unary(math.Asin))
	defFixed("acos", 1, unary(math.Acos))
	defFixed("atan", 1, unary(math.Atan))
	defFixed("atan2", 2, binary(math.Atan2))

	// hyperbolic
	defFixed("sinh", 1, unary(math.Sinh))
	defFixed("cosh", 1, unary(math.Cosh))
	defFixed("tanh", 1, unary(math.Tanh))
	defFixed("asinh", 1, unary(math.Asinh))
	defFixed("acosh", 1, unary(math.Acosh))
	defFixed("atanh", 1, unary(math.Atanh))

	// roots, powers and logarithms
	defFixed("sqrt", 1, unary(math.Sqrt))
	defFixed("cbrt", 1, unary(math.Cbrt))
	defFixed("exp", 1, unary(math.Exp))
	defFixed("exp2", 1, unary(math.Exp2))
	defFixed("ln", 1, unary(math.Log))
	defFixed("log", 1, unary(math.Log))
	defFixed("log", 2, binary(func(x, base float64) float64 {
		return math.Log(x) / math.Log(base)
	}))
	defFixed("log2", 1, unary(math.Log2))
	defFixed("log10", 1, unary(math.Log10))
	defFixed("pow", 2, binary(math.Pow))
	defFixed("hypot", 2, binary(math.Hypot))

	// rounding
	defFixed("floor", 1, unary(math.Floor))
	defFixed("ceil", 1, unary(math.Ceil))
	defFixed("trunc", 1, unary(math.Trunc))
	defFixed("round", 1, unary(math.Round))
	defFixed("round", 2, binary(roundDigits))
	defFixed("abs", 1, unary(math.Abs))
	defFixed("sign", 1, unary(sign))
	defFixed("fract", 1, unary(func(x float64) float64 {
		return x - math.Floor(x)
	}))

	// misc
	// NaN in, NaN out, as in every other arithmetic builtin
	defFixed("min", 2, binary(math.Min))
	defFixed("max", 2, binary(math.Max))
	defFixed("mod", 2, binary(math.Mod))
	defFixed("clamp", 3, clamp)
	defFixed("lerp", 3, lerp)
	defFixed("deg", 1, unary(func(x float64) float64 {
		return x * 180 / math.Pi
	}))
	defFixed("rad", 1, unary(func(x float64) float64 {
		return x * math.Pi / 180
	}))
	defFixed("isnan", 1, unary(func(x float64) float64 {
		return boolNumber(math.IsNaN(x))
	}))
	defFixed("isinf", 1, unary(func(x float64) float64 {
		return boolNumber(math.IsInf(x, 0))
	}))

	// variadic
	defVariadic("sum", 0, sum)
	defVariadic("avg", 1, avg)
	defVariadic("print", 0, printArgs)
}

func unary(fn func(float64) float64) BuiltinFunc {
	return func(_ *Interpreter, args []float64) (float64, error) {
		return fn(args[0]), nil
	}
}

func binary(fn func(float64, float64) float64) BuiltinFunc {
	return func(_ *Interpreter, args []float64) (float64, error) {
		return fn(args[0], args[1]), nil
	}
}

func roundDigits(x, digits float64) float64 {
	scale := math.Pow(10, math.Trunc(digits))
	return math.Round(x*scale) / scale
}

// sign is -1, 1, or the signed zero or NaN it was given.
func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // keeps the sign of zero
}

func clamp(_ *Interpreter, args []float64) (float64, error) {
	x, lo, hi := args[0], args[1], args[2]
	return math.Min(math.Max(x, lo), hi), nil
}

func lerp(_ *Interpreter, args []float64) (float64, error) {
	a, b, t := args[0], args[1], args[2]
	return a + (b-a)*t, nil
}

func sum(_ *Interpreter, args []float64) (float64, error) {
	var ret float64
	for _, arg := range args {
		ret += arg
	}
	return ret, nil
}

func avg(in *Interpreter, args []float64) (float64, error) {
	total, _ := sum(in, args)
	return total / float64(len(args)), nil
}

func printArgs(in *Interpreter, args []float64) (float64, error) {
	strs := make([]string, 0, len(args))
	for _, arg := range args {
		strs = append(strs, FormatNumber(arg, -1))
	}
	if _, err := fmt.Fprintln(in.stdout, strings.Join(strs, " ")); err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return 0, nil
	}
	return args[len(args)-1], nil
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
