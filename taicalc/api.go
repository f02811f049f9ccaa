package taicalc

// Evaluate parses source as a single expression and evaluates it in a fresh context.
func Evaluate(source string, opts *Options) (float64, error) {
	expr, err := ParseExpr(source)
	if err != nil {
		return 0, err
	}
	ctx := NewContext(opts)
	value, err := ctx.interpreter.Eval(expr, ctx.env)
	if err != nil {
		return 0, err
	}
	return toNumber(value, "result")
}

// EvaluateProgram evaluates a multi-statement program in a fresh context.
func EvaluateProgram(source string, opts *Options) (float64, error) {
	return EvaluateWithContext(source, NewContext(opts))
}

// EvaluateWithContext evaluates a program against ctx, keeping its bindings.
func EvaluateWithContext(source string, ctx *Context) (float64, error) {
	value, err := ctx.Exec(source)
	if err != nil {
		return 0, err
	}
	return toNumber(value, "result")
}
