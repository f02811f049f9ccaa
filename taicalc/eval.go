package taicalc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
)

type Interpreter struct {
	stdout   io.Writer
	logger   *slog.Logger
	maxDepth int
	depth    int
}

func NewInterpreter(opts *Options) *Interpreter {
	in := &Interpreter{
		stdout: io.Discard,
		logger: slog.New(slog.DiscardHandler),
	}
	if opts != nil {
		if opts.Stdout != nil {
			in.stdout = opts.Stdout
		}
		if opts.Logger != nil {
			in.logger = opts.Logger
		}
		in.maxDepth = opts.MaxDepth
	}
	return in
}

// EvalProgram evaluates statements in order and returns the last value.
// The first failing statement aborts the rest.
func (in *Interpreter) EvalProgram(program *Program, env *Env) (Value, error) {
	return in.EvalProgramContext(context.Background(), program, env)
}

// EvalProgramContext is EvalProgram with log records attached to ctx.
func (in *Interpreter) EvalProgramContext(ctx context.Context, program *Program, env *Env) (Value, error) {
	var result Value
	for i, stmt := range program.Statements {
		value, err := in.Eval(stmt, env)
		if err != nil {
			in.logger.DebugContext(ctx, "statement failed",
				"index", i,
				"error", err,
			)
			return nil, err
		}
		in.logger.DebugContext(ctx, "statement evaluated",
			"index", i,
			"value", logValue{value},
		)
		result = value
	}
	return result, nil
}

// logValue renders a Value only when a handler takes the record.
type logValue struct {
	Value
}

func (v logValue) LogValue() slog.Value {
	return slog.StringValue(v.Value.String())
}

func (in *Interpreter) Eval(expr Expr, env *Env) (Value, error) {
	switch expr := expr.(type) {

	case *NumberLit:
		return Number(expr.Value), nil

	case *Ident:
		return in.resolve(expr.Name, env)

	case *Unary:
		operand, err := in.evalNumber(expr.Operand, env, string(expr.Op))
		if err != nil {
			return nil, err
		}
		switch expr.Op {
		case OpNeg:
			return Number(-operand), nil
		case OpNot:
			return Number(boolNumber(!truthy(operand))), nil
		}
		return nil, fmt.Errorf("unknown unary operator %q", expr.Op)

	case *Binary:
		return in.evalBinary(expr, env)

	case *Cond:
		cond, err := in.evalNumber(expr.Cond, env, "if")
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return in.Eval(expr.Then, env)
		}
		return in.Eval(expr.Else, env)

	case *Call:
		return in.evalCall(expr, env)

	case *Lambda:
		return &Closure{
			Params: expr.Params,
			Body:   expr.Body,
			Env:    env,
		}, nil

	case *Assign:
		value, err := in.Eval(expr.Value, env)
		if err != nil {
			return nil, err
		}
		if closure, ok := value.(*Closure); ok && closure.Name == "" {
			if _, isLiteral := expr.Value.(*Lambda); isLiteral {
				closure.Name = expr.Name
			}
		}
		env.Define(expr.Name, value)
		return value, nil

	}

	return nil, fmt.Errorf("unknown expression type %T", expr)
}

// resolve looks name up through the scope chain, then in the builtin registry.
func (in *Interpreter) resolve(name string, env *Env) (Value, error) {
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	if b, ok := LookupBuiltin(name); ok {
		return b, nil
	}
	return nil, &UndefinedVariableError{
		Name: name,
	}
}

func (in *Interpreter) evalNumber(expr Expr, env *Env, op string) (float64, error) {
	value, err := in.Eval(expr, env)
	if err != nil {
		return 0, err
	}
	return toNumber(value, op)
}

func toNumber(value Value, op string) (float64, error) {
	n, ok := value.(Number)
	if !ok {
		return 0, &TypeError{
			Op:    op,
			Value: describeValue(value),
		}
	}
	return float64(n), nil
}

func (in *Interpreter) evalBinary(expr *Binary, env *Env) (Value, error) {
	left, err := in.evalNumber(expr.Left, env, string(expr.Op))
	if err != nil {
		return nil, err
	}

	// short circuit
	switch expr.Op {
	case OpAnd:
		if !truthy(left) {
			return Number(0), nil
		}
	case OpOr:
		if truthy(left) {
			return Number(1), nil
		}
	}

	right, err := in.evalNumber(expr.Right, env, string(expr.Op))
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case OpAnd, OpOr:
		return Number(boolNumber(truthy(right))), nil
	case OpAdd:
		return Number(left + right), nil
	case OpSub:
		return Number(left - right), nil
	case OpMul:
		return Number(left * right), nil
	case OpDiv:
		return Number(left / right), nil
	case OpMod:
		return Number(math.Mod(left, right)), nil
	case OpPow:
		return Number(math.Pow(left, right)), nil
	case OpEq:
		return Number(boolNumber(left == right)), nil
	case OpNe:
		return Number(boolNumber(left != right)), nil
	case OpLt:
		return Number(boolNumber(left < right)), nil
	case OpGt:
		return Number(boolNumber(left > right)), nil
	case OpLe:
		return Number(boolNumber(left <= right)), nil
	case OpGe:
		return Number(boolNumber(left >= right)), nil
	}

	return nil, fmt.Errorf("unknown binary operator %q", expr.Op)
}

func (in *Interpreter) evalCall(expr *Call, env *Env) (Value, error) {
	var callee Value
	if ident, ok := expr.Callee.(*Ident); ok {
		v, err := in.resolve(ident.Name, env)
		if err != nil {
			return nil, &UndefinedFunctionError{
				Name: ident.Name,
			}
		}
		callee = v
	} else {
		v, err := in.Eval(expr.Callee, env)
		if err != nil {
			return nil, err
		}
		callee = v
	}

	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := in.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return in.Call(callee, args)
}

// Call applies fn to already evaluated arguments.
func (in *Interpreter) Call(fn Value, args []Value) (Value, error) {
	switch fn := fn.(type) {

	case *Closure:
		if len(args) != len(fn.Params) {
			return nil, &ArityMismatchError{
				Name:     fn.Name,
				Expected: []int{len(fn.Params)},
				Got:      len(args),
			}
		}
		if in.maxDepth > 0 && in.depth >= in.maxDepth {
			return nil, &DepthExceededError{
				Max: in.maxDepth,
			}
		}
		scope := fn.Env.Child()
		for i, param := range fn.Params {
			scope.Define(param, args[i])
		}
		in.depth++
		defer func() {
			in.depth--
		}()
		return in.Eval(fn.Body, scope)

	case *Builtin:
		impl, err := fn.resolve(len(args))
		if err != nil {
			return nil, err
		}
		nums, err := toNumbers(args, fn.Name)
		if err != nil {
			return nil, err
		}
		ret, err := impl(in, nums)
		if err != nil {
			return nil, err
		}
		return Number(ret), nil

	case *NativeFunc:
		if len(args) != fn.Arity {
			return nil, &ArityMismatchError{
				Name:     fn.Name,
				Expected: []int{fn.Arity},
				Got:      len(args),
			}
		}
		nums, err := toNumbers(args, fn.Name)
		if err != nil {
			return nil, err
		}
		ret, err := fn.Func(nums)
		if err != nil {
			return nil, err
		}
		return Number(ret), nil

	}

	return nil, &NotCallableError{
		Value: describeValue(fn),
	}
}

func toNumbers(args []Value, op string) ([]float64, error) {
	nums := make([]float64, 0, len(args))
	for _, arg := range args {
		n, err := toNumber(arg, op)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func truthy(x float64) bool {
	return x != 0
}
