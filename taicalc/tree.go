package taicalc

import (
	"errors"
	"fmt"
)

// ErrBadTree reports a generic tree that does not describe an AST.
var ErrBadTree = errors.New("malformed tree")

// Tree node tags.
const (
	TagNumber  = "num"
	TagIdent   = "id"
	TagUnary   = "unary"
	TagBinary  = "binary"
	TagCond    = "if"
	TagCall    = "call"
	TagLambda  = "lambda"
	TagAssign  = "assign"
	TagProgram = "program"
)

// ToTree converts expr to a generic tree: a []any whose first element is the node tag,
// followed by the node's fields in order.
func ToTree(expr Expr) []any {
	switch expr := expr.(type) {
	case *NumberLit:
		return []any{TagNumber, expr.Value}
	case *Ident:
		return []any{TagIdent, expr.Name}
	case *Unary:
		return []any{TagUnary, string(expr.Op), ToTree(expr.Operand)}
	case *Binary:
		return []any{TagBinary, string(expr.Op), ToTree(expr.Left), ToTree(expr.Right)}
	case *Cond:
		return []any{TagCond, ToTree(expr.Cond), ToTree(expr.Then), ToTree(expr.Else)}
	case *Call:
		ret := []any{TagCall, ToTree(expr.Callee)}
		for _, arg := range expr.Args {
			ret = append(ret, ToTree(arg))
		}
		return ret
	case *Lambda:
		params := make([]any, 0, len(expr.Params))
		for _, param := range expr.Params {
			params = append(params, param)
		}
		return []any{TagLambda, params, ToTree(expr.Body)}
	case *Assign:
		return []any{TagAssign, expr.Name, ToTree(expr.Value)}
	}
	panic(fmt.Errorf("unknown expression type %T", expr))
}

func ProgramToTree(program *Program) []any {
	ret := []any{TagProgram}
	for _, stmt := range program.Statements {
		ret = append(ret, ToTree(stmt))
	}
	return ret
}

func ProgramFromTree(tree any) (*Program, error) {
	node, tag, err := treeNode(tree)
	if err != nil {
		return nil, err
	}
	if tag != TagProgram {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrBadTree, TagProgram, tag)
	}
	program := &Program{}
	for _, child := range node[1:] {
		stmt, err := FromTree(child)
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// FromTree rebuilds an expression from the form produced by ToTree.
// Numbers may be of any Go numeric type and lists may be []any or []string,
// so trees decoded from JSON, YAML or CUE are accepted as is.
func FromTree(tree any) (Expr, error) {
	node, tag, err := treeNode(tree)
	if err != nil {
		return nil, err
	}

	arity := func(n int) error {
		if len(node)-1 != n {
			return fmt.Errorf("%w: %s node needs %d fields, got %d", ErrBadTree, tag, n, len(node)-1)
		}
		return nil
	}

	switch tag {

	case TagNumber:
		if err := arity(1); err != nil {
			return nil, err
		}
		v, err := treeNumber(node[1])
		if err != nil {
			return nil, err
		}
		return &NumberLit{
			Value: v,
		}, nil

	case TagIdent:
		if err := arity(1); err != nil {
			return nil, err
		}
		name, err := treeString(node[1])
		if err != nil {
			return nil, err
		}
		return &Ident{
			Name: name,
		}, nil

	case TagUnary:
		if err := arity(2); err != nil {
			return nil, err
		}
		op, err := treeString(node[1])
		if err != nil {
			return nil, err
		}
		if Op(op) != OpNeg && Op(op) != OpNot {
			return nil, fmt.Errorf("%w: unknown unary operator %q", ErrBadTree, op)
		}
		operand, err := FromTree(node[2])
		if err != nil {
			return nil, err
		}
		return &Unary{
			Op:      Op(op),
			Operand: operand,
		}, nil

	case TagBinary:
		if err := arity(3); err != nil {
			return nil, err
		}
		op, err := treeString(node[1])
		if err != nil {
			return nil, err
		}
		if binaryPrec(Op(op)) == 0 {
			return nil, fmt.Errorf("%w: unknown binary operator %q", ErrBadTree, op)
		}
		left, err := FromTree(node[2])
		if err != nil {
			return nil, err
		}
		right, err := FromTree(node[3])
		if err != nil {
			return nil, err
		}
		return &Binary{
			Op:    Op(op),
			Left:  left,
			Right: right,
		}, nil

	case TagCond:
		if err := arity(3); err != nil {
			return nil, err
		}
		var parts [3]Expr
		for i := range parts {
			parts[i], err = FromTree(node[i+1])
			if err != nil {
				return nil, err
			}
		}
		return &Cond{
			Cond: parts[0],
			Then: parts[1],
			Else: parts[2],
		}, nil

	case TagCall:
		if len(node) < 2 {
			return nil, fmt.Errorf("%w: call node without callee", ErrBadTree)
		}
		callee, err := FromTree(node[1])
		if err != nil {
			return nil, err
		}
		args := []Expr{}
		for _, child := range node[2:] {
			arg, err := FromTree(child)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &Call{
			Callee: callee,
			Args:   args,
		}, nil

	case TagLambda:
		if err := arity(2); err != nil {
			return nil, err
		}
		params, err := treeStrings(node[1])
		if err != nil {
			return nil, err
		}
		body, err := FromTree(node[2])
		if err != nil {
			return nil, err
		}
		return &Lambda{
			Params: params,
			Body:   body,
		}, nil

	case TagAssign:
		if err := arity(2); err != nil {
			return nil, err
		}
		name, err := treeString(node[1])
		if err != nil {
			return nil, err
		}
		value, err := FromTree(node[2])
		if err != nil {
			return nil, err
		}
		return &Assign{
			Name:  name,
			Value: value,
		}, nil

	}

	return nil, fmt.Errorf("%w: unknown tag %q", ErrBadTree, tag)
}

func treeNode(tree any) ([]any, string, error) {
	node, ok := tree.([]any)
	if !ok {
		return nil, "", fmt.Errorf("%w: expected list, got %T", ErrBadTree, tree)
	}
	if len(node) == 0 {
		return nil, "", fmt.Errorf("%w: empty node", ErrBadTree)
	}
	tag, ok := node[0].(string)
	if !ok {
		return nil, "", fmt.Errorf("%w: expected tag string, got %T", ErrBadTree, node[0])
	}
	return node, tag, nil
}

func treeString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrBadTree, v)
	}
	return s, nil
}

func treeStrings(v any) ([]string, error) {
	switch v := v.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		ret := make([]string, 0, len(v))
		for _, elem := range v {
			s, err := treeString(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, s)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("%w: expected string list, got %T", ErrBadTree, v)
}

func treeNumber(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: expected number, got %T", ErrBadTree, v)
}
