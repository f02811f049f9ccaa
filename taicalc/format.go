package taicalc

import (
	"math"
	"strings"
)

// Format renders expr as source text with the fewest parentheses that parse back to the same tree.
func Format(expr Expr) string {
	var sb strings.Builder
	formatExpr(&sb, expr)
	return sb.String()
}

// FormatProgram renders one statement per line.
func FormatProgram(program *Program) string {
	var sb strings.Builder
	for i, stmt := range program.Statements {
		if i > 0 {
			sb.WriteString("\n")
		}
		formatStatement(&sb, stmt)
	}
	return sb.String()
}

func formatStatement(sb *strings.Builder, stmt Expr) {
	if assign, ok := stmt.(*Assign); ok {
		if lambda, ok := assign.Value.(*Lambda); ok {
			sb.WriteString("def ")
			sb.WriteString(assign.Name)
			sb.WriteString("(")
			sb.WriteString(strings.Join(lambda.Params, ", "))
			sb.WriteString(") = ")
			formatExpr(sb, lambda.Body)
			return
		}
		sb.WriteString(assign.Name)
		sb.WriteString(" = ")
		formatExpr(sb, assign.Value)
		return
	}
	formatExpr(sb, stmt)
}

const precPrimary = precUnary + 1

func exprPrec(expr Expr) int {
	switch expr := expr.(type) {
	case *NumberLit, *Ident, *Call:
		return precPrimary
	case *Unary:
		return precUnary
	case *Binary:
		return binaryPrec(expr.Op)
	}
	// conditionals, lambdas and assignments extend as far right as possible
	return 0
}

func formatOperand(sb *strings.Builder, expr Expr, paren bool) {
	if paren {
		sb.WriteString("(")
	}
	formatExpr(sb, expr)
	if paren {
		sb.WriteString(")")
	}
}

func formatExpr(sb *strings.Builder, expr Expr) {
	switch expr := expr.(type) {

	case *NumberLit:
		sb.WriteString(formatLiteral(expr.Value))

	case *Ident:
		sb.WriteString(expr.Name)

	case *Unary:
		if expr.Op == OpNot {
			sb.WriteString("not ")
		} else {
			sb.WriteString(string(expr.Op))
		}
		formatOperand(sb, expr.Operand, exprPrec(expr.Operand) < precUnary)

	case *Binary:
		prec := binaryPrec(expr.Op)
		rightAssoc := expr.Op == OpPow
		leftPrec := exprPrec(expr.Left)
		rightPrec := exprPrec(expr.Right)
		formatOperand(sb, expr.Left, leftPrec < prec || leftPrec == prec && rightAssoc)
		sb.WriteString(" ")
		sb.WriteString(string(expr.Op))
		sb.WriteString(" ")
		formatOperand(sb, expr.Right, rightPrec < prec || rightPrec == prec && !rightAssoc)

	case *Cond:
		sb.WriteString("if ")
		formatExpr(sb, expr.Cond)
		sb.WriteString(" then ")
		formatExpr(sb, expr.Then)
		sb.WriteString(" else ")
		formatExpr(sb, expr.Else)

	case *Call:
		formatOperand(sb, expr.Callee, exprPrec(expr.Callee) < precPrimary)
		sb.WriteString("(")
		for i, arg := range expr.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatExpr(sb, arg)
		}
		sb.WriteString(")")

	case *Lambda:
		if len(expr.Params) == 1 {
			sb.WriteString(expr.Params[0])
		} else {
			sb.WriteString("(")
			sb.WriteString(strings.Join(expr.Params, ", "))
			sb.WriteString(")")
		}
		sb.WriteString(" => ")
		formatExpr(sb, expr.Body)

	case *Assign:
		sb.WriteString("(")
		sb.WriteString(expr.Name)
		sb.WriteString(" = ")
		formatExpr(sb, expr.Value)
		sb.WriteString(")")

	}
}

// formatLiteral spells infinities as an overflowing literal, which lexes back to the same value.
func formatLiteral(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "1e999"
	case math.IsInf(v, -1):
		return "-1e999"
	}
	return FormatNumber(v, -1)
}
