package taicalc

type Op string

const (
	OpOr  Op = "or"
	OpAnd Op = "and"
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpLt  Op = "<"
	OpGt  Op = ">"
	OpLe  Op = "<="
	OpGe  Op = ">="
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpMod Op = "%"
	OpPow Op = "^"

	// unary
	OpNeg Op = "-"
	OpNot Op = "not"
)

const (
	precOr = iota + 1
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precPower
	precUnary
)

type binaryOp struct {
	op         Op
	prec       int
	rightAssoc bool
}

// keyed by token text; aliases normalise to one Op
var binaryOps = map[string]binaryOp{
	"or":  {OpOr, precOr, false},
	"||":  {OpOr, precOr, false},
	"and": {OpAnd, precAnd, false},
	"&&":  {OpAnd, precAnd, false},
	"==":  {OpEq, precEquality, false},
	"!=":  {OpNe, precEquality, false},
	"<":   {OpLt, precComparison, false},
	">":   {OpGt, precComparison, false},
	"<=":  {OpLe, precComparison, false},
	">=":  {OpGe, precComparison, false},
	"+":   {OpAdd, precAdditive, false},
	"-":   {OpSub, precAdditive, false},
	"*":   {OpMul, precMultiplicative, false},
	"/":   {OpDiv, precMultiplicative, false},
	"%":   {OpMod, precMultiplicative, false},
	"^":   {OpPow, precPower, true},
	"**":  {OpPow, precPower, true},
}

var unaryOps = map[string]Op{
	"-":   OpNeg,
	"not": OpNot,
	"!":   OpNot,
}

func binaryPrec(op Op) int {
	for _, b := range binaryOps {
		if b.op == op {
			return b.prec
		}
	}
	return 0
}
