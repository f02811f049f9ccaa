package taicalc

// Expr is one of *NumberLit, *Ident, *Unary, *Binary, *Cond, *Call, *Lambda, *Assign.
type Expr interface {
	exprNode()
}

type NumberLit struct {
	Value float64
}

type Ident struct {
	Name string
}

type Unary struct {
	Op      Op
	Operand Expr
}

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

type Cond struct {
	Cond Expr
	Then Expr
	Else Expr
}

type Call struct {
	Callee Expr
	Args   []Expr
}

type Lambda struct {
	Params []string
	Body   Expr
}

// Assign binds Name in the current scope. def statements parse to an Assign of a Lambda.
type Assign struct {
	Name  string
	Value Expr
}

func (*NumberLit) exprNode() {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Cond) exprNode()      {}
func (*Call) exprNode()      {}
func (*Lambda) exprNode()    {}
func (*Assign) exprNode()    {}

type Program struct {
	Statements []Expr
}
