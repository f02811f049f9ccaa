package trees

import (
	"io"

	"github.com/reusee/taicalc/taicalc"
)

func EncodeExpr(w io.Writer, format Format, expr taicalc.Expr) error {
	return Encode(w, format, taicalc.ToTree(expr))
}

func EncodeProgram(w io.Writer, format Format, program *taicalc.Program) error {
	return Encode(w, format, taicalc.ProgramToTree(program))
}

func DecodeExpr(r io.Reader, format Format) (taicalc.Expr, error) {
	tree, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return taicalc.FromTree(tree)
}

func DecodeProgram(r io.Reader, format Format) (*taicalc.Program, error) {
	tree, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return taicalc.ProgramFromTree(tree)
}
