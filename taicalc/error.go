package taicalc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLex is the category of tokenizing failures.
	ErrLex = errors.New("lex error")
	// ErrParse is the category of syntax failures.
	ErrParse = errors.New("parse error")
	// ErrEval is the category of evaluation failures.
	ErrEval = errors.New("eval error")
)

type LexError struct {
	Char rune
	Pos  Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at %s", e.Char, e.Pos)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

type ParseError struct {
	Expected string
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %s", e.Expected, e.Found, e.Found.Pos)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func (e *ParseError) Position() Pos {
	return e.Found.Pos
}

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrEval
}

type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function: %s", e.Name)
}

func (e *UndefinedFunctionError) Unwrap() error {
	return ErrEval
}

type ArityMismatchError struct {
	Name     string
	Expected []int // accepted argument counts
	AtLeast  bool  // Expected[0] is a minimum
	Got      int
}

func (e *ArityMismatchError) Error() string {
	name := e.Name
	if name == "" {
		name = "<lambda>"
	}
	var expected string
	switch {
	case e.AtLeast && len(e.Expected) > 0:
		expected = fmt.Sprintf("at least %d", e.Expected[0])
	default:
		strs := make([]string, 0, len(e.Expected))
		for _, n := range e.Expected {
			strs = append(strs, fmt.Sprint(n))
		}
		expected = strings.Join(strs, " or ")
	}
	return fmt.Sprintf("%s: expected %s arguments, got %d", name, expected, e.Got)
}

func (e *ArityMismatchError) Unwrap() error {
	return ErrEval
}

type NotCallableError struct {
	Value string
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("not callable: %s", e.Value)
}

func (e *NotCallableError) Unwrap() error {
	return ErrEval
}

// TypeError reports a function value used where a number is required.
type TypeError struct {
	Op    string
	Value string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected number, got %s", e.Op, e.Value)
}

func (e *TypeError) Unwrap() error {
	return ErrEval
}

type DepthExceededError struct {
	Max int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("call depth exceeds %d", e.Max)
}

func (e *DepthExceededError) Unwrap() error {
	return ErrEval
}

// ErrorPos returns the source position carried by lex and parse errors.
func ErrorPos(err error) (Pos, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Found.Pos, true
	}
	return Pos{}, false
}

// Snippet renders the source line of pos with a caret under the column.
func Snippet(source string, pos Pos) string {
	lines := strings.Split(source, "\n")
	idx := pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}

	var sb strings.Builder
	line := lines[idx]
	sb.WriteString(line)
	sb.WriteString("\n")

	runes := []rune(line)
	col := pos.Column - 1
	for i, r := range runes {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteString("\t")
		} else {
			for range runeWidth(r) {
				sb.WriteString(" ")
			}
		}
	}
	sb.WriteString("^\n")

	return sb.String()
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
