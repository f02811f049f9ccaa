package taicalc

import "fmt"

type Token struct {
	Kind  TokenKind
	Text  string
	Value float64 // parsed value of number tokens
	Pos   Pos
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenNumber
	TokenIdentifier
	TokenOperator
	TokenKeyword
	TokenPunctuation
	TokenNewline
	TokenEOF
)

var tokenKindNames = [...]string{
	TokenInvalid:     "invalid",
	TokenNumber:      "number",
	TokenIdentifier:  "identifier",
	TokenOperator:    "operator",
	TokenKeyword:     "keyword",
	TokenPunctuation: "punctuation",
	TokenNewline:     "newline",
	TokenEOF:         "eof",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

var keywords = map[string]bool{
	"if":   true,
	"then": true,
	"else": true,
	"and":  true,
	"or":   true,
	"not":  true,
	"def":  true,
}

// longest first
var multiCharOperators = []string{
	"**", "==", "!=", "<=", ">=", "&&", "||", "=>",
}

var singleCharOperators = map[rune]bool{
	'+': true,
	'-': true,
	'*': true,
	'/': true,
	'%': true,
	'^': true,
	'<': true,
	'>': true,
	'=': true,
	'!': true,
}

var punctuations = map[rune]bool{
	'(': true,
	')': true,
	',': true,
	';': true,
}
