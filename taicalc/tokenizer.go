package taicalc

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type Tokenizer struct {
	source *bufio.Reader

	currPos Pos
	prevPos Pos
}

func NewTokenizer(source io.Reader) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(source),
		currPos: Pos{
			Line:   1,
			Column: 1,
		},
	}
}

// Tokenize returns all tokens of source, terminated by a TokenEOF token.
func Tokenize(source string) ([]Token, error) {
	t := NewTokenizer(strings.NewReader(source))
	var ret []Token
	for {
		token, err := t.Next()
		if err != nil {
			return nil, err
		}
		ret = append(ret, token)
		if token.Kind == TokenEOF {
			return ret, nil
		}
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, size, err := t.source.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	t.currPos.Offset += size
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.source.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Next() (Token, error) {
	t.skipWhitespace()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return Token{}, err
	}

	switch {
	case r == '#':
		t.skipComment()
		return t.Next()
	case r == '\n':
		return Token{
			Kind: TokenNewline,
			Text: "\n",
			Pos:  startPos,
		}, nil
	case isDigit(r):
		t.unreadRune()
		return t.parseNumber()
	case isIdentStart(r):
		t.unreadRune()
		return t.parseIdentifier()
	case punctuations[r]:
		return Token{
			Kind: TokenPunctuation,
			Text: string(r),
			Pos:  startPos,
		}, nil
	}

	// two-char operators before single-char ones
	if next, err := t.readRune(); err == nil {
		pair := string([]rune{r, next})
		for _, op := range multiCharOperators {
			if op == pair {
				return Token{
					Kind: TokenOperator,
					Text: pair,
					Pos:  startPos,
				}, nil
			}
		}
		t.unreadRune()
	}
	if singleCharOperators[r] {
		return Token{
			Kind: TokenOperator,
			Text: string(r),
			Pos:  startPos,
		}, nil
	}

	return Token{}, &LexError{
		Char: r,
		Pos:  startPos,
	}
}

func (t *Tokenizer) skipWhitespace() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' || !unicode.IsSpace(r) {
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) skipComment() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			// the newline still separates statements
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) parseIdentifier() (Token, error) {
	startPos := t.currPos
	var buf strings.Builder
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if !isIdentStart(r) && !isDigit(r) {
			t.unreadRune()
			break
		}
		buf.WriteRune(r)
	}
	text := buf.String()
	kind := TokenIdentifier
	if keywords[text] {
		kind = TokenKeyword
	}
	return Token{
		Kind: kind,
		Text: text,
		Pos:  startPos,
	}, nil
}

func (t *Tokenizer) parseNumber() (Token, error) {
	startPos := t.currPos
	var buf strings.Builder

	if err := t.readDigits(&buf); err != nil {
		return Token{}, err
	}

	r, err := t.readRune()
	if err != nil && err != io.EOF {
		return Token{}, err
	}
	if err == nil {
		if r == '.' {
			buf.WriteRune(r)
			if err := t.readDigits(&buf); err != nil {
				return Token{}, err
			}
		} else {
			t.unreadRune()
		}
	}

	if t.atExponent() {
		// marker and optional sign, checked by atExponent
		r, _ := t.readRune()
		buf.WriteRune(r)
		r, _ = t.readRune()
		if r == '+' || r == '-' {
			buf.WriteRune(r)
		} else {
			t.unreadRune()
		}
		if err := t.readDigits(&buf); err != nil {
			return Token{}, err
		}
	}

	text := buf.String()
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, err
	}

	return Token{
		Kind:  TokenNumber,
		Text:  text,
		Value: value,
		Pos:   startPos,
	}, nil
}

func (t *Tokenizer) readDigits(buf *strings.Builder) error {
	for {
		r, err := t.readRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !isDigit(r) {
			t.unreadRune()
			return nil
		}
		buf.WriteRune(r)
	}
}

// atExponent reports whether the upcoming input is e|E [+-] digit.
func (t *Tokenizer) atExponent() bool {
	b, _ := t.source.Peek(3)
	if len(b) < 2 || (b[0] != 'e' && b[0] != 'E') {
		return false
	}
	if isDigit(rune(b[1])) {
		return true
	}
	return (b[1] == '+' || b[1] == '-') &&
		len(b) == 3 &&
		isDigit(rune(b[2]))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r == '_'
}
