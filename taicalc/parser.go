package taicalc

type Parser struct {
	tokens []Token
	pos    int

	// newlines are insignificant inside parentheses
	nesting int
}

// NewParser returns a parser over tokens, which must end with a TokenEOF token.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		var pos Pos
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, Token{Kind: TokenEOF, Pos: pos})
	}
	return &Parser{
		tokens: tokens,
	}
}

// Parse parses a program of statements separated by ';' or newlines.
func Parse(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

// ParseExpr parses source consisting of exactly one expression.
func ParseExpr(source string) (Expr, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseSingle()
}

func (p *Parser) cur() Token {
	if p.nesting > 0 {
		p.skipNewlines()
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// peekRaw returns the token n positions after the current one, newlines included.
func (p *Parser) peekRaw(n int) Token {
	idx := min(p.pos+n, len(p.tokens)-1)
	return p.tokens[idx]
}

func (p *Parser) skipNewlines() {
	for p.tokens[p.pos].Kind == TokenNewline {
		p.advance()
	}
}

func (p *Parser) skipSeparators() {
	for {
		t := p.tokens[p.pos]
		if t.Kind == TokenNewline || isPunct(t, ";") {
			p.advance()
			continue
		}
		return
	}
}

func (p *Parser) errorf(expected string) error {
	return &ParseError{
		Expected: expected,
		Found:    p.cur(),
	}
}

func (p *Parser) expectPunct(text string) error {
	if !isPunct(p.cur(), text) {
		return p.errorf("'" + text + "'")
	}
	p.advance()
	return nil
}

func (p *Parser) expectKeyword(text string) error {
	t := p.cur()
	if t.Kind != TokenKeyword || t.Text != text {
		return p.errorf("'" + text + "'")
	}
	p.advance()
	return nil
}

func (p *Parser) expectOperator(text string) error {
	t := p.cur()
	if t.Kind != TokenOperator || t.Text != text {
		return p.errorf("'" + text + "'")
	}
	p.advance()
	return nil
}

func (p *Parser) ParseProgram() (*Program, error) {
	program := new(Program)
	p.skipSeparators()
	for p.cur().Kind != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)

		t := p.cur()
		if t.Kind == TokenEOF {
			break
		}
		if t.Kind != TokenNewline && !isPunct(t, ";") {
			return nil, p.errorf("';' or newline")
		}
		p.skipSeparators()
	}
	if len(program.Statements) == 0 {
		return nil, p.errorf("expression")
	}
	return program, nil
}

func (p *Parser) ParseSingle() (Expr, error) {
	p.skipNewlines()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.cur().Kind != TokenEOF {
		return nil, p.errorf("end of input")
	}
	return expr, nil
}

func (p *Parser) parseStatement() (Expr, error) {
	t := p.cur()

	if t.Kind == TokenKeyword && t.Text == "def" {
		return p.parseDef()
	}

	if t.Kind == TokenIdentifier {
		next := p.peekRaw(1)
		if next.Kind == TokenOperator && next.Text == "=" {
			p.advance()
			p.advance()
			p.skipNewlines()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &Assign{
				Name:  t.Text,
				Value: value,
			}, nil
		}
	}

	return p.parseExpression()
}

func (p *Parser) parseDef() (Expr, error) {
	p.advance() // def

	t := p.cur()
	if t.Kind != TokenIdentifier {
		return nil, p.errorf("function name")
	}
	name := t.Text
	p.advance()

	if !isPunct(p.cur(), "(") {
		return nil, p.errorf("'('")
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Assign{
		Name: name,
		Value: &Lambda{
			Params: params,
			Body:   body,
		},
	}, nil
}

// parseParams parses '(' [ident {',' ident}] ')'.
func (p *Parser) parseParams() ([]string, error) {
	p.advance() // (
	p.nesting++
	defer func() {
		p.nesting--
	}()

	params := []string{}
	seen := make(map[string]bool)
	if isPunct(p.cur(), ")") {
		p.advance()
		return params, nil
	}
	for {
		t := p.cur()
		if t.Kind != TokenIdentifier {
			return nil, p.errorf("parameter name")
		}
		if seen[t.Text] {
			return nil, p.errorf("distinct parameter name")
		}
		seen[t.Text] = true
		params = append(params, t.Text)
		p.advance()

		t = p.cur()
		if isPunct(t, ")") {
			p.advance()
			return params, nil
		}
		if !isPunct(t, ",") {
			return nil, p.errorf("',' or ')'")
		}
		p.advance()
	}
}

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseBinary(precOr)
}

// parseBinary is the precedence-climbing loop.
func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.cur()
		if t.Kind != TokenOperator && t.Kind != TokenKeyword {
			break
		}
		b, ok := binaryOps[t.Text]
		if !ok || b.prec < minPrec {
			break
		}
		p.advance()
		p.skipNewlines()

		next := b.prec + 1
		if b.rightAssoc {
			next = b.prec
		}
		rhs, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}
		lhs = &Binary{
			Op:    b.op,
			Left:  lhs,
			Right: rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	t := p.cur()
	if t.Kind == TokenOperator || t.Kind == TokenKeyword {
		if op, ok := unaryOps[t.Text]; ok {
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &Unary{
				Op:      op,
				Operand: operand,
			}, nil
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for isPunct(p.cur(), "(") {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		expr = &Call{
			Callee: expr,
			Args:   args,
		}
	}
	return expr, nil
}

func (p *Parser) parseArgs() ([]Expr, error) {
	p.advance() // (
	p.nesting++
	defer func() {
		p.nesting--
	}()

	args := []Expr{}
	if isPunct(p.cur(), ")") {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		t := p.cur()
		if isPunct(t, ")") {
			p.advance()
			return args, nil
		}
		if !isPunct(t, ",") {
			return nil, p.errorf("',' or ')'")
		}
		p.advance()
	}
}

func (p *Parser) parsePrimary() (Expr, error) {
	t := p.cur()

	switch t.Kind {

	case TokenNumber:
		p.advance()
		return &NumberLit{
			Value: t.Value,
		}, nil

	case TokenIdentifier:
		next := p.peekRaw(1)
		if next.Kind == TokenOperator && next.Text == "=>" {
			p.advance()
			p.advance()
			return p.parseLambdaBody([]string{t.Text})
		}
		p.advance()
		return &Ident{
			Name: t.Text,
		}, nil

	case TokenKeyword:
		if t.Text == "if" {
			return p.parseCond()
		}

	case TokenPunctuation:
		if t.Text == "(" {
			if p.atLambdaParams() {
				params, err := p.parseParams()
				if err != nil {
					return nil, err
				}
				if err := p.expectOperator("=>"); err != nil {
					return nil, err
				}
				return p.parseLambdaBody(params)
			}
			return p.parseGroup()
		}

	}

	return nil, p.errorf("expression")
}

func (p *Parser) parseGroup() (Expr, error) {
	p.advance() // (
	p.nesting++
	expr, err := p.parseExpression()
	if err != nil {
		p.nesting--
		return nil, err
	}
	// the closing paren is checked while still nested so newlines before it are skipped
	err = p.expectPunct(")")
	p.nesting--
	if err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseLambdaBody(params []string) (Expr, error) {
	p.skipNewlines()
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Lambda{
		Params: params,
		Body:   body,
	}, nil
}

// atLambdaParams looks ahead from '(' for an identifier list, a matching ')' and '=>'.
func (p *Parser) atLambdaParams() bool {
	i := p.pos + 1
	skip := func() {
		for i < len(p.tokens) && p.tokens[i].Kind == TokenNewline {
			i++
		}
	}
	at := func(kind TokenKind, text string) bool {
		skip()
		if i >= len(p.tokens) {
			return false
		}
		t := p.tokens[i]
		return t.Kind == kind && (text == "" || t.Text == text)
	}

	if !at(TokenPunctuation, ")") {
		for {
			if !at(TokenIdentifier, "") {
				return false
			}
			i++
			if at(TokenPunctuation, ")") {
				break
			}
			if !at(TokenPunctuation, ",") {
				return false
			}
			i++
		}
	}
	i++ // )
	return at(TokenOperator, "=>")
}

func (p *Parser) parseCond() (Expr, error) {
	p.advance() // if
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Cond{
		Cond: cond,
		Then: then,
		Else: els,
	}, nil
}

func isPunct(t Token, text string) bool {
	return t.Kind == TokenPunctuation && t.Text == text
}
