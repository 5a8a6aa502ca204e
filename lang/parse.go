package lang

import (
	"strconv"
)

// DefaultMaxDepth is the default limit on nested groups and call argument
// lists.
const DefaultMaxDepth = 256

// Parse lexes and parses text into an expression tree with the default
// nesting limit.
func Parse(text string) (Node, error) {
	return parse(text, DefaultMaxDepth)
}

func parse(text string, maxDepth int) (Node, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}

	return ParseTokens(text, tokens, maxDepth)
}

// ParseTokens builds a tree from tokens produced by [Lex] over source.
// A maxDepth of 0 disables the nesting limit.
func ParseTokens(source string, tokens []Token, maxDepth int) (Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenTerminal {
		tokens = append(tokens, Token{
			Kind:   TokenTerminal,
			Text:   terminalText,
			Offset: len(source),
		})
	}

	p := &parser{
		source:   source,
		tokens:   tokens,
		maxDepth: maxDepth,
	}

	root, err := p.expression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenTerminal {
		return nil, syntaxError(p.source, tok, "unexpected "+strconv.Quote(tok.Text)+" after expression")
	}

	return root, nil
}

// parser holds the parser state.
type parser struct {
	source   string
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenTerminal {
		p.pos++
	}

	return tok
}

// accept consumes the next token if it is the punctuator sym.
func (p *parser) accept(sym string) bool {
	if p.peek().Kind == TokenPunctuator && p.peek().IsOperator(sym) {
		p.advance()

		return true
	}

	return false
}

// expression parses at the lowest precedence level, tracking nesting depth.
func (p *parser) expression() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, syntaxError(p.source, p.peek(),
			"nesting exceeds "+strconv.Itoa(p.maxDepth)+" levels")
	}

	return p.binary(0)
}

// binary parses one precedence level and folds its operators left.
func (p *parser) binary(level int) (Node, error) {
	if level == len(precedence) {
		return p.unary()
	}

	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		op, ok := p.binaryAt(level, tok)
		if !ok {
			return left, nil
		}

		p.advance()

		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}

		left = &Binary{Op: op, Left: left, Right: right, Offset: tok.Offset}
	}
}

func (p *parser) binaryAt(level int, tok Token) (Op, bool) {
	if tok.Kind != TokenPunctuator {
		return OpInvalid, false
	}

	for _, op := range precedence[level] {
		if tok.IsOperator(opSymbol[op]) {
			return op, true
		}
	}

	return OpInvalid, false
}

// unary parses a single optional prefix operator. Its operand is a group,
// so a second prefix operator is a syntax error.
func (p *parser) unary() (Node, error) {
	tok := p.peek()

	if tok.Kind == TokenPunctuator {
		if op, ok := UnaryOp(tok.Text); ok {
			p.advance()

			operand, err := p.group()
			if err != nil {
				return nil, err
			}

			return &Unary{Op: op, Operand: operand, Offset: tok.Offset}, nil
		}
	}

	return p.group()
}

func (p *parser) group() (Node, error) {
	if !p.accept("(") {
		return p.primary()
	}

	inner, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.accept(")") {
		return nil, syntaxError(p.source, p.peek(), "expected \")\"")
	}

	return inner, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.advance()

	switch tok.Kind {
	case TokenNumber, TokenString:
		return &Constant{Value: tok.Value, Offset: tok.Offset}, nil

	case TokenIdentifier:
		if p.accept("(") {
			return p.call(tok)
		}

		return &Variable{Name: tok.Text, Offset: tok.Offset}, nil

	default:
		return nil, syntaxError(p.source, tok, "unexpected "+strconv.Quote(tok.Text))
	}
}

// call parses a comma-separated argument list after the opening paren.
func (p *parser) call(name Token) (Node, error) {
	n := &Call{Name: name.Text, Offset: name.Offset}

	if p.accept(")") {
		return n, nil
	}

	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}

		n.Args = append(n.Args, arg)

		if p.accept(",") {
			continue
		}

		if p.accept(")") {
			return n, nil
		}

		return nil, syntaxError(p.source, p.peek(), "expected \",\" or \")\" in call to "+name.Text)
	}
}
