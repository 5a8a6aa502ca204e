package lang

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	// TokenTerminal marks the end of input.
	TokenTerminal TokenKind = iota
	// TokenNumber is a decimal or hexadecimal numeric literal.
	TokenNumber
	// TokenString is a quoted string literal.
	TokenString
	// TokenIdentifier is a variable or function name.
	TokenIdentifier
	// TokenPunctuator is an operator or delimiter.
	TokenPunctuator
)

// terminalText is the display text of the end-of-input token.
const terminalText = "(end)"

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenTerminal:
		return "terminal"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenIdentifier:
		return "identifier"
	case TokenPunctuator:
		return "punctuator"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of an expression.
//
// Text is the source substring as written (quotes and escapes included).
// Value holds the decoded literal for numbers and strings, and the symbol
// or name as a string for punctuators and identifiers.
type Token struct {
	Value  Value
	Text   string
	Offset int
	Kind   TokenKind
}

// IsOperator reports whether t is the punctuator or identifier sym.
func (t Token) IsOperator(sym string) bool {
	switch t.Kind {
	case TokenPunctuator, TokenIdentifier:
		return t.Text == sym
	default:
		return false
	}
}

// String returns the token text.
func (t Token) String() string { return t.Text }
