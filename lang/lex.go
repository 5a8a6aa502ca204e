package lang

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// punctuators lists every operator and delimiter. Two-character symbols
// come first so that the longest match wins.
var punctuators = [...]string{
	"<=", ">=", "==", "!=", "&&", "||", ">>", "<<", "**",
	"+", "-", "*", "/", "%", "(", ")", ".", ",",
	"<", ">", "&", "|", "^", "!", "~",
}

// Lex splits text into tokens. The final token is always a TokenTerminal
// positioned at len(text).
func Lex(text string) ([]Token, error) {
	l := lexer{src: text}

	return l.run()
}

type lexer struct {
	src    string
	tokens []Token
	pos    int
}

func (l *lexer) run() ([]Token, error) {
	for {
		l.skipSpace()

		if l.pos >= len(l.src) {
			break
		}

		var err error

		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

		switch {
		case isDecimal(r):
			err = l.number()
		case r == '"' || r == '\'':
			err = l.quoted(byte(r))
		case isIdentifierStart(r):
			l.identifier()
		default:
			err = l.punctuator(r)
		}

		if err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenTerminal,
		Text:   terminalText,
		Offset: len(l.src),
	})

	return l.tokens, nil
}

func (l *lexer) emit(kind TokenKind, start int, value Value) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Text:   l.src[start:l.pos],
		Offset: start,
		Value:  value,
	})
}

func (l *lexer) peekByte() byte {
	if l.pos < len(l.src) {
		return l.src[l.pos]
	}

	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isSpace(r) {
			return
		}

		l.pos += size
	}
}

// digits consumes a run of bytes accepted by ok and reports its length.
func (l *lexer) digits(ok func(rune) bool) int {
	start := l.pos
	for l.pos < len(l.src) && ok(rune(l.src[l.pos])) {
		l.pos++
	}

	return l.pos - start
}

func (l *lexer) number() error {
	start := l.pos

	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) &&
		(l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		l.pos += 2

		digitsStart := l.pos
		if l.digits(isHex) == 0 {
			return lexicalError(l.src, start, "missing hexadecimal digits")
		}

		var n float64
		for _, c := range l.src[digitsStart:l.pos] {
			n = n*16 + float64(hexValue(c))
		}

		l.emit(TokenNumber, start, NumberValue(n))

		return nil
	}

	l.digits(isDecimal)

	if l.peekByte() == '.' {
		l.pos++

		if l.digits(isDecimal) == 0 {
			return lexicalError(l.src, l.pos, "missing digits after decimal point")
		}
	}

	if c := l.peekByte(); c == 'e' || c == 'E' {
		l.pos++

		if c := l.peekByte(); c == '+' || c == '-' {
			l.pos++
		}

		if l.digits(isDecimal) == 0 {
			return lexicalError(l.src, l.pos, "missing digits in exponent")
		}
	}

	// Out-of-range literals still parse to ±Inf or 0.
	n, _ := strconv.ParseFloat(l.src[start:l.pos], 64)

	l.emit(TokenNumber, start, NumberValue(n))

	return nil
}

func (l *lexer) quoted(quote byte) error {
	start := l.pos
	l.pos++

	var b strings.Builder

	for {
		if l.pos >= len(l.src) {
			return lexicalError(l.src, start, "unclosed quote")
		}

		c := l.src[l.pos]

		switch {
		case c == quote:
			l.pos++
			l.emit(TokenString, start, StringValue(b.String()))

			return nil

		case c == '\\':
			l.pos++

			if l.pos >= len(l.src) {
				return lexicalError(l.src, start, "unclosed quote")
			}

			l.escape(&b)

		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += size

			if r == utf8.RuneError && size == 1 {
				b.WriteByte(c)
			} else {
				b.WriteRune(r)
			}
		}
	}
}

// escape decodes the escape sequence following a backslash.
func (l *lexer) escape(b *strings.Builder) {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	switch r {
	case 'b':
		b.WriteByte('\b')
	case 't':
		b.WriteByte('\t')
	case 'n':
		b.WriteByte('\n')
	case 'v':
		b.WriteByte('\v')
	case 'f':
		b.WriteByte('\f')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case 'x':
		b.WriteRune(l.hexEscape('x', 2))
	case 'u':
		b.WriteRune(l.hexEscape('u', 4))
	default:
		// Quotes, backslash and any other character stand for themselves.
		b.WriteRune(r)
	}
}

// hexEscape reads up to limit hex digits. Without any digits the escape
// degrades to the literal letter.
func (l *lexer) hexEscape(letter rune, limit int) rune {
	var (
		code rune
		n    int
	)

	for n < limit && l.pos < len(l.src) && isHex(rune(l.src[l.pos])) {
		code = code*16 + rune(hexValue(rune(l.src[l.pos])))
		l.pos++
		n++
	}

	if n == 0 {
		return letter
	}

	return code
}

func (l *lexer) identifier() {
	start := l.pos

	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentifierPart(r) {
			break
		}

		l.pos += size
	}

	l.emit(TokenIdentifier, start, StringValue(l.src[start:l.pos]))
}

func (l *lexer) punctuator(r rune) error {
	for _, p := range punctuators {
		if strings.HasPrefix(l.src[l.pos:], p) {
			start := l.pos
			l.pos += len(p)
			l.emit(TokenPunctuator, start, StringValue(p))

			return nil
		}
	}

	return lexicalError(l.src, l.pos, "unknown character "+strconv.QuoteRune(r))
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff',
		'\n', '\r', '\u2028', '\u2029':
		return true
	}

	return unicode.Is(unicode.Zs, r)
}

func isDecimal(r rune) bool { return '0' <= r && r <= '9' }

func isHex(r rune) bool {
	return isDecimal(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func hexValue(r rune) int {
	switch {
	case isDecimal(r):
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

func isIdentifierStart(r rune) bool {
	return r == '$' || r == '_' ||
		unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm,
			unicode.Lo, unicode.Nl)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || r == '\u200c' || r == '\u200d' ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
