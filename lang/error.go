package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Predefined errors (sentinel values).
var (
	ErrLexical     = NewError("lexical error")
	ErrSyntax      = NewError("syntax error")
	ErrArity       = NewError("argument count mismatch")
	ErrCast        = NewError("invalid conversion")
	ErrNotCallable = NewError("not callable")
	ErrBinding     = NewError("unbound name")
	ErrCall        = NewError("function call failed")
	ErrNoTree      = NewError("no compiled expression")
	ErrReadInput   = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with Wrap or With remain identifiable with
// errors.Is against that sentinel.
type Error struct {
	base  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// SourceError reports a lexical or syntax error at a byte offset of the
// expression source.
type SourceError struct {
	kind    *Error
	Source  string
	Message string
	Text    string // offending token text, if any
	Offset  int
}

func lexicalError(source string, offset int, msg string) *SourceError {
	return &SourceError{
		kind:    ErrLexical,
		Source:  source,
		Message: msg,
		Offset:  offset,
	}
}

func syntaxError(source string, tok Token, msg string) *SourceError {
	return &SourceError{
		kind:    ErrSyntax,
		Source:  source,
		Message: msg,
		Text:    tok.Text,
		Offset:  tok.Offset,
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	var b strings.Builder

	b.WriteString(e.kind.msg)
	b.WriteString(" at offset ")
	b.WriteString(strconv.Itoa(e.Offset))
	b.WriteString(": ")
	b.WriteString(e.Message)

	return b.String()
}

// Unwrap returns ErrLexical or ErrSyntax.
func (e *SourceError) Unwrap() error { return e.kind }

// Position returns the 1-based line and column (in runes) of the offset.
func (e *SourceError) Position() (line, col int) {
	off := min(max(e.Offset, 0), len(e.Source))
	head := e.Source[:off]

	line = 1 + strings.Count(head, "\n")
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		head = head[i+1:]
	}

	return line, 1 + utf8.RuneCountInString(head)
}

// Snippet renders the source line holding the error with a caret under the
// offending column.
func (e *SourceError) Snippet() string {
	line, col := e.Position()

	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}

	num := strconv.Itoa(line)

	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(lines[line-1])
	b.WriteByte('\n')
	// +5 accounts for 2 leading spaces and " | ".
	b.WriteString(strings.Repeat(" ", len(num)+5+col-1))
	b.WriteString("^\n")

	return b.String()
}

// LogValue implements slog.LogValuer.
func (e *SourceError) LogValue() slog.Value {
	line, col := e.Position()

	attrs := []slog.Attr{
		slog.String("error", e.kind.msg),
		slog.String("message", e.Message),
		slog.Int("offset", e.Offset),
		slog.Int("line", line),
		slog.Int("column", col),
	}

	if e.Text != "" {
		attrs = append(attrs, slog.String("token", e.Text))
	}

	return slog.GroupValue(attrs...)
}
