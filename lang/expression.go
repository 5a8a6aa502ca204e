package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/entap/expr/log"
)

// Expression holds one compiled expression tree and evaluates it against
// bindings. The zero value is an empty Expression ready for Compile.
//
// An Expression is not synchronised: Compile must not race with Evaluate on
// the same instance. The tree returned by Root is immutable and may be
// shared freely.
type Expression struct {
	logger   log.Logger
	root     Node
	source   string
	maxDepth int
	cache    bool
}

// Option configures an Expression.
type Option func(*Expression)

// WithLogger sets the logger used for compile and evaluate tracing.
func WithLogger(logger log.Logger) Option {
	return func(e *Expression) {
		e.logger = logger
	}
}

// WithMaxDepth limits the nesting of groups and call arguments. A depth of
// 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(e *Expression) {
		e.maxDepth = max(depth, 0)
	}
}

// WithCache shares compiled trees through the process-wide compile cache.
func WithCache(enable bool) Option {
	return func(e *Expression) {
		e.cache = enable
	}
}

// New returns an empty Expression.
func New(opts ...Option) *Expression {
	e := &Expression{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compile returns an Expression compiled from text.
func Compile(text string, opts ...Option) (*Expression, error) {
	e := New(opts...)

	err := e.Compile(text)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string, opts ...Option) *Expression {
	e, err := Compile(text, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// Compile lexes and parses text, replacing any previously compiled tree.
// On failure the Expression is left without a tree.
func (e *Expression) Compile(text string) error {
	e.root, e.source = nil, ""

	var (
		root Node
		err  error
	)

	if e.cache {
		root, err = compileCached(text, e.maxDepth)
	} else {
		root, err = parse(text, e.maxDepth)
	}

	if err != nil {
		e.logger.Trace("compile failed",
			slog.String("source", text),
			slog.Any("error", err),
		)

		return err
	}

	e.root, e.source = root, text

	e.logger.Trace("compiled",
		slog.String("source", text),
		slog.Bool("cache", e.cache),
	)

	return nil
}

// CompileReader compiles the whole content of r.
func (e *Expression) CompileReader(ctx context.Context, r io.Reader) error {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		e.root, e.source = nil, ""

		return ErrReadInput.Wrap(err)
	}

	e.logger.TraceContext(ctx, "read input", slog.Int("source_bytes", len(data)))

	return e.Compile(string(data))
}

// Source returns the text of the compiled tree, or "" without one.
func (e *Expression) Source() string { return e.source }

// Root returns the compiled tree, or nil without one.
func (e *Expression) Root() Node { return e.root }

// String returns the canonical rendering of the compiled tree.
func (e *Expression) String() string {
	if e.root == nil {
		return ""
	}

	return Format(e.root)
}

// Evaluate evaluates the compiled tree. Names resolve through the math
// library first and then through b. With a nil b, names unknown to the
// math library resolve to 0.
func (e *Expression) Evaluate(b Binding) (Value, error) {
	if e.root == nil {
		return Null, ErrNoTree
	}

	v, err := e.root.Eval(MathBinding(b))
	if err != nil {
		e.logger.Trace("evaluate failed",
			slog.String("source", e.source),
			slog.Any("error", err),
		)

		return Null, err
	}

	e.logger.Trace("evaluated",
		slog.String("source", e.source),
		slog.Any("result", v),
	)

	return v, nil
}

// EvaluateMap evaluates with m as the binding. Names missing from m fail
// with ErrBinding.
func EvaluateMap[V any](e *Expression, m map[string]V) (Value, error) {
	return e.Evaluate(MapBinding(m))
}

// EvaluateAs evaluates and converts the result with [Value.As].
func (e *Expression) EvaluateAs(k Kind, b Binding) (any, error) {
	v, err := e.Evaluate(b)
	if err != nil {
		return nil, err
	}

	return v.As(k)
}

// Number evaluates and converts the result to a float64.
func (e *Expression) Number(b Binding) (float64, error) {
	v, err := e.Evaluate(b)

	return v.AsNumber(), err
}

// Bool evaluates and converts the result to a boolean.
func (e *Expression) Bool(b Binding) (bool, error) {
	v, err := e.Evaluate(b)

	return v.AsBool(), err
}

// Text evaluates and converts the result to a string.
func (e *Expression) Text(b Binding) (string, error) {
	v, err := e.Evaluate(b)
	if err != nil {
		return "", err
	}

	return v.AsString(), nil
}
