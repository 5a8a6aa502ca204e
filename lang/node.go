package lang

import (
	"fmt"
	"log/slog"
)

// Node is an evaluable expression tree node. Nodes are immutable once
// built; a tree may be evaluated concurrently against independent bindings.
//
// The set of node types is closed: *Constant, *Variable, *Unary, *Binary
// and *Call.
type Node interface {
	fmt.Stringer

	// Eval computes the node's value, resolving names through b.
	Eval(b Binding) (Value, error)
	// Pos returns the byte offset of the node in its source.
	Pos() int

	node()
}

// Constant is a literal number or string.
type Constant struct {
	Value  Value
	Offset int
}

// Variable is a name resolved through the binding.
type Variable struct {
	Name   string
	Offset int
}

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Operand Node
	Offset  int
	Op      Op
}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Left   Node
	Right  Node
	Offset int
	Op     Op
}

// Call invokes a function resolved through the binding.
type Call struct {
	Name   string
	Args   []Node
	Offset int
}

func (*Constant) node() {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Call) node()     {}

func (n *Constant) Pos() int { return n.Offset }
func (n *Variable) Pos() int { return n.Offset }
func (n *Unary) Pos() int    { return n.Offset }
func (n *Binary) Pos() int   { return n.Offset }
func (n *Call) Pos() int     { return n.Offset }

func (n *Constant) String() string { return Format(n) }
func (n *Variable) String() string { return Format(n) }
func (n *Unary) String() string    { return Format(n) }
func (n *Binary) String() string   { return Format(n) }
func (n *Call) String() string     { return Format(n) }

// Eval returns the literal.
func (n *Constant) Eval(Binding) (Value, error) { return n.Value, nil }

// Eval looks the name up in b.
func (n *Variable) Eval(b Binding) (Value, error) {
	x, err := lookup(b, n.Name)
	if err != nil {
		return Null, err
	}

	return MakeValue(x), nil
}

// Eval evaluates the operand and applies the operator.
func (n *Unary) Eval(b Binding) (Value, error) {
	x, err := n.Operand.Eval(b)
	if err != nil {
		return Null, err
	}

	return n.Op.Unary(x), nil
}

// Eval evaluates the left operand, then the right, then applies the
// operator. Both operands are always evaluated, including for && and ||.
func (n *Binary) Eval(b Binding) (Value, error) {
	x, err := n.Left.Eval(b)
	if err != nil {
		return Null, err
	}

	y, err := n.Right.Eval(b)
	if err != nil {
		return Null, err
	}

	return n.Op.Binary(x, y), nil
}

// Eval resolves the function, evaluates the arguments in order and calls
// it. The argument count is checked before any argument is evaluated.
func (n *Call) Eval(b Binding) (Value, error) {
	x, err := lookup(b, n.Name)
	if err != nil {
		return Null, err
	}

	fn, ok := asFunc(x)
	if !ok {
		return Null, ErrNotCallable.With(
			slog.String("name", n.Name),
			slog.Int("offset", n.Offset),
			slog.String("type", fmt.Sprintf("%T", x)),
		)
	}

	if len(n.Args) < fn.Arity() || (!fn.Variadic && len(n.Args) > fn.Arity()) {
		return Null, ErrArity.With(
			slog.String("function", n.Name),
			slog.Int("offset", n.Offset),
			slog.Int("want", fn.Arity()),
			slog.Int("got", len(n.Args)),
		)
	}

	args := make([]Value, len(n.Args))

	for i, arg := range n.Args {
		args[i], err = arg.Eval(b)
		if err != nil {
			return Null, err
		}
	}

	return fn.Call(args...)
}

func lookup(b Binding, name string) (any, error) {
	if b == nil {
		return nil, ErrBinding.With(slog.String("name", name))
	}

	return b(name)
}
