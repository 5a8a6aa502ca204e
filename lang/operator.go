package lang

import (
	"math"
	"strconv"
)

// Op is a unary or binary operator.
type Op uint8

// Binary operators, ordered from lowest to highest precedence level.
const (
	OpInvalid Op = iota
	OpOr         // ||
	OpAnd        // &&
	OpBitOr      // |
	OpBitXor     // ^
	OpBitAnd     // &
	OpEq         // ==
	OpNe         // !=
	OpLt         // <
	OpGt         // >
	OpLe         // <=
	OpGe         // >=
	OpShl        // <<
	OpShr        // >>
	OpAdd        // +
	OpSub        // -
	OpMul        // *
	OpDiv        // /
	OpMod        // %
	OpPow        // **

	// Unary operators.
	OpNot   // !
	OpCompl // ~
	OpPlus  // +
	OpNeg   // -

	opCount
)

var opSymbol = [opCount]string{
	OpInvalid: "",
	OpOr:      "||",
	OpAnd:     "&&",
	OpBitOr:   "|",
	OpBitXor:  "^",
	OpBitAnd:  "&",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpGt:      ">",
	OpLe:      "<=",
	OpGe:      ">=",
	OpShl:     "<<",
	OpShr:     ">>",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "%",
	OpPow:     "**",
	OpNot:     "!",
	OpCompl:   "~",
	OpPlus:    "+",
	OpNeg:     "-",
}

// precedence groups the binary operators into levels, lowest first. Every
// level folds left.
var precedence = [...][]Op{
	{OpOr},
	{OpAnd},
	{OpBitOr},
	{OpBitXor},
	{OpBitAnd},
	{OpEq, OpNe},
	{OpLt, OpGt, OpLe, OpGe},
	{OpShl, OpShr},
	{OpAdd, OpSub},
	{OpMul, OpDiv, OpMod},
	{OpPow},
}

var unaryOps = [...]Op{OpNot, OpCompl, OpPlus, OpNeg}

// String returns the operator symbol.
func (op Op) String() string {
	if op < opCount && op != OpInvalid {
		return opSymbol[op]
	}

	return "op(" + strconv.Itoa(int(op)) + ")"
}

// IsUnary reports whether op is a prefix operator.
func (op Op) IsUnary() bool { return op >= OpNot && op < opCount }

// IsBinary reports whether op is an infix operator.
func (op Op) IsBinary() bool { return op > OpInvalid && op < OpNot }

// Precedence returns the level of a binary operator, 1 for || through 11
// for **, or 0 if op is not binary.
func (op Op) Precedence() int {
	for i, level := range precedence {
		for _, o := range level {
			if o == op {
				return i + 1
			}
		}
	}

	return 0
}

// BinaryOp returns the binary operator spelled sym.
func BinaryOp(sym string) (Op, bool) {
	for op := OpOr; op < OpNot; op++ {
		if opSymbol[op] == sym {
			return op, true
		}
	}

	return OpInvalid, false
}

// UnaryOp returns the prefix operator spelled sym.
func UnaryOp(sym string) (Op, bool) {
	for _, op := range unaryOps {
		if opSymbol[op] == sym {
			return op, true
		}
	}

	return OpInvalid, false
}

// Binary applies a binary operator. Operators never fail at run time:
// division by zero and the like follow IEEE 754. Applying a unary or
// invalid operator panics.
func (op Op) Binary(x, y Value) Value {
	switch op {
	case OpOr:
		if x.AsBool() {
			return x
		}

		return y
	case OpAnd:
		if x.AsBool() {
			return y
		}

		return x
	case OpBitOr:
		return NumberValue(float64(x.AsInt() | y.AsInt()))
	case OpBitXor:
		return NumberValue(float64(x.AsInt() ^ y.AsInt()))
	case OpBitAnd:
		return NumberValue(float64(x.AsInt() & y.AsInt()))
	case OpEq:
		return BoolValue(Equal(x, y))
	case OpNe:
		return BoolValue(!Equal(x, y))
	case OpLt, OpGt, OpLe, OpGe:
		return BoolValue(relate(op, x, y))
	case OpShl:
		return NumberValue(float64(x.AsInt() << shiftCount(y)))
	case OpShr:
		return NumberValue(float64(x.AsInt() >> shiftCount(y)))
	case OpAdd:
		if x.kind == KindString || y.kind == KindString {
			return StringValue(x.AsString() + y.AsString())
		}

		return NumberValue(x.AsNumber() + y.AsNumber())
	case OpSub:
		return NumberValue(x.AsNumber() - y.AsNumber())
	case OpMul:
		return NumberValue(x.AsNumber() * y.AsNumber())
	case OpDiv:
		return NumberValue(x.AsNumber() / y.AsNumber())
	case OpMod:
		return NumberValue(math.Mod(x.AsNumber(), y.AsNumber()))
	case OpPow:
		return NumberValue(math.Pow(x.AsNumber(), y.AsNumber()))
	}

	panic("lang: " + op.String() + " is not a binary operator")
}

// Unary applies a prefix operator. Applying a binary or invalid operator
// panics.
func (op Op) Unary(x Value) Value {
	switch op {
	case OpNot:
		return BoolValue(!x.AsBool())
	case OpCompl:
		return NumberValue(float64(^x.AsInt()))
	case OpPlus:
		return NumberValue(x.AsNumber())
	case OpNeg:
		return NumberValue(-x.AsNumber())
	}

	panic("lang: " + op.String() + " is not a unary operator")
}

// relate evaluates a relational operator. Two strings compare by bytes.
// Otherwise both sides are numbers and NaN satisfies none of the relations.
func relate(op Op, x, y Value) bool {
	if x.kind == KindString && y.kind == KindString {
		c := Compare(x, y)

		switch op {
		case OpLt:
			return c < 0
		case OpGt:
			return c > 0
		case OpLe:
			return c <= 0
		default:
			return c >= 0
		}
	}

	a, b := x.AsNumber(), y.AsNumber()

	switch op {
	case OpLt:
		return a < b
	case OpGt:
		return a > b
	case OpLe:
		return a <= b
	default:
		return a >= b
	}
}

// shiftCount masks the shift amount to the low five bits.
func shiftCount(y Value) uint32 {
	return uint32(y.AsInt()) & 31
}
