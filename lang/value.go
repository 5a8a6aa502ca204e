package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/conv"
)

// Kind identifies the storage of a Value or the target of a conversion.
//
// Only KindNull, KindBool, KindNumber and KindString are ever reported by
// [Value.Kind]. The remaining kinds name conversion targets for [Value.As].
type Kind uint8

const (
	// KindNull is the absent value.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindNumber is a 64-bit float.
	KindNumber
	// KindString is a text string.
	KindString
	// KindInt converts to a Go int via the 32-bit integer coercion.
	KindInt
	// KindRaw converts to the untyped payload (nil, bool, float64, string).
	KindRaw
	// KindValue converts to the Value itself.
	KindValue
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindRaw:
		return "raw"
	case KindValue:
		return "value"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k := range KindValue + 1 {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}

	return 0, false
}

// Value is a dynamically typed scalar: null, boolean, number or string.
// The zero Value is null. Values are immutable; every conversion returns a
// new Value.
type Value struct {
	s    string
	n    float64
	kind Kind
	b    bool
}

// Null is the null Value.
var Null = Value{}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// MakeValue converts an arbitrary host value to a Value.
//
// A Value (or *Value) is unwrapped rather than boxed. Booleans, float64 and
// strings are stored directly, every other Go numeric type is converted to
// float64, and anything else is stored as its textual representation.
func MakeValue(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null
	case Value:
		return v
	case *Value:
		if v == nil {
			return Null
		}

		return *v
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case string:
		return StringValue(v)
	case float32:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case int8:
		return NumberValue(float64(v))
	case int16:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case uint:
		return NumberValue(float64(v))
	case uint8:
		return NumberValue(float64(v))
	case uint16:
		return NumberValue(float64(v))
	case uint32:
		return NumberValue(float64(v))
	case uint64:
		return NumberValue(float64(v))
	case uintptr:
		return NumberValue(float64(v))
	case fmt.Stringer:
		return StringValue(v.String())
	case error:
		return StringValue(v.Error())
	default:
		return StringValue(conv.Vtoa(v))
	}
}

// Kind returns the storage kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool converts v to a boolean. Null and the empty string are false, a
// number is false when it is NaN or zero.
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return !math.IsNaN(v.n) && !isZero(v.n)
	case KindString:
		return v.s != ""
	default:
		return false
	}
}

// AsNumber converts v to a float64. Null is 0, booleans are 1 or 0, and a
// string that does not parse as a number is NaN.
func (v Value) AsNumber() float64 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}

		return 0
	case KindNumber:
		return v.n
	case KindString:
		return parseNumber(v.s)
	default:
		return 0
	}
}

// AsInt converts v to a 32-bit integer. NaN, infinities and zero give 0.
// Other numbers round half to even and wrap modulo 2^32.
func (v Value) AsInt() int32 {
	n := v.AsNumber()
	if math.IsNaN(n) || math.IsInf(n, 0) || isZero(n) {
		return 0
	}

	return int32(int64(math.Mod(math.RoundToEven(n), 1<<32)))
}

// AsString renders v as text. Null renders as "null".
func (v Value) AsString() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	default:
		return "null"
	}
}

// Raw returns the untyped payload: nil, bool, float64 or string.
func (v Value) Raw() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	default:
		return nil
	}
}

// As converts v to the Go representation of kind k. KindNull is not a
// valid target.
func (v Value) As(k Kind) (any, error) {
	switch k {
	case KindInt:
		return int(v.AsInt()), nil
	case KindNumber:
		return v.AsNumber(), nil
	case KindBool:
		return v.AsBool(), nil
	case KindString:
		return v.AsString(), nil
	case KindRaw:
		return v.Raw(), nil
	case KindValue:
		return v, nil
	default:
		return nil, ErrCast.With(
			slog.String("from", v.kind.String()),
			slog.String("to", k.String()),
		)
	}
}

// Coerce converts v to a Value holding the representation of kind k.
// KindInt yields a number holding the integer coercion. KindRaw and
// KindValue leave v unchanged.
func (v Value) Coerce(k Kind) (Value, error) {
	switch k {
	case KindInt:
		return NumberValue(float64(v.AsInt())), nil
	case KindNumber:
		return NumberValue(v.AsNumber()), nil
	case KindBool:
		return BoolValue(v.AsBool()), nil
	case KindString:
		return StringValue(v.AsString()), nil
	case KindRaw, KindValue:
		return v, nil
	default:
		return Null, ErrCast.With(
			slog.String("from", v.kind.String()),
			slog.String("to", k.String()),
		)
	}
}

// String implements fmt.Stringer with the same rendering as AsString.
func (v Value) String() string { return v.AsString() }

// GoString renders v as a literal that lexes back to the same value.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return Quote(v.s)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return formatNumber(v.n)
		}

		return strconv.FormatFloat(v.n, 'g', -1, 64)
	default:
		return v.AsString()
	}
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	switch v.kind {
	case KindBool:
		return slog.BoolValue(v.b)
	case KindNumber:
		return slog.Float64Value(v.n)
	case KindString:
		return slog.StringValue(v.s)
	default:
		return slog.StringValue("null")
	}
}

// Equal reports whether x and y are equal under the == operator.
//
// Any comparison involving null is true. Values of the same kind compare
// natively. A string against a number, or a boolean against anything,
// compares numerically.
func Equal(x, y Value) bool {
	if x.kind == KindNull || y.kind == KindNull {
		return true
	}

	if x.kind == y.kind {
		switch x.kind {
		case KindBool:
			return x.b == y.b
		case KindNumber:
			return x.n == y.n
		case KindString:
			return x.s == y.s
		}
	}

	switch {
	case x.kind == KindString && y.kind == KindNumber,
		x.kind == KindNumber && y.kind == KindString,
		x.kind == KindBool || y.kind == KindBool:
		return x.AsNumber() == y.AsNumber()
	}

	return false
}

// Compare orders x and y. Two strings compare by bytes; anything else
// compares numerically. The result is -1, 0 or +1, and 0 when either side is
// NaN.
func Compare(x, y Value) int {
	if x.kind == KindString && y.kind == KindString {
		return strings.Compare(x.s, y.s)
	}

	a, b := x.AsNumber(), y.AsNumber()

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// isZero matches values smaller in magnitude than the smallest subnormal,
// which in practice is exactly ±0.
func isZero(n float64) bool {
	return math.Abs(n) < math.SmallestNonzeroFloat64
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}

	return n
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	default:
		return conv.Ftoa(n)
	}
}
