package lang

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestMakeValue(t *testing.T) {
	v := NumberValue(7)

	tests := []struct {
		name string
		in   any
		kind Kind
		want any
	}{
		{"nil", nil, KindNull, nil},
		{"bool", true, KindBool, true},
		{"float64", 2.5, KindNumber, 2.5},
		{"string", "abc", KindString, "abc"},
		{"int", 3, KindNumber, 3.0},
		{"int64", int64(-9), KindNumber, -9.0},
		{"uint8", uint8(200), KindNumber, 200.0},
		{"float32", float32(1.5), KindNumber, 1.5},
		{"value unwraps", v, KindNumber, 7.0},
		{"pointer unwraps", &v, KindNumber, 7.0},
		{"nil pointer", (*Value)(nil), KindNull, nil},
		{"stringer", time.Second, KindString, "1s"},
		{"error", errors.New("boom"), KindString, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeValue(tt.in)
			if got.Kind() != tt.kind {
				t.Fatalf("kind = %v, want %v", got.Kind(), tt.kind)
			}

			if got.Raw() != tt.want {
				t.Errorf("raw = %#v, want %#v", got.Raw(), tt.want)
			}
		})
	}

	if got := MakeValue(struct{ A int }{1}); got.Kind() != KindString {
		t.Errorf("struct kind = %v, want string", got.Kind())
	}
}

func TestValue_AsBool(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"true", BoolValue(true), true},
		{"false", BoolValue(false), false},
		{"zero", NumberValue(0), false},
		{"negative zero", NumberValue(math.Copysign(0, -1)), false},
		{"NaN", NumberValue(math.NaN()), false},
		{"small", NumberValue(1e-300), true},
		{"negative", NumberValue(-1), true},
		{"infinity", NumberValue(math.Inf(1)), true},
		{"empty string", StringValue(""), false},
		{"zero string", StringValue("0"), true},
		{"false string", StringValue("false"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsBool(); got != tt.want {
				t.Errorf("AsBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_AsNumber(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"null", Null, 0},
		{"true", BoolValue(true), 1},
		{"false", BoolValue(false), 0},
		{"number", NumberValue(-4.5), -4.5},
		{"string", StringValue("12"), 12},
		{"padded string", StringValue("  2.5 "), 2.5},
		{"exponent string", StringValue("1e3"), 1000},
		{"huge string", StringValue("1e400"), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsNumber(); got != tt.want {
				t.Errorf("AsNumber() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, s := range []string{"", "abc", "1,5", "12px"} {
		if got := StringValue(s).AsNumber(); !math.IsNaN(got) {
			t.Errorf("AsNumber(%q) = %v, want NaN", s, got)
		}
	}
}

func TestValue_AsInt(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int32
	}{
		{"zero", 0, 0},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"negative infinity", math.Inf(-1), 0},
		{"whole", 42, 42},
		{"round down", 2.4, 2},
		{"half to even down", 2.5, 2},
		{"half to even up", 3.5, 4},
		{"negative half", -2.5, -2},
		{"negative", -1.4, -1},
		{"max int32", 2147483647, 2147483647},
		{"wraps past max", 2147483648, -2147483648},
		{"wraps past 2^32", 4294967297, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumberValue(tt.in).AsInt(); got != tt.want {
				t.Errorf("AsInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}

	if got := StringValue("7").AsInt(); got != 7 {
		t.Errorf(`AsInt("7") = %d, want 7`, got)
	}
}

func TestValue_AsString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null, "null"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"integer", NumberValue(14), "14"},
		{"fraction", NumberValue(2.5), "2.5"},
		{"negative", NumberValue(-3), "-3"},
		{"NaN", NumberValue(math.NaN()), "NaN"},
		{"infinity", NumberValue(math.Inf(1)), "Infinity"},
		{"negative infinity", NumberValue(math.Inf(-1)), "-Infinity"},
		{"string", StringValue("x y"), "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsString(); got != tt.want {
				t.Errorf("AsString() = %q, want %q", got, tt.want)
			}

			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_As(t *testing.T) {
	v := NumberValue(3.5)

	tests := []struct {
		kind Kind
		want any
	}{
		{KindInt, 4},
		{KindNumber, 3.5},
		{KindBool, true},
		{KindString, "3.5"},
		{KindRaw, 3.5},
		{KindValue, v},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := v.As(tt.kind)
			if err != nil {
				t.Fatalf("As(%v) error: %v", tt.kind, err)
			}

			if got != tt.want {
				t.Errorf("As(%v) = %#v, want %#v", tt.kind, got, tt.want)
			}
		})
	}

	for _, k := range []Kind{KindNull, Kind(99)} {
		_, err := v.As(k)
		if !errors.Is(err, ErrCast) {
			t.Errorf("As(%v) error = %v, want ErrCast", k, err)
		}

		_, err = v.Coerce(k)
		if !errors.Is(err, ErrCast) {
			t.Errorf("Coerce(%v) error = %v, want ErrCast", k, err)
		}
	}
}

func TestValue_Coerce(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		want Value
	}{
		{"string to number", StringValue("4"), KindNumber, NumberValue(4)},
		{"number to int", NumberValue(4.5), KindInt, NumberValue(4)},
		{"number to string", NumberValue(4), KindString, StringValue("4")},
		{"null to bool", Null, KindBool, BoolValue(false)},
		{"raw keeps", StringValue("s"), KindRaw, StringValue("s")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Coerce(tt.kind)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Coerce(%v) = %#v, want %#v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		x, y Value
		want bool
	}{
		{"null null", Null, Null, true},
		{"null number", Null, NumberValue(5), true},
		{"string null", StringValue("x"), Null, true},
		{"numbers", NumberValue(1), NumberValue(1), true},
		{"different numbers", NumberValue(1), NumberValue(2), false},
		{"NaN", NumberValue(math.NaN()), NumberValue(math.NaN()), false},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"different strings", StringValue("a"), StringValue("b"), false},
		{"numeric strings differ", StringValue("1"), StringValue("1.0"), false},
		{"bools", BoolValue(true), BoolValue(true), true},
		{"number string", NumberValue(1), StringValue("1"), true},
		{"string number", StringValue("2.0"), NumberValue(2), true},
		{"number text", NumberValue(1), StringValue("abc"), false},
		{"bool number", BoolValue(true), NumberValue(1), true},
		{"bool string", BoolValue(true), StringValue("1"), true},
		{"bool text", BoolValue(true), StringValue("true"), false},
		{"number bool", NumberValue(0), BoolValue(false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.x, tt.y); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		x, y Value
		want int
	}{
		{"strings", StringValue("a"), StringValue("b"), -1},
		{"strings by bytes", StringValue("2"), StringValue("10"), 1},
		{"equal strings", StringValue("b"), StringValue("b"), 0},
		{"numbers", NumberValue(3), NumberValue(1), 1},
		{"number and string", NumberValue(2), StringValue("10"), -1},
		{"null and number", Null, NumberValue(-1), 1},
		{"NaN", NumberValue(math.NaN()), NumberValue(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.x, tt.y); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"null", "bool", "Number", "STRING", "int", "raw", "value"} {
		k, ok := ParseKind(name)
		if !ok {
			t.Errorf("ParseKind(%q) failed", name)

			continue
		}

		if k.String() != strings.ToLower(name) {
			t.Errorf("ParseKind(%q) = %v", name, k)
		}
	}

	if _, ok := ParseKind("float"); ok {
		t.Error(`ParseKind("float") succeeded`)
	}
}
