package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Shape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 ** 3 ** 2", "((2 ** 3) ** 2)"},
		{"10 - 4 - 3", "((10 - 4) - 3)"},
		{"a || b && c", "(a || (b && c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a == b < c", "(a == (b < c))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"-x ** 2", "(-x ** 2)"},
		{"-(a + b)", "-(a + b)"},
		{"!x", "!x"},
		{"~(-1)", "~(-1)"},
		{"f()", "f()"},
		{`f(1, g(2), "a")`, `f(1, g(2), "a")`},
		{"((x))", "x"},
		{"0x10 + 1", "(16 + 1)"},
		{"'it\\'s'", `"it's"`},
		{"a != b >= c >> d % e", "(a != (b >= (c >> (d % e))))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if got := Format(n); got != tt.want {
				t.Errorf("Format(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		offset  int
		message string
	}{
		{"unclosed group", "(1", 2, `expected ")"`},
		{"empty", "", 0, `unexpected "(end)"`},
		{"adjacent operands", "1 2", 2, `unexpected "2" after expression`},
		{"double prefix", "--1", 1, `unexpected "-"`},
		{"trailing comma", "f(1,", 4, `unexpected "(end)"`},
		{"missing comma", "f(1 2)", 4, `expected "," or ")" in call to f`},
		{"leading comma", "f(,1)", 2, `unexpected ","`},
		{"stray paren", ")", 0, `unexpected ")"`},
		{"dangling operator", "1 +", 3, `unexpected "(end)"`},
		{"member access", "a.b", 1, `unexpected "." after expression`},
		{"empty group", "()", 1, `unexpected ")"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v is not ErrSyntax", err)
			}

			var se *SourceError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SourceError", err)
			}

			if se.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", se.Offset, tt.offset)
			}

			if se.Message != tt.message {
				t.Errorf("message = %q, want %q", se.Message, tt.message)
			}
		})
	}

	_, err := Parse("1 # 2")
	if !errors.Is(err, ErrLexical) || errors.Is(err, ErrSyntax) {
		t.Errorf("Parse with unknown character: %v, want ErrLexical only", err)
	}
}

func TestParse_Depth(t *testing.T) {
	tests := []struct {
		input    string
		maxDepth int
		ok       bool
	}{
		{"((1))", 3, true},
		{"(((1)))", 3, false},
		{"f(g(1))", 3, true},
		{"f(g(h(1)))", 3, false},
		{strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300), 0, true},
		{strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300), DefaultMaxDepth, false},
	}

	for _, tt := range tests {
		_, err := parse(tt.input, tt.maxDepth)
		if tt.ok && err != nil {
			t.Errorf("parse(%.12q, %d) error: %v", tt.input, tt.maxDepth, err)
		}

		if !tt.ok && !errors.Is(err, ErrSyntax) {
			t.Errorf("parse(%.12q, %d) = %v, want ErrSyntax", tt.input, tt.maxDepth, err)
		}
	}
}

func TestParse_Nodes(t *testing.T) {
	n, err := Parse("a + f(2)")
	if err != nil {
		t.Fatal(err)
	}

	bin, ok := n.(*Binary)
	if !ok {
		t.Fatalf("root is %T, want *Binary", n)
	}

	if bin.Op != OpAdd || bin.Pos() != 2 {
		t.Errorf("root = %v at %d, want + at 2", bin.Op, bin.Pos())
	}

	left, ok := bin.Left.(*Variable)
	if !ok || left.Name != "a" || left.Pos() != 0 {
		t.Errorf("left = %#v, want variable a at 0", bin.Left)
	}

	call, ok := bin.Right.(*Call)
	if !ok {
		t.Fatalf("right is %T, want *Call", bin.Right)
	}

	if call.Name != "f" || call.Pos() != 4 || len(call.Args) != 1 {
		t.Errorf("call = %#v, want f/1 at 4", call)
	}

	if arg := call.Args[0]; arg.Pos() != 6 {
		t.Errorf("argument offset = %d, want 6", arg.Pos())
	}
}

func TestParseTokens_AppendsTerminal(t *testing.T) {
	tokens := []Token{
		{Kind: TokenNumber, Text: "1", Value: NumberValue(1)},
		{Kind: TokenPunctuator, Text: "+", Offset: 2},
		{Kind: TokenNumber, Text: "2", Value: NumberValue(2), Offset: 4},
	}

	n, err := ParseTokens("1 + 2", tokens, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got := Format(n); got != "(1 + 2)" {
		t.Errorf("Format = %q, want %q", got, "(1 + 2)")
	}
}
