package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3 - 4 / 5 % 6",
		"a || b && c | d ^ e & f",
		"x == y != z < 1 > 2 <= 3 >= 4",
		"1 << 2 >> 3 ** 4",
		"-(a + b) * ~c + !d - +e",
		`concat("tab\there", 'quote"d', "back\\slash", "\x01")`,
		"f(g(h()), 1.5e-7, 0x7fffffff)",
		"((((x))))",
		"-x ** -y",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", input, err)
			}

			text := Format(first)

			second, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(Format) = Parse(%q) error: %v", text, err)
			}

			if again := Format(second); again != text {
				t.Errorf("round trip changed text:\n%s\n%s", text, again)
			}
		})
	}
}

func TestFormat_UnaryOperand(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"negative constant",
			&Unary{Op: OpNeg, Operand: &Constant{Value: NumberValue(-3)}},
			"-(-3)",
		},
		{
			"nested unary",
			&Unary{Op: OpNot, Operand: &Unary{Op: OpNeg, Operand: &Variable{Name: "x"}}},
			"!(-x)",
		},
		{
			"positive constant",
			&Unary{Op: OpCompl, Operand: &Constant{Value: NumberValue(3)}},
			"~3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.node); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}

			if _, err := Parse(tt.want); err != nil {
				t.Errorf("Parse(%q) error: %v", tt.want, err)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\dir`, `"C:\\dir"`},
		{"a\nb\tc", `"a\nb\tc"`},
		{"\x01\x7f", `"\x01\x7f"`},
		{"\u00e9", "\"\u00e9\""},
		{"a\xffb\xc3", "\"a\xffb\xc3\""},
	}

	for _, tt := range tests {
		got := Quote(tt.in)
		if got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}

		tokens, err := Lex(got)
		if err != nil {
			t.Fatalf("Lex(%s) error: %v", got, err)
		}

		if tokens[0].Value.AsString() != tt.in {
			t.Errorf("Lex(Quote(%q)) = %q", tt.in, tokens[0].Value.AsString())
		}
	}
}

func TestFormat_InvalidUTF8(t *testing.T) {
	input := "\"\xff\" + 'x\x80y'"

	n, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	text := Format(n)

	again, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", text, err)
	}

	bin, ok := again.(*Binary)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *Binary", text, again)
	}

	for i, want := range []string{"\xff", "x\x80y"} {
		side := []Node{bin.Left, bin.Right}[i]

		c, ok := side.(*Constant)
		if !ok || c.Value.AsString() != want {
			t.Errorf("operand %d = %#v, want %q", i, side, want)
		}
	}
}

func TestWalk(t *testing.T) {
	n, err := Parse("f(1 + 2, 3)")
	if err != nil {
		t.Fatal(err)
	}

	var all []string

	Walk(n, func(n Node) bool {
		all = append(all, Format(n))

		return true
	})

	want := []string{"f((1 + 2), 3)", "(1 + 2)", "1", "2", "3"}
	if !slices.Equal(all, want) {
		t.Errorf("Walk visited %q, want %q", all, want)
	}

	count := 0

	Walk(n, func(n Node) bool {
		count++

		_, isBinary := n.(*Binary)

		return !isBinary
	})

	if count != 3 {
		t.Errorf("Walk with pruning visited %d nodes, want 3", count)
	}
}

func TestNames(t *testing.T) {
	n, err := Parse("a + f(b, a) + g(f(1)) * PI")
	if err != nil {
		t.Fatal(err)
	}

	vars, funcs := Names(n)

	if want := []string{"a", "b", "PI"}; !slices.Equal(vars, want) {
		t.Errorf("variables = %q, want %q", vars, want)
	}

	if want := []string{"f", "g"}; !slices.Equal(funcs, want) {
		t.Errorf("functions = %q, want %q", funcs, want)
	}
}

func TestToMap(t *testing.T) {
	n, err := Parse("-x + max(1, 'a')")
	if err != nil {
		t.Fatal(err)
	}

	m := ToMap(n)

	if m["node"] != "binary" || m["op"] != "+" || m["offset"] != 3 {
		t.Errorf("root = %v", m)
	}

	left, _ := m["left"].(map[string]any)
	if left["node"] != "unary" || left["op"] != "-" {
		t.Errorf("left = %v", left)
	}

	operand, _ := left["operand"].(map[string]any)
	if operand["node"] != "variable" || operand["name"] != "x" || operand["offset"] != 1 {
		t.Errorf("operand = %v", operand)
	}

	right, _ := m["right"].(map[string]any)
	args, _ := right["args"].([]any)

	if right["node"] != "call" || right["name"] != "max" || len(args) != 2 {
		t.Fatalf("right = %v", right)
	}

	str, _ := args[1].(map[string]any)
	if str["kind"] != "string" || str["value"] != "a" {
		t.Errorf("string argument = %v", str)
	}

	inf := ToMap(&Constant{Value: NumberValue(math.Inf(1))})
	if inf["value"] != "Infinity" {
		t.Errorf("infinite constant value = %v, want Infinity", inf["value"])
	}

	if ToMap(nil) != nil {
		t.Error("ToMap(nil) is not nil")
	}
}

func TestFormatTree(t *testing.T) {
	n, err := Parse("1 + f(x, -'s')")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatTree(context.Background(), &buf, n, 0); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"binary +",
		"  number 1",
		"  call f/2",
		"    variable x",
		"    unary -",
		`      string "s"`,
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("FormatTree =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	n, err := Parse("a * 2")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatJSON(context.Background(), &buf, n, 0); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), `"node":"binary"`) {
		t.Errorf("compact JSON missing node: %s", buf.String())
	}

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("JSON output lacks trailing newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	buf.Reset()

	if err := FormatJSON(context.Background(), &buf, n, 4); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "\n    \"left\"") {
		t.Errorf("indented JSON not indented by 4:\n%s", buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	n, err := Parse("a * 2")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatYAML(context.Background(), &buf, n, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"node: binary", "name: a", "offset: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}
