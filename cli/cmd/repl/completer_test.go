package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "sqrt(fo", 7, "fo", 5, 7},
		{"after_comma", "max(a, fo", 9, "fo", 7, 9},
		{"after_comparison", "a >= fo", 7, "fo", 5, 7},
		{"power", "x**fo", 5, "fo", 3, 5},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"dollar_and_digits", "$v2 ", 3, "$v2", 0, 3},
		{"dot_splits", "a.b", 3, "b", 2, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"unicode", "x + αβ", 8, "αβ", 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func matchStrings(c completion) []string {
	out := make([]string, len(c.matches))
	for i, m := range c.matches {
		out[i] = m.Str
	}

	return out
}

func TestComplete(t *testing.T) {
	s := NewSession(Options{})
	s.vars["velocity"] = numberValue(3)

	tests := []struct {
		name    string
		input   string
		want    []string // must be among the matches
		wantNil bool
	}{
		{"math function", "1 + sqr", []string{"sqrt"}, false},
		{"constant", "2 * PI", []string{"PI"}, false},
		{"variable", "velo", []string{"velocity"}, false},
		{"command", ":qu", []string{"quit"}, false},
		{"command argument", ":unset velo", nil, true},
		{"empty word", "1 + ", nil, true},
		{"number", "12", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchStrings(complete(s, tt.input, len(tt.input)))

			if tt.wantNil {
				if len(got) != 0 {
					t.Errorf("complete(%q) = %v, want none", tt.input, got)
				}

				return
			}

			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("complete(%q) = %v, missing %q", tt.input, got, w)
				}
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	s := NewSession(Options{})

	c := complete(s, "s", 1)
	if len(c.matches) < 3 {
		t.Fatalf("want several matches for %q, got %v", "s", matchStrings(c))
	}

	if bar := renderCandidateBar(s, c.matches, -1, 0); bar != "" {
		t.Errorf("zero width bar = %q, want empty", bar)
	}

	bar := renderCandidateBar(s, c.matches, 0, 12)
	if bar == "" {
		t.Fatal("bar is empty")
	}

	if got := renderCandidateBar(s, c.matches, -1, 1000); len(got) < len(bar) {
		t.Errorf("wide bar shorter than narrow bar: %q vs %q", got, bar)
	}
}
