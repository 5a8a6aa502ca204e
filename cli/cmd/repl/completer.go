package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordRune reports whether r can appear in an identifier. Everything else
// (operators, parentheses, commas, quotes, spaces) ends a word.
func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the word around cursor and its byte offsets. The word
// is empty when the cursor is not touching an identifier.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completion is the state of the candidate bar.
type completion struct {
	matches   fuzzy.Matches
	wordStart int
	wordEnd   int
}

// complete finds candidates for the word at cursor. In a ':' command line
// only the first word completes, against the command names. An empty word
// has no candidates, and neither has a word that starts with a digit.
func complete(s *Session, input string, cursor int) completion {
	word, start, end := wordBounds(input, cursor)
	c := completion{wordStart: start, wordEnd: end}

	if word == "" || !isIdentStart(word) {
		return c
	}

	candidates := s.Names()

	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		if strings.TrimSpace(input[:start]) != ":" {
			return c
		}

		candidates = commands
	}

	c.matches = fuzzy.Find(word, candidates)

	return c
}

func isIdentStart(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)

	return !unicode.IsDigit(r)
}

// renderCandidateBar builds the completion line, cut with an ellipsis to fit
// width. The candidate at selected is highlighted when tabbing.
func renderCandidateBar(s *Session, matches fuzzy.Matches, selected int, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, m := range matches {
		cell := renderCandidate(s, m, i == selected)
		w := lipgloss.Width(cell)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && used+w+reserve > width && !(last && used+w <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(cell)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// emphasised. Functions get a "()" suffix.
func renderCandidate(s *Session, m fuzzy.Match, selected bool) string {
	base, mark := suggestionStyle, matchStyle
	if selected {
		base, mark = selectedStyle, selectedMatchStyle
	}

	hit := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder

	for i, r := range m.Str {
		if hit[i] {
			b.WriteString(mark.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := s.Func(m.Str); ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
