package log

import (
	"log/slog"
	"strings"

	slogjournal "github.com/systemd/slog-journal"
)

// newJournalHandler connects to journald. Journal field names must be
// upper case letters, digits and underscores, so keys and groups are
// rewritten to fit.
func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: journalKey,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)

			return a
		},
	})
}

func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, key)
}
