package storage

import (
	"strings"
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
)

// timeLayouts are tried in order when decoding a persisted timestamp.
// Snapshots written by other tools may carry any of these shapes.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime decodes a persisted timestamp. Absent values are encoded as ""
// or "0"; those and anything unparseable decode to the zero time. A bad
// date in a snapshot must never fail a load.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTime encodes a timestamp for persistence, using the empty string for
// the zero (absent) time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

const historySeparator = "|"

// ParseHistory decodes a pipe-joined difficulty history. It reports false
// when any entry is not a known difficulty.
func ParseHistory(s string) ([]domain.Difficulty, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	parts := strings.Split(s, historySeparator)
	history := make([]domain.Difficulty, 0, len(parts))
	for _, part := range parts {
		d, ok := domain.ParseDifficulty(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		history = append(history, d)
	}
	return history, true
}

// FormatHistory encodes a difficulty history as a pipe-joined string.
func FormatHistory(history []domain.Difficulty) string {
	parts := make([]string, len(history))
	for i, d := range history {
		parts[i] = string(d)
	}
	return strings.Join(parts, historySeparator)
}
