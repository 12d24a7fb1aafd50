// Package schedule holds the spaced-repetition scheduling rules: how far out
// the next review of a question lands, and how questions split into due,
// overdue, and upcoming buckets. Everything here is a pure function of its
// inputs; callers supply the clock.
package schedule

import (
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
)

// intervals is the review ladder in days. Each successful review climbs one
// rung; a Hard rating drops back to the first rung no matter how high the
// question had climbed.
var intervals = [...]int{1, 3, 7, 14, 30, 90}

// NextReview returns the date of the next review given how many reviews have
// already happened and how the latest one felt. The result is normalized to
// local midnight: due dates are calendar days, not instants.
func NextReview(now time.Time, reviewCount int, difficulty domain.Difficulty) time.Time {
	idx := reviewCount
	if idx < 0 {
		idx = 0
	}
	if idx > len(intervals)-1 {
		idx = len(intervals) - 1
	}
	if difficulty == domain.Hard {
		idx = 0
	}
	return Midnight(now.AddDate(0, 0, intervals[idx]))
}

// Midnight truncates t to 00:00:00 of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
