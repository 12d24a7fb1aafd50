package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
)

// upcomingWindowDays bounds the "upcoming" bucket: reviews landing within
// this many days after today (exclusive of today itself).
const upcomingWindowDays = 3

// DaysOverdue is the whole number of calendar days between a question's
// review date and today. Positive means overdue, zero means due today,
// negative means the review is still in the future.
func DaysOverdue(nextReview, now time.Time) int {
	diff := Midnight(now).Sub(Midnight(nextReview))
	return int(math.Round(diff.Hours() / 24))
}

// IsDueToday reports whether the review date falls on today's calendar day.
func IsDueToday(nextReview, now time.Time) bool {
	return !nextReview.IsZero() && DaysOverdue(nextReview, now) == 0
}

// IsOverdue reports whether the review date fell on an earlier calendar day.
func IsOverdue(nextReview, now time.Time) bool {
	return !nextReview.IsZero() && DaysOverdue(nextReview, now) > 0
}

// DueSet partitions questions by review date relative to now.
type DueSet struct {
	DueToday []domain.Question `json:"dueToday"`
	Overdue  []domain.Question `json:"overdue"`
	Upcoming []domain.Question `json:"upcoming"`
}

// BuildDueSet classifies every question with a review date into the due set.
// Questions without one are left out entirely. Overdue is ordered most
// overdue first; upcoming is ordered soonest first.
func BuildDueSet(questions []domain.Question, now time.Time) DueSet {
	var set DueSet
	for _, q := range questions {
		if q.NextReviewAt.IsZero() {
			continue
		}
		switch days := DaysOverdue(q.NextReviewAt, now); {
		case days > 0:
			set.Overdue = append(set.Overdue, q)
		case days == 0:
			set.DueToday = append(set.DueToday, q)
		case days >= -upcomingWindowDays:
			set.Upcoming = append(set.Upcoming, q)
		}
	}

	sort.SliceStable(set.Overdue, func(i, j int) bool {
		di := DaysOverdue(set.Overdue[i].NextReviewAt, now)
		dj := DaysOverdue(set.Overdue[j].NextReviewAt, now)
		if di != dj {
			return di > dj
		}
		return set.Overdue[i].ID < set.Overdue[j].ID
	})
	sort.SliceStable(set.Upcoming, func(i, j int) bool {
		return set.Upcoming[i].NextReviewAt.Before(set.Upcoming[j].NextReviewAt)
	})
	return set
}
