package store

import (
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/schedule"
)

// DueQuestions partitions the current question set into due today, overdue,
// and upcoming buckets relative to now.
func (s *Store) DueQuestions() schedule.DueSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return schedule.BuildDueSet(s.snapshotLocked(), s.now())
}

// Stats is the derived summary of the question set.
type Stats struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	InReview          int `json:"inReview"`
	DueToday          int `json:"dueToday"`
	Overdue           int `json:"overdue"`
	CompletedThisWeek int `json:"completedThisWeek"`
	ReviewedThisWeek  int `json:"reviewedThisWeek"`
}

// Stats computes summary counts. Due counts use calendar-day boundaries;
// the "this week" counts compare instants over the trailing seven days.
// ReviewedThisWeek counts only actual repeat reviews: a last-review instant
// identical to the first completion is the initial completion, not a review.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var st Stats
	st.Total = len(s.questions)
	for _, q := range s.questions {
		if q.Status == domain.Completed || q.Status == domain.UnderReview {
			st.Completed++
		}
		if q.Status == domain.UnderReview {
			st.InReview++
		}
		if schedule.IsDueToday(q.NextReviewAt, now) {
			st.DueToday++
		}
		if schedule.IsOverdue(q.NextReviewAt, now) {
			st.Overdue++
		}
		if !q.FirstCompletedAt.IsZero() && withinWindow(q.FirstCompletedAt, weekAgo, now) {
			st.CompletedThisWeek++
		}
		if q.ReviewCount > 1 &&
			!q.LastReviewedAt.IsZero() &&
			withinWindow(q.LastReviewedAt, weekAgo, now) &&
			!q.LastReviewedAt.Equal(q.FirstCompletedAt) {
			st.ReviewedThisWeek++
		}
	}
	return st
}

func withinWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
