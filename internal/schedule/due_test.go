package schedule

import (
	"testing"
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
)

func TestDueClassification(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

	t.Run("yesterday is overdue by one day", func(t *testing.T) {
		review := now.AddDate(0, 0, -1)
		if !IsOverdue(review, now) {
			t.Error("expected yesterday's review to be overdue")
		}
		if IsDueToday(review, now) {
			t.Error("expected yesterday's review not to be due today")
		}
		if days := DaysOverdue(review, now); days != 1 {
			t.Errorf("DaysOverdue = %d, want 1", days)
		}
	})

	t.Run("today is due regardless of time of day", func(t *testing.T) {
		review := time.Date(2026, 3, 10, 23, 45, 0, 0, time.Local)
		if !IsDueToday(review, now) {
			t.Error("expected same-day review to be due today")
		}
		if IsOverdue(review, now) {
			t.Error("expected same-day review not to be overdue")
		}
		if days := DaysOverdue(review, now); days != 0 {
			t.Errorf("DaysOverdue = %d, want 0", days)
		}
	})

	t.Run("tomorrow is neither due nor overdue", func(t *testing.T) {
		review := now.AddDate(0, 0, 1)
		if IsDueToday(review, now) || IsOverdue(review, now) {
			t.Error("expected tomorrow's review to be neither due today nor overdue")
		}
		if days := DaysOverdue(review, now); days != -1 {
			t.Errorf("DaysOverdue = %d, want -1", days)
		}
	})

	t.Run("zero time is never due", func(t *testing.T) {
		if IsDueToday(time.Time{}, now) || IsOverdue(time.Time{}, now) {
			t.Error("expected the zero time to classify as not due")
		}
	})
}

func TestBuildDueSet(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	at := func(days int) time.Time { return now.AddDate(0, 0, days) }

	questions := []domain.Question{
		{ID: 1, NextReviewAt: at(-1)},
		{ID: 2, NextReviewAt: at(-5)},
		{ID: 3, NextReviewAt: at(0)},
		{ID: 4, NextReviewAt: at(3)},
		{ID: 5, NextReviewAt: at(1)},
		{ID: 6, NextReviewAt: at(4)}, // beyond the upcoming window
		{ID: 7},                      // no review scheduled
	}

	set := BuildDueSet(questions, now)

	if len(set.DueToday) != 1 || set.DueToday[0].ID != 3 {
		t.Errorf("DueToday = %+v, want question 3 only", set.DueToday)
	}

	if len(set.Overdue) != 2 {
		t.Fatalf("Overdue has %d entries, want 2", len(set.Overdue))
	}
	if set.Overdue[0].ID != 2 || set.Overdue[1].ID != 1 {
		t.Errorf("Overdue order = [%d, %d], want most overdue first [2, 1]",
			set.Overdue[0].ID, set.Overdue[1].ID)
	}

	if len(set.Upcoming) != 2 {
		t.Fatalf("Upcoming has %d entries, want 2", len(set.Upcoming))
	}
	if set.Upcoming[0].ID != 5 || set.Upcoming[1].ID != 4 {
		t.Errorf("Upcoming order = [%d, %d], want soonest first [5, 4]",
			set.Upcoming[0].ID, set.Upcoming[1].ID)
	}
}
