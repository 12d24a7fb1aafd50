package store

import (
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/schedule"
)

// Complete records the first completion of a question: it enters review,
// gets its first difficulty rating, and is scheduled for its first repeat.
func (s *Store) Complete(id int, input domain.ReviewInput) (domain.Question, error) {
	if err := domain.Validate(input); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}

	now := s.now()
	candidate := s.snapshotLocked()
	q := &candidate[i]
	q.Status = domain.UnderReview
	if q.FirstCompletedAt.IsZero() {
		q.FirstCompletedAt = now
	}
	q.LastReviewedAt = now
	q.ReviewCount = 1
	q.DifficultyHistory = []domain.Difficulty{input.Difficulty}
	q.NextReviewAt = schedule.NextReview(now, 0, input.Difficulty)
	if input.Notes != "" {
		q.Notes = input.Notes
	}

	if err := s.commitLocked(candidate); err != nil {
		return domain.Question{}, err
	}
	return q.Clone(), nil
}

// Review records a subsequent review. A Hard rating flags the question as
// needing attention and drops its schedule back to the shortest interval.
// The next review date is computed from the count before this review.
func (s *Store) Review(id int, input domain.ReviewInput) (domain.Question, error) {
	if err := domain.Validate(input); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}

	now := s.now()
	candidate := s.snapshotLocked()
	q := &candidate[i]
	if input.Difficulty == domain.Hard {
		q.Status = domain.NeedsAttention
	} else {
		q.Status = domain.UnderReview
	}
	q.LastReviewedAt = now
	q.NextReviewAt = schedule.NextReview(now, q.ReviewCount, input.Difficulty)
	q.ReviewCount++
	q.DifficultyHistory = append(q.DifficultyHistory, input.Difficulty)
	if input.Notes != "" {
		q.Notes = input.Notes
	}

	if err := s.commitLocked(candidate); err != nil {
		return domain.Question{}, err
	}
	return q.Clone(), nil
}

// Reset returns a question to the not-started state, clearing everything the
// review cycle produced. Identity, name, category, url, and notes survive.
func (s *Store) Reset(id int) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}

	candidate := s.snapshotLocked()
	q := &candidate[i]
	q.Status = domain.NotStarted
	q.FirstCompletedAt = time.Time{}
	q.LastReviewedAt = time.Time{}
	q.NextReviewAt = time.Time{}
	q.ReviewCount = 0
	q.DifficultyHistory = nil

	if err := s.commitLocked(candidate); err != nil {
		return domain.Question{}, err
	}
	return q.Clone(), nil
}
