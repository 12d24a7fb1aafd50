package domain

import "time"

// Status is the lifecycle state of a tracked question.
type Status string

const (
	NotStarted     Status = "not_started"
	Completed      Status = "completed"
	UnderReview    Status = "under_review"
	NeedsAttention Status = "needs_attention"
)

// ParseStatus maps a persisted status string back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case NotStarted, Completed, UnderReview, NeedsAttention:
		return Status(s), true
	}
	return "", false
}

// Difficulty is the self-reported rating recorded with each review.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a persisted difficulty string back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), true
	}
	return "", false
}

// Question is a single coding-interview question under practice.
// Optional timestamps use the zero time.Time to mean "not set".
// ReviewCount always equals len(DifficultyHistory); both count reviews
// including the first completion.
type Question struct {
	ID                int          `json:"id"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	URL               string       `json:"url"`
	Status            Status       `json:"status"`
	FirstCompletedAt  time.Time    `json:"firstCompletedAt,omitzero"`
	LastReviewedAt    time.Time    `json:"lastReviewedAt,omitzero"`
	NextReviewAt      time.Time    `json:"nextReviewAt,omitzero"`
	ReviewCount       int          `json:"reviewCount"`
	DifficultyHistory []Difficulty `json:"difficultyHistory,omitempty"`
	Notes             string       `json:"notes"`
}

// Clone returns a deep copy. The store hands clones to callers so nothing
// outside it can mutate a record in place.
func (q Question) Clone() Question {
	c := q
	if q.DifficultyHistory != nil {
		c.DifficultyHistory = append([]Difficulty(nil), q.DifficultyHistory...)
	}
	return c
}

// CreateQuestion is the payload for adding a question.
type CreateQuestion struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=200"`
	URL      string `json:"url" validate:"required,judgeurl"`
	Notes    string `json:"notes" validate:"max=10000"`
}

// UpdateQuestion carries a partial update. Nil fields are left untouched.
// Review-derived fields are never updatable through this payload.
type UpdateQuestion struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,min=1,max=200"`
	URL      *string `json:"url" validate:"omitempty,judgeurl"`
	Notes    *string `json:"notes" validate:"omitempty,max=10000"`
}

// ReviewInput is the payload for complete and review operations.
// Notes, when non-empty, replace the question's notes.
type ReviewInput struct {
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Notes      string     `json:"notes" validate:"max=10000"`
}
