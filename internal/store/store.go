// Package store owns the in-memory question set. Every read and mutation
// goes through the Store; mutations validate first, then write the new
// snapshot through the persistence adapter, and only commit in memory once
// the write succeeded.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/storage"
)

var (
	// ErrNotFound reports an operation against a question id that does not exist.
	ErrNotFound = errors.New("question not found")
	// ErrDuplicateURL reports a create or update that would give two questions the same URL.
	ErrDuplicateURL = errors.New("question with this URL already exists")
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Store is the single owner of the tracked question set.
type Store struct {
	mu        sync.Mutex
	adapter   storage.Adapter
	questions []domain.Question
	nextID    int
	writeGen  uint64
	now       func() time.Time
}

// New returns a store backed by the given adapter. Initialize must be called
// before any other operation.
func New(adapter storage.Adapter) *Store {
	return &Store{
		adapter: adapter,
		nextID:  1,
		now:     time.Now,
	}
}

// Initialize loads the persisted snapshot and derives the next free id.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// Reload replaces the in-memory set from the persisted snapshot, as if
// Initialize had run again. Used when the snapshot changed externally.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	questions, err := s.adapter.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	s.questions = questions
	s.nextID = 1
	for _, q := range questions {
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	return nil
}

// WriteGeneration counts the store's own successful write-throughs. A
// snapshot watcher samples it to tell self-inflicted file changes from
// external edits.
func (s *Store) WriteGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeGen
}

// commitLocked persists the candidate snapshot and, only on success, makes
// it the in-memory state. A failed write leaves the store untouched.
func (s *Store) commitLocked(candidate []domain.Question) error {
	if err := s.adapter.SaveAll(candidate); err != nil {
		return fmt.Errorf("failed to persist questions: %w", err)
	}
	s.questions = candidate
	s.writeGen++
	return nil
}

func (s *Store) snapshotLocked() []domain.Question {
	copied := make([]domain.Question, len(s.questions))
	for i, q := range s.questions {
		copied[i] = q.Clone()
	}
	return copied
}

func (s *Store) indexOfLocked(id int) int {
	for i, q := range s.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) urlTakenLocked(url string, excludeID int) bool {
	for _, q := range s.questions {
		if q.URL == url && q.ID != excludeID {
			return true
		}
	}
	return false
}

// ListFilter narrows and pages a listing. Zero values mean "no filter",
// first page, default limit.
type ListFilter struct {
	Category string
	Status   domain.Status
	Page     int
	Limit    int
}

// Page is one page of a filtered listing.
type Page struct {
	Questions []domain.Question `json:"questions"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
}

// List returns the page of questions matching the filter. Category matches
// case-insensitively on substring; status matches exactly. Pages are
// 1-indexed and an out-of-range page is an empty page, not an error.
func (s *Store) List(filter ListFilter) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	category := strings.ToLower(filter.Category)
	var matched []domain.Question
	for _, q := range s.questions {
		if category != "" && !strings.Contains(strings.ToLower(q.Category), category) {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		matched = append(matched, q)
	}

	result := Page{Questions: []domain.Question{}, Total: len(matched), Page: page}
	start := (page - 1) * limit
	if start >= len(matched) {
		return result
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	for _, q := range matched[start:end] {
		result.Questions = append(result.Questions, q.Clone())
	}
	return result
}

// GetByID returns the question with the given id.
func (s *Store) GetByID(id int) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}
	return s.questions[i].Clone(), nil
}

// Create validates the payload, allocates the next id, and inserts a new
// question in its default state.
func (s *Store) Create(input domain.CreateQuestion) (domain.Question, error) {
	if err := domain.Validate(input); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.urlTakenLocked(input.URL, 0) {
		return domain.Question{}, ErrDuplicateURL
	}

	q := domain.Question{
		ID:       s.nextID,
		Name:     input.Name,
		Category: input.Category,
		URL:      input.URL,
		Status:   domain.NotStarted,
		Notes:    input.Notes,
	}
	candidate := append(s.snapshotLocked(), q)
	if err := s.commitLocked(candidate); err != nil {
		return domain.Question{}, err
	}
	s.nextID++
	return q.Clone(), nil
}

// Update merges the provided fields over an existing question. Review-derived
// fields are never touched here.
func (s *Store) Update(id int, input domain.UpdateQuestion) (domain.Question, error) {
	if err := domain.Validate(input); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}
	if input.URL != nil && s.urlTakenLocked(*input.URL, id) {
		return domain.Question{}, ErrDuplicateURL
	}

	candidate := s.snapshotLocked()
	q := &candidate[i]
	if input.Name != nil {
		q.Name = *input.Name
	}
	if input.Category != nil {
		q.Category = *input.Category
	}
	if input.URL != nil {
		q.URL = *input.URL
	}
	if input.Notes != nil {
		q.Notes = *input.Notes
	}
	if err := s.commitLocked(candidate); err != nil {
		return domain.Question{}, err
	}
	return q.Clone(), nil
}

// Delete removes a question. It reports whether anything was removed; a
// missing id is a negative result, not an error.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return false, nil
	}
	candidate := s.snapshotLocked()
	candidate = append(candidate[:i], candidate[i+1:]...)
	if err := s.commitLocked(candidate); err != nil {
		return false, err
	}
	return true, nil
}
