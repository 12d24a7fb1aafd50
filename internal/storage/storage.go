// Package storage defines the snapshot persistence contract the question
// store writes through, plus the lenient field codec shared by the concrete
// adapters in csvstore and sqlitestore.
package storage

import "github.com/conorfennell/grindstone/internal/domain"

// Adapter persists the full question set as one snapshot.
//
// LoadAll returns an empty slice when nothing has been persisted yet, and
// drops individual malformed records rather than failing the whole load.
// SaveAll replaces the persisted snapshot atomically: a reader must never
// observe a partial write.
type Adapter interface {
	LoadAll() ([]domain.Question, error)
	SaveAll(questions []domain.Question) error
}
