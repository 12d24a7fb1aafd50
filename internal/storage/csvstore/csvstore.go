// Package csvstore persists the question snapshot as a single CSV file with
// snake_case columns. Writes go to a temp file in the same directory followed
// by a rename, so a concurrent reader always sees a complete snapshot.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/storage"
)

var header = []string{
	"id",
	"name",
	"category",
	"url",
	"status",
	"first_completed_at",
	"last_reviewed_at",
	"next_review_at",
	"review_count",
	"difficulty_history",
	"notes",
}

// Store reads and writes one snapshot file.
type Store struct {
	path string
}

// New returns a store backed by the CSV file at path. The file does not need
// to exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// LoadAll reads every well-formed row from the snapshot file. A missing file
// yields an empty set; malformed rows are logged and skipped.
func (s *Store) LoadAll() ([]domain.Question, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var questions []domain.Question
	for i, row := range rows[1:] {
		q, ok := decodeRow(row)
		if !ok {
			slog.Warn("skipping malformed snapshot row", "file", s.path, "row", i+2)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// SaveAll replaces the snapshot file with the given question set.
func (s *Store) SaveAll(questions []domain.Question) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".grindstone-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, q := range questions {
		if err := w.Write(encodeRow(q)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write snapshot row for question %d: %w", q.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", s.path, err)
	}
	return nil
}

func encodeRow(q domain.Question) []string {
	return []string{
		strconv.Itoa(q.ID),
		q.Name,
		q.Category,
		q.URL,
		string(q.Status),
		storage.FormatTime(q.FirstCompletedAt),
		storage.FormatTime(q.LastReviewedAt),
		storage.FormatTime(q.NextReviewAt),
		strconv.Itoa(q.ReviewCount),
		storage.FormatHistory(q.DifficultyHistory),
		q.Notes,
	}
}

func decodeRow(row []string) (domain.Question, bool) {
	if len(row) != len(header) {
		return domain.Question{}, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil || id <= 0 {
		return domain.Question{}, false
	}
	status, ok := domain.ParseStatus(row[4])
	if !ok {
		return domain.Question{}, false
	}
	reviewCount, err := strconv.Atoi(row[8])
	if err != nil || reviewCount < 0 {
		return domain.Question{}, false
	}
	history, ok := storage.ParseHistory(row[9])
	if !ok {
		return domain.Question{}, false
	}
	return domain.Question{
		ID:                id,
		Name:              row[1],
		Category:          row[2],
		URL:               row[3],
		Status:            status,
		FirstCompletedAt:  storage.ParseTime(row[5]),
		LastReviewedAt:    storage.ParseTime(row[6]),
		NextReviewAt:      storage.ParseTime(row[7]),
		ReviewCount:       reviewCount,
		DifficultyHistory: history,
		Notes:             row[10],
	}, true
}
