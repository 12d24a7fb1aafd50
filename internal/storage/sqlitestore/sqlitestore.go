// Package sqlitestore persists the question snapshot in a SQLite database.
// It implements the same full-snapshot contract as csvstore: SaveAll replaces
// every row inside one transaction, so the two adapters are interchangeable.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/storage"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// Store wraps the SQL database connection.
type Store struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{conn: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// LoadAll reads every well-formed question row. Rows with an unknown status
// or difficulty history are logged and skipped.
func (s *Store) LoadAll() ([]domain.Question, error) {
	rows, err := s.conn.Query(`
		SELECT id, name, category, url, status,
		       first_completed_at, last_reviewed_at, next_review_at,
		       review_count, difficulty_history, notes
		FROM questions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var status, firstDone, lastRev, next, history string
		if err := rows.Scan(
			&q.ID,
			&q.Name,
			&q.Category,
			&q.URL,
			&status,
			&firstDone,
			&lastRev,
			&next,
			&q.ReviewCount,
			&history,
			&q.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}

		st, ok := domain.ParseStatus(status)
		if !ok {
			slog.Warn("skipping question row with unknown status", "id", q.ID, "status", status)
			continue
		}
		hist, ok := storage.ParseHistory(history)
		if !ok {
			slog.Warn("skipping question row with bad difficulty history", "id", q.ID)
			continue
		}
		q.Status = st
		q.DifficultyHistory = hist
		q.FirstCompletedAt = storage.ParseTime(firstDone)
		q.LastReviewedAt = storage.ParseTime(lastRev)
		q.NextReviewAt = storage.ParseTime(next)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question rows: %w", err)
	}
	return questions, nil
}

// SaveAll replaces the questions table with the given set in one transaction.
func (s *Store) SaveAll(questions []domain.Question) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM questions`); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}
	for _, q := range questions {
		_, err := tx.Exec(`
			INSERT INTO questions (
				id, name, category, url, status,
				first_completed_at, last_reviewed_at, next_review_at,
				review_count, difficulty_history, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			q.ID,
			q.Name,
			q.Category,
			q.URL,
			string(q.Status),
			storage.FormatTime(q.FirstCompletedAt),
			storage.FormatTime(q.LastReviewedAt),
			storage.FormatTime(q.NextReviewAt),
			q.ReviewCount,
			storage.FormatHistory(q.DifficultyHistory),
			q.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %d: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}
