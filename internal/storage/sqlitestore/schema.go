package sqlitestore

const schema = `
-- The 'questions' table holds the full tracked-question snapshot.
-- Timestamps are RFC 3339 text; the empty string means "not set".
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    url TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL,
    first_completed_at TEXT NOT NULL DEFAULT '',
    last_reviewed_at TEXT NOT NULL DEFAULT '',
    next_review_at TEXT NOT NULL DEFAULT '',
    review_count INTEGER NOT NULL DEFAULT 0,
    difficulty_history TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT ''
);
`
