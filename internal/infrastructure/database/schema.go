package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema for the review-relevant tables. Lessons group imported material;
// vocabulary and grammar carry the spaced-repetition bookkeeping columns.
// Timestamps are RFC 3339 strings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS lessons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		book_id INTEGER NOT NULL DEFAULT 0,
		lesson_number INTEGER NOT NULL DEFAULT 1,
		title TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vocabulary (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_id INTEGER NOT NULL DEFAULT 0,
		word TEXT NOT NULL,
		kana TEXT,
		meaning TEXT,
		part_of_speech TEXT,
		mastery_level REAL NOT NULL DEFAULT 0,
		last_reviewed_at TEXT,
		next_review_at TEXT,
		correct_count INTEGER NOT NULL DEFAULT 0,
		incorrect_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (lesson_id) REFERENCES lessons(id)
	)`,
	`CREATE TABLE IF NOT EXISTS grammar (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_id INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		explanation TEXT,
		mastery_level REAL NOT NULL DEFAULT 0,
		last_reviewed_at TEXT,
		next_review_at TEXT,
		correct_count INTEGER NOT NULL DEFAULT 0,
		incorrect_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (lesson_id) REFERENCES lessons(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vocabulary_next_review ON vocabulary(next_review_at)`,
	`CREATE INDEX IF NOT EXISTS idx_grammar_next_review ON grammar(next_review_at)`,
}

// InitSchema creates the review tables when missing. Safe to run on every
// startup.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
