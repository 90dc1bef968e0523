package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// models: fitted classifier snapshots keyed by their save path
		`CREATE TABLE IF NOT EXISTS models (
			path        TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			blob        BLOB NOT NULL,
			updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		// word_vectors: named embedding tables, one row per word
		`CREATE TABLE IF NOT EXISTS word_vectors (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL,
			word  TEXT NOT NULL,
			dim   INTEGER NOT NULL,
			emb   BLOB NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_word_vectors_name_word ON word_vectors(name, word);`,
		// meta: dataset mtime at the last training run
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
