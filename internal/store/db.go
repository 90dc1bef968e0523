package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"
)

func DefaultDBPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "intently.db")
	}
	return filepath.Join(cacheDir, "intently", "intently.db")
}

// OpenDB opens the libsql database at path and applies migrations.
// ":memory:" is accepted.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultDBPath()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	db, err := sql.Open("libsql", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

