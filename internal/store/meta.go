package store

import (
	"database/sql"
	"fmt"
	"os"
)

// MetaStore remembers the dataset mtime a model was last trained on.
type MetaStore struct {
	db *sql.DB
}

func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{db: db}
}

// Touch records the current mtime of datasetPath under key.
func (m *MetaStore) Touch(key string, datasetPath string) error {
	info, err := os.Stat(datasetPath)
	if err != nil {
		return fmt.Errorf("stat error for %s: %w", datasetPath, err)
	}

	_, err = m.db.Exec(`
		INSERT INTO meta (key, path, mtime)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			path = excluded.path,
			mtime = excluded.mtime
	`, key, datasetPath, info.ModTime().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}

// NeedsRetrain reports whether datasetPath changed, or is a different file,
// since the last Touch for key.
func (m *MetaStore) NeedsRetrain(key string, datasetPath string) bool {
	info, err := os.Stat(datasetPath)
	if err != nil {
		return true
	}

	var storedPath string
	var storedMtime int64
	err = m.db.QueryRow(`SELECT path, mtime FROM meta WHERE key = ?`, key).Scan(&storedPath, &storedMtime)
	if err != nil {
		return true
	}
	return storedPath != datasetPath || info.ModTime().UnixNano() > storedMtime
}
