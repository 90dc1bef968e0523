package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrModelNotFound = errors.New("model not found")

// Saver persists classifier snapshots under a path-like key.
type Saver interface {
	Save(snap *entity.Snapshot, path string) error
	Load(path string) (*entity.Snapshot, error)
}

func encode(snap *entity.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("nil snapshot")
	}
	return json.Marshal(snap)
}

func decode(blob []byte) (*entity.Snapshot, error) {
	var snap entity.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != entity.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// FileSaver writes snapshots as JSON files.
type FileSaver struct{}

func (FileSaver) Save(snap *entity.Snapshot, path string) error {
	blob, err := encode(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	logger.Debug("saved %s model to %s", snap.Engine.Kind, path)
	return nil
}

func (FileSaver) Load(path string) (*entity.Snapshot, error) {
	blob, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return decode(blob)
}

// SQLSaver keeps snapshots in the models table.
type SQLSaver struct {
	db *sql.DB
}

func NewSQLSaver(db *sql.DB) *SQLSaver {
	return &SQLSaver{db: db}
}

func (s *SQLSaver) Save(snap *entity.Snapshot, path string) error {
	blob, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO models (path, kind, blob)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind = excluded.kind,
			blob = excluded.blob,
			updated_at = CURRENT_TIMESTAMP
	`, path, snap.Engine.Kind, blob)
	if err != nil {
		return fmt.Errorf("failed to save model %s: %w", path, err)
	}
	logger.Debug("saved %s model to models/%s", snap.Engine.Kind, path)
	return nil
}

func (s *SQLSaver) Load(path string) (*entity.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM models WHERE path = ?`, path).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return decode(blob)
}
