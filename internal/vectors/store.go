package vectors

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/logger"

	_ "github.com/tursodatabase/go-libsql"
)

// SQLStore keeps named tables in the word_vectors table created by
// store.Migrate. Vectors are stored as libsql F32 blobs.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Import(name string, kv *KeyedVectors) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM word_vectors WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to clear vectors %q: %w", name, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO word_vectors (name, word, dim, emb)
		VALUES (?, ?, ?, vector32(?))
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, word := range kv.Words() {
		vec, _ := kv.Vector(word)
		if _, err := stmt.Exec(name, word, kv.Dim(), formatVector(vec)); err != nil {
			return fmt.Errorf("failed to insert vector for %q: %w", word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("imported %d vectors into %q", kv.Len(), name)
	return nil
}

func (s *SQLStore) Load(name string) (*KeyedVectors, error) {
	rows, err := s.db.Query(`
		SELECT word, vector_extract(emb)
		FROM   word_vectors
		WHERE  name = ?
		ORDER  BY id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors %q: %w", name, err)
	}
	defer rows.Close()

	kv := NewKeyedVectors(0)
	for rows.Next() {
		var word, raw string
		if err := rows.Scan(&word, &raw); err != nil {
			return nil, err
		}
		var vec []float64
		if err := jsoniter.UnmarshalFromString(raw, &vec); err != nil {
			return nil, fmt.Errorf("failed to decode vector for %q: %w", word, err)
		}
		if err := kv.Add(word, vec); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if kv.Len() == 0 {
		return nil, fmt.Errorf("no vectors named %q", name)
	}
	return kv, nil
}

func (s *SQLStore) Exists(name string) bool {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM word_vectors WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

func formatVector(vec []float64) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
