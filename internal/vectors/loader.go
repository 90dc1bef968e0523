package vectors

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
)

// DirEnv overrides the directory named tables are looked up in.
const DirEnv = "INTENTLY_VECTORS_DIR"

func DefaultDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "vectors")
	}
	return filepath.Join(cacheDir, "intently", "vectors")
}

// ReadText parses GloVe or word2vec text format: one "word v1 v2 ..." per
// line, with an optional "count dim" header line.
func ReadText(r io.Reader) (*KeyedVectors, error) {
	kv := NewKeyedVectors(0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && len(fields) == 2 && isInt(fields[0]) && isInt(fields[1]) {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected a word followed by its vector", line)
		}

		vec := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = v
		}
		if err := kv.Add(fields[0], vec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return kv, nil
}

func ReadFile(path string) (*KeyedVectors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kv, err := ReadText(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectors from %s: %w", path, err)
	}
	logger.Debug("loaded %d vectors of dimension %d from %s", kv.Len(), kv.Dim(), path)
	return kv, nil
}

// Load reads a table either from a file path or, for a bare name such as
// "glove-twitter-25", from <dir>/<name>.txt.
func Load(nameOrPath string, dir string) (*KeyedVectors, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return ReadFile(nameOrPath)
	}
	if dir == "" {
		dir = DefaultDir()
	}
	return ReadFile(filepath.Join(dir, nameOrPath+".txt"))
}

// Resolve accepts a table name (loaded from dir) or an already loaded Table.
func Resolve(source any, dir string) (Table, error) {
	switch v := source.(type) {
	case Table:
		return v, nil
	case string:
		return Load(v, dir)
	}
	return nil, fmt.Errorf("%w: vectors must be a table name or a loaded table, not %T", entity.ErrInvalidConfig, source)
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
