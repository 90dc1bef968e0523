package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/intently/internal/logger"
)

func TestInit_LevelFiltersOutput(t *testing.T) {
	require.NoError(t, logger.Init("", "warn"))
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestInit_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "intently.log")
	require.NoError(t, logger.Init(path, "debug"))
	defer logger.Init("", "info")

	logger.Debug("fit done in %s", "3ms")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fit done in 3ms")
}
