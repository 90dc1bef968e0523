package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "spanish", config.Language)
	assert.Equal(t, "logistic", config.Engine)
	assert.Equal(t, "naive", config.Extractor)
	assert.Equal(t, 0.2, config.Threshold)
	assert.Equal(t, "file", config.Store.Kind)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "nomic-embed-text", config.Vectors.Ollama.Model)
	assert.NoError(t, config.Validate())
	assert.Equal(t, 0.2, config.FeatureThreshold())
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "intently.yaml")

	configYAML := `
language: english
engine: wordvec
extractor: embedding
thresholds:
  timing: 0.7
  language: 0.4
vectors:
  name: glove-twitter-25
  dir: ${HOME}/vectors
store:
  kind: sql
  db_path: /tmp/intently.db
log:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "english", config.Language)
	assert.Equal(t, "wordvec", config.Engine)
	assert.Equal(t, "embedding", config.Extractor)
	assert.Equal(t, "glove-twitter-25", config.Vectors.Name)
	assert.Equal(t, os.Getenv("HOME")+"/vectors", config.Vectors.Dir)
	assert.Equal(t, "sql", config.Store.Kind)
	assert.Equal(t, "/tmp/intently.db", config.Store.DBPath)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.NeedsVectors())
	assert.Equal(t, map[string]float64{"timing": 0.7, "language": 0.4}, config.FeatureThreshold())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("INTENTLY_LANGUAGE", "French")
	t.Setenv("INTENTLY_ENGINE", "sgd")
	t.Setenv("INTENTLY_THRESHOLD", "0.35")
	t.Setenv("INTENTLY_LOG_LEVEL", "warn")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "french", config.Language)
	assert.Equal(t, "sgd", config.Engine)
	assert.Equal(t, 0.35, config.Threshold)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestEnvironmentOverrides_BadThreshold(t *testing.T) {
	t.Setenv("INTENTLY_THRESHOLD", "high")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "unsupported language",
			modify:  func(c *Config) { c.Language = "klingon" },
			wantErr: "unsupported language",
		},
		{
			name:    "unsupported engine",
			modify:  func(c *Config) { c.Engine = "bayes" },
			wantErr: "unsupported engine",
		},
		{
			name:    "unsupported extractor",
			modify:  func(c *Config) { c.Extractor = "regex" },
			wantErr: "unsupported extractor",
		},
		{
			name:    "wordvec without vectors",
			modify:  func(c *Config) { c.Engine = "wordvec" },
			wantErr: "vectors name is required",
		},
		{
			name: "weighting with wordvec",
			modify: func(c *Config) {
				c.Engine = "wordvec"
				c.Vectors.Name = "glove"
				c.Weighting = "tfidf"
			},
			wantErr: "weighting does not apply",
		},
		{
			name:    "unknown weighting",
			modify:  func(c *Config) { c.Weighting = "bm25" },
			wantErr: "unsupported weighting",
		},
		{
			name:    "threshold out of range",
			modify:  func(c *Config) { c.Threshold = 1.5 },
			wantErr: "threshold must be between 0 and 1",
		},
		{
			name:    "entity threshold out of range",
			modify:  func(c *Config) { c.Thresholds = map[string]float64{"timing": -1} },
			wantErr: "threshold for timing",
		},
		{
			name:    "unsupported store",
			modify:  func(c *Config) { c.Store.Kind = "s3" },
			wantErr: "unsupported store",
		},
		{
			name:    "unsupported log level",
			modify:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "unsupported log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
