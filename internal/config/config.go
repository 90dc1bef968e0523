package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/trknhr/intently/internal/text"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Language string `yaml:"language"`
	// Engine is one of logistic, sgd or wordvec.
	Engine string `yaml:"engine"`
	// Weighting overrides the term weighting of the logistic and sgd engines.
	Weighting string `yaml:"weighting"`
	// Extractor is one of none, naive or embedding.
	Extractor  string             `yaml:"extractor"`
	Threshold  float64            `yaml:"threshold"`
	Thresholds map[string]float64 `yaml:"thresholds"`
	Vectors    VectorsConfig      `yaml:"vectors"`
	Store      StoreConfig        `yaml:"store"`
	Log        LogConfig          `yaml:"log"`
}

type VectorsConfig struct {
	// Name is a table name, a GloVe text file, or a table imported in the database.
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
	// FromDB loads Name from the word_vectors table instead of a file.
	FromDB bool         `yaml:"from_db"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type OllamaConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type StoreConfig struct {
	// Kind is file or sql.
	Kind   string `yaml:"kind"`
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var (
	supportedEngines    = []string{"logistic", "sgd", "wordvec"}
	supportedExtractors = []string{"none", "naive", "embedding"}
	supportedStores     = []string{"file", "sql"}
	supportedLevels     = []string{"debug", "info", "warn", "error", "none"}
)

// LoadConfig reads configPath, when given, then applies defaults and
// INTENTLY_* environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	setDefaults(config)

	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func DefaultConfig() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

func setDefaults(config *Config) {
	if config.Language == "" {
		config.Language = "spanish"
	}
	if config.Engine == "" {
		config.Engine = "logistic"
	}
	if config.Extractor == "" {
		config.Extractor = "naive"
	}
	if config.Threshold == 0 {
		config.Threshold = 0.2
	}
	if config.Vectors.Ollama.Model == "" {
		config.Vectors.Ollama.Model = "nomic-embed-text"
	}
	if config.Vectors.Ollama.BaseURL == "" {
		config.Vectors.Ollama.BaseURL = "http://localhost:11434"
	}
	if config.Store.Kind == "" {
		config.Store.Kind = "file"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}

func overrideWithEnv(config *Config) error {
	strs := map[string]*string{
		"INTENTLY_LANGUAGE":     &config.Language,
		"INTENTLY_ENGINE":       &config.Engine,
		"INTENTLY_WEIGHTING":    &config.Weighting,
		"INTENTLY_EXTRACTOR":    &config.Extractor,
		"INTENTLY_VECTORS":      &config.Vectors.Name,
		"INTENTLY_VECTORS_DIR":  &config.Vectors.Dir,
		"INTENTLY_OLLAMA_MODEL": &config.Vectors.Ollama.Model,
		"INTENTLY_OLLAMA_URL":   &config.Vectors.Ollama.BaseURL,
		"INTENTLY_STORE":        &config.Store.Kind,
		"INTENTLY_DB_PATH":      &config.Store.DBPath,
		"INTENTLY_LOG_LEVEL":    &config.Log.Level,
		"INTENTLY_LOG_FILE":     &config.Log.File,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("INTENTLY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("INTENTLY_THRESHOLD: %w", err)
		}
		config.Threshold = f
	}
	return nil
}

func (c *Config) Validate() error {
	c.Language = strings.ToLower(c.Language)
	if !text.SupportedLanguage(c.Language) {
		return fmt.Errorf("unsupported language: %s", c.Language)
	}
	if !slices.Contains(supportedEngines, c.Engine) {
		return fmt.Errorf("unsupported engine: %s, supported: %v", c.Engine, supportedEngines)
	}
	if c.Weighting != "" {
		if c.Weighting != "counts" && c.Weighting != "tfidf" {
			return fmt.Errorf("unsupported weighting: %s", c.Weighting)
		}
		if c.Engine == "wordvec" {
			return fmt.Errorf("weighting does not apply to the wordvec engine")
		}
	}
	if !slices.Contains(supportedExtractors, c.Extractor) {
		return fmt.Errorf("unsupported extractor: %s, supported: %v", c.Extractor, supportedExtractors)
	}
	if (c.Engine == "wordvec" || c.Extractor == "embedding") && c.Vectors.Name == "" {
		return fmt.Errorf("vectors name is required for engine %s with extractor %s", c.Engine, c.Extractor)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1")
	}
	for entity, t := range c.Thresholds {
		if t < 0 || t > 1 {
			return fmt.Errorf("threshold for %s must be between 0 and 1", entity)
		}
	}
	if !slices.Contains(supportedStores, c.Store.Kind) {
		return fmt.Errorf("unsupported store: %s, supported: %v", c.Store.Kind, supportedStores)
	}
	if !slices.Contains(supportedLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("unsupported log level: %s", c.Log.Level)
	}
	return nil
}

// FeatureThreshold is the threshold handed to the feature extractor: the
// per-entity map when one is configured, the uniform threshold otherwise.
func (c *Config) FeatureThreshold() any {
	if len(c.Thresholds) > 0 {
		return c.Thresholds
	}
	return c.Threshold
}

func (c *Config) NeedsVectors() bool {
	return c.Engine == "wordvec" || c.Extractor == "embedding"
}
