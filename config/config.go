// Copyright 2025 Nevis Search Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads the application configuration from a YAML file and
// maps it onto the per-package configuration structs.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/hannakb/NevisSearchAPI/search"
	"github.com/hannakb/NevisSearchAPI/summary"
)

// Config holds the full application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	AI        AIConfig        `yaml:"ai"`
	Search    SearchConfig    `yaml:"search"`
	Summary   SummaryConfig   `yaml:"summary"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AIConfig holds embedding and summarizer service settings.
type AIConfig struct {
	Host            string `yaml:"host"` // sets both service hosts when the specific ones are empty
	EmbeddingHost   string `yaml:"embedding_host"`
	SummarizerHost  string `yaml:"summarizer_host"`
	EmbeddingModel  string `yaml:"embedding_model"`
	SummarizerModel string `yaml:"summarizer_model"`
}

// SearchConfig holds ranking knobs.
type SearchConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	KeywordWeight       float64 `yaml:"keyword_weight"`
	SemanticWeight      float64 `yaml:"semantic_weight"`
	LimitMin            int     `yaml:"limit_min"`
	LimitDefault        int     `yaml:"limit_default"`
	LimitMax            int     `yaml:"limit_max"`
}

// SummaryConfig holds summary length bounds.
type SummaryConfig struct {
	LengthMin     int `yaml:"length_min"`
	LengthDefault int `yaml:"length_default"`
	LengthMax     int `yaml:"length_max"`
}

// IngestionConfig holds write-path settings.
type IngestionConfig struct {
	PoolSize  int `yaml:"pool_size"`  // 0 = derived from CPU count
	BatchSize int `yaml:"batch_size"` // documents per embedding call
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// envVarPattern matches ${VAR} references in the raw config file.
var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads configuration from a YAML file. ${VAR} references are expanded
// from the environment before parsing. Missing fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./nevis-data"
	}

	aiDefaults := ai.DefaultConfig()
	if c.AI.Host == "" {
		c.AI.Host = aiDefaults.EmbeddingHost
	}
	if c.AI.EmbeddingHost == "" {
		c.AI.EmbeddingHost = c.AI.Host
	}
	if c.AI.SummarizerHost == "" {
		c.AI.SummarizerHost = c.AI.Host
	}
	if c.AI.EmbeddingModel == "" {
		c.AI.EmbeddingModel = aiDefaults.EmbeddingModel
	}
	if c.AI.SummarizerModel == "" {
		c.AI.SummarizerModel = aiDefaults.SummarizerModel
	}

	searchDefaults := search.DefaultConfig()
	if c.Search.SimilarityThreshold == 0 {
		c.Search.SimilarityThreshold = searchDefaults.SimilarityThreshold
	}
	if c.Search.KeywordWeight == 0 && c.Search.SemanticWeight == 0 {
		c.Search.KeywordWeight = searchDefaults.Weights.Keyword
		c.Search.SemanticWeight = searchDefaults.Weights.Semantic
	}
	if c.Search.LimitMin == 0 {
		c.Search.LimitMin = searchDefaults.LimitMin
	}
	if c.Search.LimitDefault == 0 {
		c.Search.LimitDefault = searchDefaults.LimitDefault
	}
	if c.Search.LimitMax == 0 {
		c.Search.LimitMax = searchDefaults.LimitMax
	}

	summaryDefaults := summary.DefaultConfig()
	if c.Summary.LengthMin == 0 {
		c.Summary.LengthMin = summaryDefaults.LengthMin
	}
	if c.Summary.LengthDefault == 0 {
		c.Summary.LengthDefault = summaryDefaults.LengthDefault
	}
	if c.Summary.LengthMax == 0 {
		c.Summary.LengthMax = summaryDefaults.LengthMax
	}

	if c.Ingestion.BatchSize <= 0 {
		c.Ingestion.BatchSize = 32
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness by delegating to the
// per-package validators.
func (c *Config) Validate() error {
	if err := c.AIConfig().Validate(); err != nil {
		return err
	}
	if err := c.SearchConfig().Validate(); err != nil {
		return err
	}
	if err := c.SummaryConfig().Validate(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// AIConfig maps the file settings onto an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithSummarizerHost(c.AI.SummarizerHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithSummarizerModel(c.AI.SummarizerModel),
	)
}

// SearchConfig maps the file settings onto a search.Config.
func (c *Config) SearchConfig() *search.Config {
	return &search.Config{
		SimilarityThreshold: c.Search.SimilarityThreshold,
		Weights: search.HybridWeights{
			Keyword:  c.Search.KeywordWeight,
			Semantic: c.Search.SemanticWeight,
		},
		LimitMin:     c.Search.LimitMin,
		LimitDefault: c.Search.LimitDefault,
		LimitMax:     c.Search.LimitMax,
	}
}

// SummaryConfig maps the file settings onto a summary.Config.
func (c *Config) SummaryConfig() *summary.Config {
	return &summary.Config{
		LengthMin:     c.Summary.LengthMin,
		LengthDefault: c.Summary.LengthDefault,
		LengthMax:     c.Summary.LengthMax,
	}
}

// LogLevel converts the configured level to a slog.Level.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
