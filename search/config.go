package search

import "errors"

// Config holds tunable search parameters. All knobs have documented defaults
// and are injected at construction time rather than read from the
// environment inside scoring code.
type Config struct {
	// SimilarityThreshold is the minimum cosine similarity (exclusive) for a
	// semantic match. Default 0.3; deployments trading recall for precision
	// commonly lower it toward 0.15.
	SimilarityThreshold float64

	// Weights are the hybrid merge weights for documents.
	Weights HybridWeights

	// LimitMin, LimitDefault and LimitMax bound the per-search result limit.
	// A limit of 0 is replaced by LimitDefault; anything outside
	// [LimitMin, LimitMax] is rejected.
	LimitMin     int
	LimitDefault int
	LimitMax     int
}

// DefaultConfig returns the standard search configuration.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.3,
		Weights:             DefaultHybridWeights(),
		LimitMin:            1,
		LimitDefault:        10,
		LimitMax:            100,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return errors.New("search config: SimilarityThreshold must be within [-1, 1]")
	}
	if c.Weights.Keyword < 0 || c.Weights.Semantic < 0 {
		return errors.New("search config: hybrid weights must be non-negative")
	}
	if c.Weights.Keyword == 0 && c.Weights.Semantic == 0 {
		return errors.New("search config: at least one hybrid weight must be positive")
	}
	if c.LimitMin < 1 {
		return errors.New("search config: LimitMin must be at least 1")
	}
	if c.LimitMax < c.LimitMin {
		return errors.New("search config: LimitMax must be >= LimitMin")
	}
	if c.LimitDefault < c.LimitMin || c.LimitDefault > c.LimitMax {
		return errors.New("search config: LimitDefault must be within [LimitMin, LimitMax]")
	}
	return nil
}
