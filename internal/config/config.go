package config

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"
)

// Weights are the six factor weights of the insight scorer. They must
// sum to 1.0.
type Weights struct {
	Frequency   float64 `yaml:"frequency" json:"frequency"`
	Intensity   float64 `yaml:"intensity" json:"intensity"`
	Specificity float64 `yaml:"specificity" json:"specificity"`
	Consistency float64 `yaml:"consistency" json:"consistency"`
	Evidence    float64 `yaml:"evidence" json:"evidence"`
	Recency     float64 `yaml:"recency" json:"recency"`
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.Frequency + w.Intensity + w.Specificity + w.Consistency + w.Evidence + w.Recency
}

// Thresholds are the tunable cutoffs of the engine. Similarity is the
// token-Jaccard cutoff for treating two insights of the same kind as
// duplicates; it is a blunt heuristic (no stemming or synonymy), kept
// configurable rather than promised correct. SignificanceCutoff marks
// the statistical-significance sub-score at which a corpus counts as
// significant; the sub-score is capped at interviews/15, so the default
// sits just under what a fully high-confidence ten-interview corpus
// reaches.
type Thresholds struct {
	Similarity         float64 `yaml:"similarity" json:"similarity"`
	HighImpact         float64 `yaml:"high_impact" json:"high_impact"`
	IntervalConfidence float64 `yaml:"interval_confidence" json:"interval_confidence"`
	SignificanceCutoff float64 `yaml:"significance_cutoff" json:"significance_cutoff"`
}

// Config is the full engine configuration.
type Config struct {
	Weights    Weights    `yaml:"weights" json:"weights"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
}

// Default returns the reference configuration the scoring semantics are
// defined against.
func Default() Config {
	return Config{
		Weights: Weights{
			Frequency:   0.25,
			Intensity:   0.20,
			Specificity: 0.15,
			Consistency: 0.15,
			Evidence:    0.15,
			Recency:     0.10,
		},
		Thresholds: Thresholds{
			Similarity:         0.3,
			HighImpact:         7.0,
			IntervalConfidence: 0.95,
			SignificanceCutoff: 0.65,
		},
	}
}

// Load overlays a YAML file onto the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects weight sets that do not sum to 1.0 and thresholds
// outside their meaningful ranges.
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("factor weights must sum to 1.0, got %.4f", c.Weights.Sum())
	}
	if c.Thresholds.Similarity < 0 || c.Thresholds.Similarity > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got %.2f", c.Thresholds.Similarity)
	}
	if c.Thresholds.IntervalConfidence <= 0 || c.Thresholds.IntervalConfidence >= 1 {
		return fmt.Errorf("interval confidence must be in (0,1), got %.2f", c.Thresholds.IntervalConfidence)
	}
	if c.Thresholds.SignificanceCutoff <= 0 || c.Thresholds.SignificanceCutoff >= 1 {
		return fmt.Errorf("significance cutoff must be in (0,1), got %.2f", c.Thresholds.SignificanceCutoff)
	}
	return nil
}
