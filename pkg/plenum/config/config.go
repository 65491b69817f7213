// Package config loads the toolkit's YAML configuration.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hansardlab/plenum/pkg/plenum/colloc"
	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
	"github.com/hansardlab/plenum/pkg/plenum/lm"
	"github.com/hansardlab/plenum/pkg/plenum/mask"
)

// Config is the full toolkit configuration.
type Config struct {
	// Seed drives every random draw; runs with the same seed and input
	// reproduce identical masked sentences and filled results.
	Seed int64 `yaml:"seed"`

	Weights      WeightsConfig     `yaml:"weights"`
	Mask         MaskConfig        `yaml:"mask"`
	Collocations []CollocationSpec `yaml:"collocations"`
}

// WeightsConfig holds the three interpolation coefficients.
type WeightsConfig struct {
	Unigram float64 `yaml:"unigram"`
	Bigram  float64 `yaml:"bigram"`
	Trigram float64 `yaml:"trigram"`
}

// Weights converts to the model's weight type.
func (w WeightsConfig) Weights() lm.Weights {
	return lm.Weights{Unigram: w.Unigram, Bigram: w.Bigram, Trigram: w.Trigram}
}

// MaskConfig controls the masking stage.
type MaskConfig struct {
	Ratio       float64 `yaml:"ratio"`
	Placeholder string  `yaml:"placeholder"`
	SampleSize  int     `yaml:"sample_size"`
}

// CollocationSpec is one collocation extraction request.
type CollocationSpec struct {
	Order    int    `yaml:"order"`
	MinCount int    `yaml:"min_count"`
	TopK     int    `yaml:"top_k"`
	Metric   string `yaml:"metric"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Seed: 42,
		Weights: WeightsConfig{
			Unigram: 0.1,
			Bigram:  0.3,
			Trigram: 0.6,
		},
		Mask: MaskConfig{
			Ratio:       0.1,
			Placeholder: mask.DefaultPlaceholder,
			SampleSize:  10,
		},
		Collocations: []CollocationSpec{
			{Order: 2, MinCount: 10, TopK: 10, Metric: string(colloc.MetricFrequency)},
			{Order: 2, MinCount: 10, TopK: 10, Metric: string(colloc.MetricTFIDF)},
			{Order: 3, MinCount: 10, TopK: 10, Metric: string(colloc.MetricFrequency)},
			{Order: 3, MinCount: 10, TopK: 10, Metric: string(colloc.MetricTFIDF)},
			{Order: 4, MinCount: 10, TopK: 10, Metric: string(colloc.MetricFrequency)},
			{Order: 4, MinCount: 10, TopK: 10, Metric: string(colloc.MetricTFIDF)},
		},
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	w := c.Weights
	if w.Unigram < 0 || w.Bigram < 0 || w.Trigram < 0 {
		return fmt.Errorf("interpolation weights must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	if sum := w.Unigram + w.Bigram + w.Trigram; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("interpolation weights sum to %v, want 1: %w", sum, internalerr.ErrInvalidConfig)
	}

	if c.Mask.Ratio <= 0 || c.Mask.Ratio > 1 {
		return fmt.Errorf("mask ratio %v outside (0, 1]: %w", c.Mask.Ratio, internalerr.ErrInvalidConfig)
	}
	if c.Mask.SampleSize < 1 {
		return fmt.Errorf("mask sample size %d must be at least 1: %w", c.Mask.SampleSize, internalerr.ErrInvalidConfig)
	}

	for i, spec := range c.Collocations {
		if spec.Order < 1 {
			return fmt.Errorf("collocation %d: order %d must be at least 1: %w", i, spec.Order, internalerr.ErrInvalidConfig)
		}
		if spec.TopK < 1 {
			return fmt.Errorf("collocation %d: top_k %d must be at least 1: %w", i, spec.TopK, internalerr.ErrInvalidConfig)
		}
		if _, err := colloc.ParseMetric(spec.Metric); err != nil {
			return fmt.Errorf("collocation %d: %w", i, err)
		}
	}
	return nil
}
