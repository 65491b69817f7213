package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plenum.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 7
weights:
  unigram: 0.2
  bigram: 0.2
  trigram: 0.6
mask:
  ratio: 0.25
  sample_size: 5
collocations:
  - order: 2
    min_count: 3
    top_k: 4
    metric: tfidf
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.Weights.Unigram != 0.2 || cfg.Weights.Trigram != 0.6 {
		t.Errorf("Weights = %+v", cfg.Weights)
	}
	if cfg.Mask.Ratio != 0.25 || cfg.Mask.SampleSize != 5 {
		t.Errorf("Mask = %+v", cfg.Mask)
	}
	// Placeholder not set in the file keeps its default.
	if cfg.Mask.Placeholder != "[*]" {
		t.Errorf("Placeholder = %q, want default", cfg.Mask.Placeholder)
	}
	if len(cfg.Collocations) != 1 || cfg.Collocations[0].Metric != "tfidf" {
		t.Errorf("Collocations = %+v", cfg.Collocations)
	}
}

func TestValidateWeightsMustSumToOne(t *testing.T) {
	cfg := Default()
	cfg.Weights = WeightsConfig{Unigram: 0.5, Bigram: 0.5, Trigram: 0.5}
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Validate error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateRejectsBadRatio(t *testing.T) {
	cfg := Default()
	cfg.Mask.Ratio = 0
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Validate error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateRejectsUnknownMetric(t *testing.T) {
	cfg := Default()
	cfg.Collocations = []CollocationSpec{{Order: 2, MinCount: 1, TopK: 5, Metric: "pmi"}}
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Validate error = %v, want ErrInvalidInput", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeConfig(t, "weights: [not a map]")
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML succeeded, want error")
	}
}
