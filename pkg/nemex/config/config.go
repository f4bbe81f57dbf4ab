// Package config loads the YAML-encoded engine configuration: the
// similarity measure, threshold, tokenizer options, pruner choice, and
// whether to run the verifier over filtered matches.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

// TokenizerConfig mirrors tokenize.Options for YAML decoding.
type TokenizerConfig struct {
	Mode        string `yaml:"mode"` // "char" or "word"
	Q           int    `yaml:"q"`
	SpecialChar string `yaml:"special_char"`
	Unique      bool   `yaml:"unique"`
	Lower       bool   `yaml:"lower"`
}

// EngineConfig is the top-level, YAML-loadable configuration for a nemex
// engine: which similarity measure to filter under, at what threshold,
// which pruner to use, and whether to verify filtered matches.
type EngineConfig struct {
	Similarity string          `yaml:"similarity"` // jaccard|cosine|dice|edit_sim|edit_dist
	Threshold  float64         `yaml:"threshold"`
	Pruner     string          `yaml:"pruner"` // none|lazy|bucket|batch
	Verify     bool            `yaml:"verify"`
	Tokenizer  TokenizerConfig `yaml:"tokenizer"`
}

var charBasedSimilarities = map[string]bool{
	"edit_sim":  true,
	"edit_dist": true,
}

// Validate checks the configuration against the engine's construction-time
// invariants: similarity/mode compatibility, threshold range, q required
// for character-based similarities, a recognized pruner name.
func (c EngineConfig) Validate() error {
	switch c.Similarity {
	case "jaccard", "cosine", "dice", "edit_sim", "edit_dist":
	default:
		return fmt.Errorf("%w: unknown similarity %q", nemexerr.ErrInvalidConfig, c.Similarity)
	}

	charBased := charBasedSimilarities[c.Similarity]
	if charBased && c.Tokenizer.Mode != "char" {
		return fmt.Errorf("%w: similarity %q requires a char tokenizer", nemexerr.ErrInvalidConfig, c.Similarity)
	}
	if !charBased && c.Tokenizer.Mode == "char" {
		return fmt.Errorf("%w: similarity %q requires a word tokenizer, not char", nemexerr.ErrInvalidConfig, c.Similarity)
	}

	if c.Similarity == "edit_dist" {
		if c.Threshold < 0 {
			return fmt.Errorf("%w: edit_dist threshold must be a non-negative integer, got %v", nemexerr.ErrInvalidConfig, c.Threshold)
		}
	} else if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1], got %v", nemexerr.ErrInvalidConfig, c.Threshold)
	}

	if charBased && c.Tokenizer.Q < 1 {
		return fmt.Errorf("%w: q must be at least 1 for similarity %q", nemexerr.ErrInvalidConfig, c.Similarity)
	}

	switch c.Pruner {
	case "", "none", "lazy", "bucket", "batch":
	default:
		return fmt.Errorf("%w: unknown pruner %q", nemexerr.ErrInvalidConfig, c.Pruner)
	}

	return nil
}

// Load reads and validates an EngineConfig from a YAML file at path.
func Load(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading engine config %s: %w", path, err)
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing engine config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
