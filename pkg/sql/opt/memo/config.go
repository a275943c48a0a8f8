// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"flag"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Default selectivity factors. Equality is stricter than a one-sided
// comparison, and both are stricter than an unclassifiable condition (1.0).
// The exact numbers are heuristics in the tradition of Selinger et al.; only
// the ordering is load-bearing.
const (
	defaultEqualitySelectivity   = 0.15
	defaultComparisonSelectivity = 0.25
)

// Config carries the tunable constants of the statistics builder. The
// selectivity factors are configuration rather than literals so deployments
// can tune them without touching estimator logic.
type Config struct {
	// EqualitySelectivity is the fraction of rows assumed to survive an
	// equality condition on any field.
	EqualitySelectivity float64 `yaml:"equality_selectivity"`

	// ComparisonSelectivity is the fraction of rows assumed to survive a
	// one-sided comparison (<, <=, >, >=) on any field. It must be larger
	// than EqualitySelectivity: a range condition is less selective than an
	// exact match.
	ComparisonSelectivity float64 `yaml:"comparison_selectivity"`
}

// DefaultConfig returns the configuration with default factors.
func DefaultConfig() *Config {
	return &Config{
		EqualitySelectivity:   defaultEqualitySelectivity,
		ComparisonSelectivity: defaultComparisonSelectivity,
	}
}

// Validate checks the ordering invariants the estimator relies on:
// 0 < equality < comparison <= 1.
func (c *Config) Validate() error {
	if c.EqualitySelectivity <= 0 || c.EqualitySelectivity >= 1 {
		return errors.Newf(
			"equality_selectivity must be in (0, 1), got %v", c.EqualitySelectivity)
	}
	if c.ComparisonSelectivity <= 0 || c.ComparisonSelectivity > 1 {
		return errors.Newf(
			"comparison_selectivity must be in (0, 1], got %v", c.ComparisonSelectivity)
	}
	if c.EqualitySelectivity >= c.ComparisonSelectivity {
		return errors.Newf(
			"equality_selectivity (%v) must be smaller than comparison_selectivity (%v)",
			c.EqualitySelectivity, c.ComparisonSelectivity)
	}
	return nil
}

// RegisterFlags registers the configuration fields on a flag set.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.EqualitySelectivity, "equality-selectivity",
		c.EqualitySelectivity, "assumed fraction of rows surviving an equality condition")
	fs.Float64Var(&c.ComparisonSelectivity, "comparison-selectivity",
		c.ComparisonSelectivity, "assumed fraction of rows surviving a one-sided comparison")
}

// ConfigFromYAML parses a configuration from YAML, applying defaults for
// omitted fields, and validates it.
func ConfigFromYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing statistics config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
