// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the gtensor command.
//
// Every field has a default; a missing file yields Default(). Unknown keys
// are rejected so a typo does not silently fall back to a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Report formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config is the root document.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Calculation CalculationConfig `yaml:"calculation"`
	Report      ReportConfig      `yaml:"report"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CalculationConfig holds g-tensor defaults.
type CalculationConfig struct {
	Pseudospin          int     `yaml:"pseudospin"`
	Multiplicity        int     `yaml:"multiplicity"` // 0: same as pseudospin
	BohrUnits           bool    `yaml:"bohr_units"`
	DegeneracyTolerance float64 `yaml:"degeneracy_tolerance"`
}

// ReportConfig controls result rendering.
type ReportConfig struct {
	Format    string `yaml:"format"`    // text, yaml
	Precision int32  `yaml:"precision"` // decimal places
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Calculation: CalculationConfig{
			Pseudospin:          2,
			DegeneracyTolerance: 1e-10,
		},
		Report: ReportConfig{Format: FormatText, Precision: 6},
	}
}

// Load reads path over the defaults and validates the result. A path that
// does not exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q (want json or console): %w", c.Logging.Format, ErrInvalidConfig)
	}

	if c.Calculation.Pseudospin < 1 {
		return fmt.Errorf("calculation.pseudospin %d (want ≥ 1): %w", c.Calculation.Pseudospin, ErrInvalidConfig)
	}
	if m := c.Calculation.Multiplicity; m != 0 && m < 2 {
		return fmt.Errorf("calculation.multiplicity %d (want 0 or ≥ 2): %w", m, ErrInvalidConfig)
	}
	if c.Calculation.DegeneracyTolerance <= 0 {
		return fmt.Errorf("calculation.degeneracy_tolerance %g (want > 0): %w", c.Calculation.DegeneracyTolerance, ErrInvalidConfig)
	}

	switch c.Report.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("report.format %q (want text or yaml): %w", c.Report.Format, ErrInvalidConfig)
	}
	if c.Report.Precision < 0 || c.Report.Precision > 15 {
		return fmt.Errorf("report.precision %d (want 0..15): %w", c.Report.Precision, ErrInvalidConfig)
	}

	return nil
}
