// Package config reads the optional stampboard.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StampBoard/internal/geom"
	"StampBoard/internal/replay"
	"StampBoard/internal/state"

	"gopkg.in/yaml.v3"
)

// FileName is looked up by LoadOptional.
const FileName = "stampboard.yaml"

var ErrInvalidDensity = errors.New("density must not be negative")

// Config represents stampboard.yaml.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Replay  ReplayConfig  `yaml:"replay"`
	Display DisplayConfig `yaml:"display"`
}

// EngineConfig configures stamp placement.
type EngineConfig struct {
	StampSize     *geom.Size `yaml:"stamp_size,omitempty"`
	MinSpacing    float64    `yaml:"min_spacing"`
	MaxPlacements int        `yaml:"max_placements"`
}

// ReplayConfig configures playback.
type ReplayConfig struct {
	Total   time.Duration `yaml:"total"`
	Hold    time.Duration `yaml:"hold"`
	Dismiss time.Duration `yaml:"dismiss"`
	Insets  geom.Insets   `yaml:"insets"`
}

// DisplayConfig controls the logical to pixel conversion of records.
type DisplayConfig struct {
	// Density is pixels per logical unit. Zero means ask the canvas.
	Density float64 `yaml:"density,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	t := replay.DefaultTiming()
	return &Config{
		Engine: EngineConfig{
			MinSpacing:    state.DefaultMinSpacing,
			MaxPlacements: state.DefaultMaxPlacements,
		},
		Replay: ReplayConfig{Total: t.Total, Hold: t.Hold, Dismiss: t.Dismiss},
	}
}

// Load reads path. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional reads stampboard.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return Load(path)
}

// Validate checks the values can drive the engine and the replay.
func (c *Config) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return err
	}
	if err := c.Timing().Validate(); err != nil {
		return err
	}
	if c.Display.Density < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, c.Display.Density)
	}
	return nil
}

// EngineConfig converts the engine section.
func (c *Config) EngineConfig() state.Config {
	return state.Config{
		StampSize:     c.Engine.StampSize,
		MinSpacing:    c.Engine.MinSpacing,
		MaxPlacements: c.Engine.MaxPlacements,
	}
}

// Timing converts the replay section.
func (c *Config) Timing() replay.Timing {
	return replay.Timing{Total: c.Replay.Total, Hold: c.Replay.Hold, Dismiss: c.Replay.Dismiss}
}
