// Package config handles ledgetool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/ledgefinder/internal/ledge"
	"github.com/Faultbox/ledgefinder/pkg/math"
)

// Config holds all ledgetool settings.
type Config struct {
	Extract   ExtractConfig   `yaml:"extract" toml:"extract"`
	Ribbon    RibbonConfig    `yaml:"ribbon" toml:"ribbon"`
	Transform TransformConfig `yaml:"transform" toml:"transform"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ExtractConfig holds edge extraction and path assembly settings.
type ExtractConfig struct {
	Sentinel      string  `yaml:"sentinel" toml:"sentinel"`             // Unmarked vertex color, #RRGGBB[AA]
	Mode          string  `yaml:"mode" toml:"mode"`                     // "components" or "seed"
	Tolerance     float32 `yaml:"tolerance" toml:"tolerance"`           // Endpoint matching grid, 0 = exact
	Workers       int     `yaml:"workers" toml:"workers"`               // Regions processed at once
	DebugSegments bool    `yaml:"debug_segments" toml:"debug_segments"` // Keep raw boundary segments
}

// RibbonConfig holds collider ribbon settings.
type RibbonConfig struct {
	Enabled bool       `yaml:"enabled" toml:"enabled"`
	Height  float32    `yaml:"height" toml:"height"`
	Normal  [3]float32 `yaml:"normal,flow" toml:"normal"`
}

// TransformConfig places the source mesh in world space.
type TransformConfig struct {
	Position [3]float32 `yaml:"position,flow" toml:"position"`
	Rotation [3]float32 `yaml:"rotation,flow" toml:"rotation"` // Euler degrees
	Scale    [3]float32 `yaml:"scale,flow" toml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			Sentinel: "#FFFFFF",
			Mode:     ledge.ModeComponents.String(),
			Workers:  1,
		},
		Ribbon: RibbonConfig{
			Enabled: true,
			Height:  0.1,
			Normal:  [3]float32{0, 1, 0},
		},
		Transform: TransformConfig{
			Scale: [3]float32{1, 1, 1},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Matrix returns the transform as a math.Transform.
func (t TransformConfig) Matrix() math.Transform {
	return math.Transform{
		Position: vec(t.Position),
		Rotation: vec(t.Rotation),
		Scale:    vec(t.Scale),
	}
}

// ExtractOptions converts the config into extractor options.
func (c *Config) ExtractOptions() (ledge.Options, error) {
	opts := ledge.DefaultOptions()

	sentinel, err := ledge.ParseColor(c.Extract.Sentinel)
	if err != nil {
		return opts, fmt.Errorf("extract.sentinel: %w", err)
	}
	mode, err := ledge.ParseMode(c.Extract.Mode)
	if err != nil {
		return opts, fmt.Errorf("extract.mode: %w", err)
	}
	if c.Extract.Tolerance < 0 {
		return opts, fmt.Errorf("extract.tolerance: must not be negative, got %v", c.Extract.Tolerance)
	}

	opts.Sentinel = sentinel
	opts.Mode = mode
	opts.Tolerance = c.Extract.Tolerance
	opts.Workers = c.Extract.Workers
	opts.DebugSegments = c.Extract.DebugSegments
	opts.Transform = c.Transform.Matrix()
	opts.RibbonNormal = vec(c.Ribbon.Normal)
	opts.RibbonHeight = 0
	if c.Ribbon.Enabled {
		opts.RibbonHeight = c.Ribbon.Height
	}
	return opts, nil
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
