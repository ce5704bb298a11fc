// Package config provides configuration loading and defaults for starbanner.
//
// Configuration is read from an optional TOML file. Every value has a
// built-in default that reproduces the stock 3000×1000 banner, so running
// without a config file is the normal case; the file only exists to turn
// the canvas size, palette, search ranges and output path into explicit
// parameters.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/starbanner/internal/atomicfile"
	"tools.zach/dev/starbanner/internal/paths"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level banner configuration.
type Config struct {
	// Canvas holds the output image size, background and corner rounding.
	Canvas CanvasConfig `toml:"canvas"`
	// Art holds the banner content, its colors and the font-size search.
	Art ArtConfig `toml:"art"`
	// Stars holds the starfield background settings.
	Stars StarsConfig `toml:"stars"`
	// Accents holds the glyphs placed around the art.
	Accents AccentsConfig `toml:"accents"`
	// Font holds font discovery settings.
	Font FontConfig `toml:"font"`
	// Output holds the destination of the rendered PNG.
	Output OutputConfig `toml:"output"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// CanvasConfig holds the output image geometry.
type CanvasConfig struct {
	// Width is the image width in pixels.
	Width int `toml:"width"`
	// Height is the image height in pixels.
	Height int `toml:"height"`
	// Background is the hex fill color behind the stars.
	Background string `toml:"background"`
	// CornerRadius is the radius of the transparent rounded corners in pixels.
	CornerRadius int `toml:"corner_radius"`
}

// ArtConfig holds the banner content and how it is sized.
type ArtConfig struct {
	// Text replaces the built-in art when non-empty.
	Text string `toml:"text,omitempty"`
	// File names a text file whose content replaces the built-in art.
	// Ignored when Text is set.
	File string `toml:"file,omitempty"`
	// Color is the hex color of the art glyphs.
	Color string `toml:"color"`
	// ShadowColor is the hex color of the offset shadow.
	ShadowColor string `toml:"shadow_color"`
	// MaxWidthFraction is the share of the canvas width the art may cover.
	MaxWidthFraction float64 `toml:"max_width_fraction"`
	// MaxHeightFraction is the share of the canvas height the art may cover.
	MaxHeightFraction float64 `toml:"max_height_fraction"`
	// MaxSize is the first (largest) font size tried.
	MaxSize int `toml:"max_size"`
	// MinSize is the last (smallest) font size tried.
	MinSize int `toml:"min_size"`
	// FallbackSize is used when no size in [MinSize, MaxSize] fits.
	FallbackSize int `toml:"fallback_size"`
}

// StarsConfig holds the starfield settings.
type StarsConfig struct {
	// Density is the number of stars per canvas pixel.
	Density float64 `toml:"density"`
	// MinBrightness is the lowest gray level a star may have (0-255).
	MinBrightness int `toml:"min_brightness"`
	// MaxBrightness is the highest gray level a star may have (0-255).
	MaxBrightness int `toml:"max_brightness"`
	// SparkleChance is the probability a star is drawn as a four-pointed sparkle.
	SparkleChance float64 `toml:"sparkle_chance"`
	// SparkleArm is the spike length of a sparkle in pixels.
	SparkleArm int `toml:"sparkle_arm"`
	// Seed seeds the star placement; 0 picks a new seed every run.
	Seed uint64 `toml:"seed"`
}

// AccentsConfig holds the accent glyphs drawn around the art.
type AccentsConfig struct {
	// Enabled toggles the accent glyphs.
	Enabled bool `toml:"enabled"`
	// Glyph is the text drawn at each of the eight accent positions.
	Glyph string `toml:"glyph"`
	// Color is the hex color of the accent glyphs.
	Color string `toml:"color"`
	// Scale is the accent size relative to the art font size.
	Scale float64 `toml:"scale"`
	// MinSize is the smallest accent font size.
	MinSize int `toml:"min_size"`
}

// FontConfig holds font discovery settings.
type FontConfig struct {
	// Paths are font files tried before the built-in candidates.
	Paths []string `toml:"paths"`
	// SearchDirs are searched recursively before the built-in font folders.
	SearchDirs []string `toml:"search_dirs"`
	// Fallback is a "google:FAMILY:WEIGHT" spec downloaded when no local font works.
	Fallback string `toml:"fallback,omitempty"`
	// CacheDir overrides where downloaded fonts are cached.
	CacheDir string `toml:"cache_dir,omitempty"`
}

// OutputConfig holds the output destination.
type OutputConfig struct {
	// Path is the PNG file written at the end of a run.
	Path string `toml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File sends logs to a rotating file instead of stderr when set.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with the stock banner settings.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:        3000,
			Height:       1000,
			Background:   "#050514",
			CornerRadius: 30,
		},
		Art: ArtConfig{
			Color:             "#F0F0FF",
			ShadowColor:       "#505064",
			MaxWidthFraction:  0.9,
			MaxHeightFraction: 0.8,
			MaxSize:           200,
			MinSize:           6,
			FallbackSize:      20,
		},
		Stars: StarsConfig{
			Density:       0.0003,
			MinBrightness: 180,
			MaxBrightness: 255,
			SparkleChance: 0.06,
			SparkleArm:    6,
		},
		Accents: AccentsConfig{
			Enabled: true,
			Glyph:   "*",
			Color:   "#FFD700",
			Scale:   0.8,
			MinSize: 18,
		},
		Font: FontConfig{
			Paths:      []string{},
			SearchDirs: []string{},
		},
		Output: OutputConfig{
			Path: paths.OutputDir + "/" + paths.OutputFile,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Example Configuration
// ///////////////////////////////////////////////

// ExampleConfig returns a Config suitable for generating banner.default.toml.
// For this project all defaults are good examples.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path, overlaying it on
// [DefaultConfig]. If the file doesn't exist, returns DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes over [DefaultConfig] and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.CornerRadius < 0 || 2*c.Canvas.CornerRadius > min(c.Canvas.Width, c.Canvas.Height) {
		return fmt.Errorf("corner_radius must be between 0 and half the shorter canvas side, got %d", c.Canvas.CornerRadius)
	}

	colors := []struct {
		key, value string
	}{
		{"canvas.background", c.Canvas.Background},
		{"art.color", c.Art.Color},
		{"art.shadow_color", c.Art.ShadowColor},
		{"accents.color", c.Accents.Color},
	}
	for _, col := range colors {
		if _, err := ParseHexColor(col.value); err != nil {
			return fmt.Errorf("invalid %s: %w", col.key, err)
		}
	}

	if !validFraction(c.Art.MaxWidthFraction) {
		return fmt.Errorf("max_width_fraction must be in (0, 1], got %g", c.Art.MaxWidthFraction)
	}
	if !validFraction(c.Art.MaxHeightFraction) {
		return fmt.Errorf("max_height_fraction must be in (0, 1], got %g", c.Art.MaxHeightFraction)
	}
	if c.Art.MinSize <= 0 {
		return fmt.Errorf("min_size must be > 0, got %d", c.Art.MinSize)
	}
	if c.Art.MaxSize < c.Art.MinSize {
		return fmt.Errorf("max_size (%d) must be >= min_size (%d)", c.Art.MaxSize, c.Art.MinSize)
	}
	if c.Art.FallbackSize <= 0 {
		return fmt.Errorf("fallback_size must be > 0, got %d", c.Art.FallbackSize)
	}

	if c.Stars.Density < 0 {
		return fmt.Errorf("stars.density must be >= 0, got %g", c.Stars.Density)
	}
	if c.Stars.MinBrightness < 0 || c.Stars.MaxBrightness > 255 || c.Stars.MinBrightness > c.Stars.MaxBrightness {
		return fmt.Errorf("star brightness range must satisfy 0 <= min <= max <= 255, got %d..%d",
			c.Stars.MinBrightness, c.Stars.MaxBrightness)
	}
	if c.Stars.SparkleChance < 0 || c.Stars.SparkleChance > 1 {
		return fmt.Errorf("sparkle_chance must be in [0, 1], got %g", c.Stars.SparkleChance)
	}
	if c.Stars.SparkleArm <= 0 {
		return fmt.Errorf("sparkle_arm must be > 0, got %d", c.Stars.SparkleArm)
	}

	if c.Accents.Enabled {
		if c.Accents.Glyph == "" {
			return fmt.Errorf("accents.glyph must be set when accents are enabled")
		}
		if c.Accents.Scale <= 0 {
			return fmt.Errorf("accents.scale must be > 0, got %g", c.Accents.Scale)
		}
		if c.Accents.MinSize <= 0 {
			return fmt.Errorf("accents.min_size must be > 0, got %d", c.Accents.MinSize)
		}
	}

	if c.Font.Fallback != "" {
		parts := strings.SplitN(c.Font.Fallback, ":", 3)
		if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
			return fmt.Errorf("invalid font.fallback %q: expected google:FAMILY:WEIGHT", c.Font.Fallback)
		}
	}

	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	return nil
}

// validFraction reports whether f is in (0, 1].
func validFraction(f float64) bool {
	return f > 0 && f <= 1
}

// ///////////////////////////////////////////////
// Content Helpers
// ///////////////////////////////////////////////

// ArtText returns the configured art content, reading [ArtConfig.File]
// through resolve when only a file is configured. An empty result means the
// built-in art should be used.
func (c *Config) ArtText(resolve func(string) string) (string, error) {
	if c.Art.Text != "" {
		return c.Art.Text, nil
	}
	if c.Art.File == "" {
		return "", nil
	}
	path := c.Art.File
	if resolve != nil {
		path = resolve(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read art file: %w", err)
	}
	return string(data), nil
}
