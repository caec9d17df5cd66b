// Package config loads viewer settings from defaults, an optional YAML file,
// an optional .env file and RADIAL_VIEWER_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "RADIAL_VIEWER_"

// Display is the size of the area the image is fitted into.
type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Raw describes the fixed layout of the legacy raw detector format.
type Raw struct {
	HeaderOffset int      `yaml:"header_offset"`
	Width        int      `yaml:"width"`
	Height       int      `yaml:"height"`
	Extensions   []string `yaml:"extensions"`
}

// Config holds all tunables of a viewer session.
type Config struct {
	HistoryCapacity int     `yaml:"history_capacity"`
	ZoomStep        float64 `yaml:"zoom_step"`
	MinZoom         float64 `yaml:"min_zoom"`
	Display         Display `yaml:"display"`
	Raw             Raw     `yaml:"raw"`
	EraseValue      int     `yaml:"erase_value"`
	CSVPrecision    int     `yaml:"csv_precision"`
	PluginDir       string  `yaml:"plugin_dir"`
	LogLevel        string  `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HistoryCapacity: 16,
		ZoomStep:        1.2,
		MinZoom:         0.01,
		Display:         Display{Width: 800, Height: 600},
		Raw: Raw{
			HeaderOffset: 3072,
			Width:        2082,
			Height:       2217,
			Extensions:   []string{".edf", ".raw"},
		},
		EraseValue:   255,
		CSVPrecision: 4,
		LogLevel:     "info",
	}
}

// Load builds a Config. path may be empty, in which case only defaults and
// the environment are consulted. A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv overlays RADIAL_VIEWER_* variables read through getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	ints := map[string]*int{
		"HISTORY_CAPACITY":  &c.HistoryCapacity,
		"DISPLAY_WIDTH":     &c.Display.Width,
		"DISPLAY_HEIGHT":    &c.Display.Height,
		"RAW_HEADER_OFFSET": &c.Raw.HeaderOffset,
		"RAW_WIDTH":         &c.Raw.Width,
		"RAW_HEIGHT":        &c.Raw.Height,
		"ERASE_VALUE":       &c.EraseValue,
		"CSV_PRECISION":     &c.CSVPrecision,
	}
	for name, dst := range ints {
		v := getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"ZOOM_STEP": &c.ZoomStep,
		"MIN_ZOOM":  &c.MinZoom,
	}
	for name, dst := range floats {
		v := getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
	}

	if v := getenv(EnvPrefix + "PLUGIN_DIR"); v != "" {
		c.PluginDir = v
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvPrefix + "RAW_EXTENSIONS"); v != "" {
		c.Raw.Extensions = strings.Split(v, ",")
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.HistoryCapacity < 1:
		return fmt.Errorf("history_capacity must be >= 1, got %d", c.HistoryCapacity)
	case c.ZoomStep <= 1:
		return fmt.Errorf("zoom_step must be > 1, got %g", c.ZoomStep)
	case c.MinZoom <= 0:
		return fmt.Errorf("min_zoom must be > 0, got %g", c.MinZoom)
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	case c.Raw.HeaderOffset < 0:
		return fmt.Errorf("raw.header_offset must be >= 0, got %d", c.Raw.HeaderOffset)
	case c.Raw.Width <= 0 || c.Raw.Height <= 0:
		return fmt.Errorf("raw size must be positive, got %dx%d", c.Raw.Width, c.Raw.Height)
	case c.EraseValue < 0 || c.EraseValue > 255:
		return fmt.Errorf("erase_value must be in [0,255], got %d", c.EraseValue)
	case c.CSVPrecision < 0 || c.CSVPrecision > 17:
		return fmt.Errorf("csv_precision must be in [0,17], got %d", c.CSVPrecision)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
