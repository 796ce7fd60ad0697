// Package config loads the optional almanac configuration file: a
// small TOML document supplying the default location, clock offset and
// day-length model. Command-line flags override every field.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/naoina/toml"

	"github.com/litescript/ls-almanac/internal/astro"
)

const (
	// appDir is the subdirectory under the user config directory.
	appDir = "ls-almanac"

	// FileName is the configuration file name.
	FileName = "config.toml"
)

// Config holds the file-backed defaults.
type Config struct {
	Name       string  `toml:"name"`
	Latitude   float64 `toml:"latitude"`
	Longitude  float64 `toml:"longitude"`
	UTCOffset  float64 `toml:"utc_offset"`
	HorizonDeg float64 `toml:"horizon_deg"`
	Model      string  `toml:"model"`
}

// Default returns the built-in defaults: the Royal Observatory at
// Greenwich, standard horizon correction, iterative model.
func Default() Config {
	return Config{
		Name:       "Greenwich",
		Latitude:   51.4769,
		Longitude:  -0.0005,
		UTCOffset:  0,
		HorizonDeg: astro.DefaultHorizonDeg,
		Model:      "iterative",
	}
}

// DefaultPath returns the expected config file location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, FileName), nil
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error: the defaults come back unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its domain.
func (c Config) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", c.Longitude)
	}
	if c.UTCOffset < -14 || c.UTCOffset > 14 {
		return fmt.Errorf("utc_offset %.2f out of range [-14, 14]", c.UTCOffset)
	}
	if c.HorizonDeg < -45 || c.HorizonDeg > 45 {
		return fmt.Errorf("horizon_deg %.2f out of range [-45, 45]", c.HorizonDeg)
	}
	if _, err := astro.ModelByName(c.Model); err != nil {
		return err
	}
	return nil
}
