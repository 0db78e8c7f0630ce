// Package config loads the optional petamap.toml project configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// Config is the project configuration. Every field is optional; zero values
// select the built-in defaults.
type Config struct {
	// Project names this plantation project. It scopes cache keys so
	// several projects can share one cache directory.
	Project string `toml:"project"`

	// Title is the map title; "\n" separates lines.
	Title string `toml:"title"`

	Company CompanyConfig `toml:"company"`
	Assets  AssetsConfig  `toml:"assets"`
	Data    DataConfig    `toml:"data"`
	Output  OutputConfig  `toml:"output"`

	// Colors overrides sub-division fill colors by name.
	Colors map[string]string `toml:"colors"`
}

type CompanyConfig struct {
	Name        string `toml:"name"`
	ProducedFor string `toml:"produced_for"`
	Program     string `toml:"program"`
}

type AssetsConfig struct {
	Logo    string `toml:"logo"`
	Compass string `toml:"compass"`
}

type DataConfig struct {
	// Overview is the path to the island admin-boundary layer for the inset.
	Overview string `toml:"overview"`
	// Attribute names in the input layers.
	SubdivisionAttr string `toml:"subdivision_attr"`
	BlockAttr       string `toml:"block_attr"`
	OverviewAttr    string `toml:"overview_attr"`
	// UTMZone overrides the zone assumed for projected inputs.
	UTMZone int `toml:"utm_zone"`
}

type OutputConfig struct {
	DPI int `toml:"dpi"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{DPI: 300},
	}
}

// Load reads a TOML config file. A missing path returns the defaults; an
// unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Output.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive (got %d)", c.Output.DPI)
	}
	if c.Output.DPI == 0 {
		c.Output.DPI = 300
	}
	if c.Data.UTMZone < 0 || c.Data.UTMZone > 60 {
		return errors.New(errors.ErrCodeInvalidConfig, "utm_zone must be between 1 and 60 (got %d)", c.Data.UTMZone)
	}
	return nil
}
