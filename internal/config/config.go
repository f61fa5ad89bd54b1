// Package config provides configuration management for the analysis tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	errs "idx-insight/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig holds market-data configuration.
type DataConfig struct {
	SymbolSuffix string `mapstructure:"symbol_suffix"` // ".JK" for IDX listings
	Range        string `mapstructure:"range"`         // history range hint, e.g. "2y"
}

// ScanConfig holds batch-scan configuration.
type ScanConfig struct {
	Concurrency int      `mapstructure:"concurrency"`
	Watchlist   []string `mapstructure:"watchlist"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/idx-insight"
	}
	return filepath.Join(home, ".config", "idx-insight")
}

// Load loads configuration from the specified directory, creating a template
// config on first run. If configDir is empty, the default directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("data.symbol_suffix", ".JK")
	v.SetDefault("data.range", "2y")
	v.SetDefault("scan.concurrency", 5)
	v.SetDefault("scan.watchlist", []string{"BBCA", "BBRI", "BMRI", "TLKM", "ASII"})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return nil, fmt.Errorf("creating template config: %w", werr)
			}
		} else {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Scan.Concurrency < 1 {
		return errs.Wrapf(errs.ErrConfigInvalid, "scan.concurrency must be >= 1, got %d", c.Scan.Concurrency)
	}
	switch c.Data.Range {
	case "6mo", "1y", "2y":
	default:
		return errs.Wrapf(errs.ErrConfigInvalid, "data.range must be one of 6mo/1y/2y, got %q", c.Data.Range)
	}
	return nil
}

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	template := `# idx-insight configuration

[data]
# Suffix appended to every ticker; ".JK" maps BBCA to Yahoo's BBCA.JK.
symbol_suffix = ".JK"
# History range fetched per analysis: 6mo, 1y or 2y.
range = "2y"

[scan]
# Bounded concurrency for batch scans.
concurrency = 5
watchlist = ["BBCA", "BBRI", "BMRI", "TLKM", "ASII"]

[logging]
level = "info"
console = true
file = true
`
	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(template), 0644)
}
