// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"tyre-cost/internal/errors"
	"tyre-cost/internal/logging"
)

// FileName is the configuration file looked up in the home directory
const FileName = ".tyre-cost.json"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Reference contains reference data settings
	Reference ReferenceConfig `json:"reference"`

	// Defaults are the calculator inputs used when flags are omitted
	Defaults DefaultsConfig `json:"defaults"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ReferenceConfig points at an HCL file overriding the built-in
// constants and supplier catalog
type ReferenceConfig struct {
	// Path is the HCL reference file; empty uses the built-in data
	Path string `json:"path,omitempty"`
}

// DefaultsConfig contains calculator defaults
type DefaultsConfig struct {
	// Supplier is the supplier id preselected by calc
	Supplier string `json:"supplier"`

	// Volume is the annual volume in units
	Volume float64 `json:"volume"`

	// TargetOMR is the growth target landed cost per unit
	TargetOMR string `json:"target_omr"`

	// Years is the projection horizon
	Years int `json:"years"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows the itemized breakdown alongside the summary
	ShowDetails bool `json:"show_details"`

	// Color enables ANSI colors in cli output
	Color bool `json:"color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Defaults: DefaultsConfig{
			Supplier:  "triangle",
			Volume:    1000,
			TargetOMR: "92.5",
			Years:     5,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
			Color:         true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.tyre-cost.json, or the file name alone
// when there is no home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read config", err).WithContext("file", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("invalid config file", err).WithContext("file", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects defaults the calculator would refuse
func (c *Config) Validate() error {
	if c.Defaults.Volume < 0 {
		return errors.Configf("defaults.volume must not be negative, got %v", c.Defaults.Volume).
			WithContext("field", "defaults.volume")
	}
	if c.Defaults.Years < 0 {
		return errors.Configf("defaults.years must not be negative, got %d", c.Defaults.Years).
			WithContext("field", "defaults.years")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Output("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode config", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Output("failed to write config", err).WithContext("file", path)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
