// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all contactbook configuration.
type Config struct {
	Store   Store   `yaml:"store"`
	Log     Log     `yaml:"log"`
	Display Display `yaml:"display"`
}

// Store holds contact store settings.
type Store struct {
	Seed []string `yaml:"seed" validate:"dive,required"` // Contact files imported at startup
}

// Log holds logger settings.
type Log struct {
	Mode  string `yaml:"mode" validate:"required,oneof=development production"`
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
}

// Display holds output settings.
type Display struct {
	Plain bool `yaml:"plain"` // Force plain text even on a TTY
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: Log{
			Mode:  "development",
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	for i, name := range c.Store.Seed {
		switch strings.ToLower(path.Ext(name)) {
		case ".csv", ".yaml", ".yml":
		default:
			return fmt.Errorf("config: store.seed[%d] must be a .csv, .yaml or .yml file, got %q", i, name)
		}
	}
	return nil
}

// formatValidationError reports the first failed rule with its field path.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("config: %s: validation failed on %q (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return fmt.Errorf("config: %w", err)
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_SEED (comma separated), CONTACTBOOK_LOG_MODE,
// CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_PLAIN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTBOOK_SEED"); v != "" {
		var seed []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				seed = append(seed, s)
			}
		}
		c.Store.Seed = seed
	}
	if v := os.Getenv("CONTACTBOOK_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTBOOK_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTBOOK_PLAIN %q: %w", v, err)
		}
		c.Display.Plain = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store   *rawStore   `yaml:"store"`
	Log     *rawLog     `yaml:"log"`
	Display *rawDisplay `yaml:"display"`
}

type rawStore struct {
	Seed *[]string `yaml:"seed"`
}

type rawLog struct {
	Mode  *string `yaml:"mode"`
	Level *string `yaml:"level"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Seed != nil {
			c.Store.Seed = append([]string(nil), (*layer.Store.Seed)...)
		}
	}
	if layer.Log != nil {
		if layer.Log.Mode != nil {
			c.Log.Mode = *layer.Log.Mode
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
	if layer.Display != nil {
		if layer.Display.Plain != nil {
			c.Display.Plain = *layer.Display.Plain
		}
	}
}
