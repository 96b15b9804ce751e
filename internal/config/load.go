package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, expands, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewBufferString(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
// found reports whether the file existed.
func LoadOptional(path string) (cfg *Config, found bool, err error) {
	cfg, err = Load(path)
	switch {
	case err == nil:
		return cfg, true, nil
	case errors.Is(err, ErrNotFound):
		return Default(), false, nil
	default:
		return nil, false, err
	}
}
