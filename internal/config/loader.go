package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"servicegraph/pkg/logging"
)

// LoadConfig reads the topology file at path, applies defaults, validates it
// and renders the command templates. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
		}
		logging.Info("ConfigLoader", "Error loading config from %s: %s", path, err)
		return Config{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := Render(&cfg); err != nil {
		return Config{}, err
	}

	logging.Info("ConfigLoader", "Loaded %d services from %s", len(cfg.Services), path)
	return cfg, nil
}

// Parse decodes a topology document and applies defaults. It does not
// validate or render.
func Parse(data []byte) (Config, error) {
	cfg := GetDefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// BaseDir is the directory relative service dirs are resolved against.
func (c Config) BaseDir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}
