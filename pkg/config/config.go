// Package config loads the application configuration: embedded defaults,
// overlaid by an optional YAML file.
package config

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/intothevoid/doori/pkg/measure"
)

//go:embed default.yaml
var defaultYAML []byte

// Config holds the measurement settings plus the demo inputs.
type Config struct {
	measure.Config `yaml:",inline"`

	// Source is a capture device number or a video file/URL.
	Source string `yaml:"source"`
	// Tracks is a MOT format track file replayed as the tracker output.
	Tracks string `yaml:"tracks"`
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := decode(defaultYAML, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding embedded defaults")
	}
	return cfg, nil
}

// Load returns the defaults overlaid with the file at path. An empty path
// returns the defaults. A names mapping in the file replaces the default
// class names rather than merging with them.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data, cfg)
}

// Parse overlays data onto base and validates the result.
func Parse(data []byte, base *Config) (*Config, error) {
	cfg := *base
	defaults := cfg.ClassNames
	cfg.ClassNames = nil
	if err := decode(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if cfg.ClassNames == nil {
		cfg.ClassNames = defaults
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Marshal renders the effective configuration, for logging and for writing
// a starter file.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
