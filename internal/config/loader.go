package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [LoadFromReader] for unset fields.
const (
	DefaultThreshold        = 0.65
	DefaultContactThreshold = 0.6
	DefaultMaxSuggestions   = 3
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogInfo
	}
	if cfg.Matching.Threshold == 0 {
		cfg.Matching.Threshold = DefaultThreshold
	}
	if cfg.Matching.ContactThreshold == 0 {
		cfg.Matching.ContactThreshold = DefaultContactThreshold
	}
	if cfg.Matching.MaxSuggestions == 0 {
		cfg.Matching.MaxSuggestions = DefaultMaxSuggestions
	}
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Matching.Threshold < 0 || cfg.Matching.Threshold > 1 {
		errs = append(errs, fmt.Errorf("matching.threshold %.2f is out of range [0, 1]", cfg.Matching.Threshold))
	}
	if cfg.Matching.ContactThreshold < 0 || cfg.Matching.ContactThreshold > 1 {
		errs = append(errs, fmt.Errorf("matching.contact_threshold %.2f is out of range [0, 1]", cfg.Matching.ContactThreshold))
	}
	if cfg.Matching.MaxSuggestions < 0 {
		errs = append(errs, fmt.Errorf("matching.max_suggestions %d must not be negative", cfg.Matching.MaxSuggestions))
	}
	if cfg.Speech.Rate < 0 {
		errs = append(errs, fmt.Errorf("speech.rate %.2f must not be negative", cfg.Speech.Rate))
	}

	return errors.Join(errs...)
}
