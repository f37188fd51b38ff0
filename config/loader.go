package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Loader loads and parses pricing configuration files.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads and validates a pricing configuration from a YAML file.
// File errors are wrapped with context (use os.IsNotExist to check for missing file).
func (l *Loader) LoadFromFile(path string) (*PricingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg, err := l.LoadFromBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", path)
	}

	return cfg, nil
}

// LoadFromBytes parses a pricing configuration from raw YAML bytes. Keys
// left out keep their defaults. Empty data (len==0) returns ErrConfigEmpty.
func (l *Loader) LoadFromBytes(data []byte) (*PricingConfig, error) {
	if len(data) == 0 {
		return nil, ErrConfigEmpty
	}

	config := DefaultPricing()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "parsing YAML")
	}

	if err := NewValidator().Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadPricing returns the pricing config at path, or the defaults when
// path is empty.
func LoadPricing(path string) (*PricingConfig, error) {
	if path == "" {
		cfg := DefaultPricing()
		return &cfg, nil
	}
	return NewLoader().LoadFromFile(path)
}
