// Package config loads and validates declarative mapper configuration.
// Overrides are normalized into an explicit, validated value before the
// strategy resolver ever sees them; cardinality (one override per member)
// is enforced here, not downstream.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Mappers {
		m := &f.Mappers[i]
		if m.Name == "" {
			m.Name = m.Model
		}

		if m.Naming == "" {
			m.Naming = "camel"
		}
	}
}
