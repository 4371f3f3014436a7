// Package config loads and validates mixing run configuration.
//
// A run configuration names the train capacity and one or more mixed
// candidate definitions. CUE is the primary format, validated against
// the embedded schema; YAML is accepted as a fallback and goes through
// the same Go-side validation.
package config

import (
	"encoding/json"
	"fmt"
)

// Combination is one named mixed-candidate definition. The first stem
// is the anchor, the remainder are train stems.
type Combination struct {
	Name  string   `json:"name" yaml:"name"`
	Stems []string `json:"stems" yaml:"stems"`
}

// Config is the immutable configuration of one mixing run.
type Config struct {
	// TrainLength is the pool capacity in distinct events.
	TrainLength int `json:"train_length" yaml:"train_length"`

	// Combinations lists the mixed candidates to build, each mixed in
	// its own scan pass.
	Combinations []Combination `json:"combinations" yaml:"combinations"`
}

// Validate checks the constraints the schema cannot fully express and
// that the YAML path skips entirely.
func (c *Config) Validate() error {
	if c.TrainLength < 1 {
		return fmt.Errorf("train_length must be positive, got %d", c.TrainLength)
	}
	if len(c.Combinations) == 0 {
		return fmt.Errorf("at least one combination is required")
	}
	seen := make(map[string]bool, len(c.Combinations))
	for i, combo := range c.Combinations {
		if combo.Name == "" {
			return fmt.Errorf("combination %d: name must not be empty", i)
		}
		if seen[combo.Name] {
			return fmt.Errorf("duplicate combination name %q", combo.Name)
		}
		seen[combo.Name] = true
		if len(combo.Stems) < 2 {
			return fmt.Errorf("combination %q: need an anchor and at least one train stem, got %d stems", combo.Name, len(combo.Stems))
		}
		for j, stem := range combo.Stems {
			if stem == "" {
				return fmt.Errorf("combination %q: stem %d must not be empty", combo.Name, j)
			}
		}
	}
	return nil
}

// Snapshot renders the configuration as compact JSON for the output
// database's runs table.
func (c *Config) Snapshot() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config snapshot: %w", err)
	}
	return string(data), nil
}

// normalize rewrites every configured name to its canonical form.
// Output column names are derived from these, so they must compare
// byte-identical regardless of the input encoding.
func (c *Config) normalize() {
	for i := range c.Combinations {
		c.Combinations[i].Name = CanonicalName(c.Combinations[i].Name)
		for j := range c.Combinations[i].Stems {
			c.Combinations[i].Stems[j] = CanonicalName(c.Combinations[i].Stems[j])
		}
	}
}
