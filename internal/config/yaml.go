package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML implements koanf.Parser over gopkg.in/yaml.v3.
type YAML struct{}

// YAMLParser returns a koanf parser for YAML config files.
func YAMLParser() *YAML {
	return &YAML{}
}

// Unmarshal parses YAML bytes into a nested map.
func (p *YAML) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return out, nil
}

// Marshal renders a nested map as YAML.
func (p *YAML) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}
