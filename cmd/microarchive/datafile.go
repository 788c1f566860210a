package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadDataFile reads a metadata snapshot from a YAML or JSON file.
func loadDataFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
