package config

import (
	"fmt"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/dadi/cli/internal/config/answers"
)

// Load reads a configuration or answers file into an answer tree. JSON and
// YAML are both accepted; numbers decode as float64, as they would from
// JSON.
func Load(fs afero.Fs, path string) (answers.Tree, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON or YAML document into an answer tree. An empty
// document yields an empty tree.
func Parse(data []byte) (answers.Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if raw == nil {
		return answers.New(), nil
	}
	return answers.Clone(answers.Tree(raw)), nil
}
