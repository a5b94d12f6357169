package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format markers understood by Parse, lower-cased.
var (
	textMarkers = map[string]bool{
		"*": true, "string": true, "ipaddress": true, "url": true, "email": true,
		"duration": true, "timestamp": true, "object": true,
	}
	numberMarkers = map[string]bool{
		"number": true, "int": true, "integer": true, "nat": true, "port": true,
	}
	booleanMarkers = map[string]bool{
		"boolean": true, "bool": true,
	}
)

// LoadFile reads a schema document from path.
func LoadFile(fs afero.Fs, path string) (Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a convict-style schema document (JSON or YAML). Every mapping
// holding a "format" or "default" key is a field; other mappings are
// sections whose keys extend the dot-path.
func Parse(data []byte) (Schema, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	s := Schema{}
	if err := walk(s, "", raw); err != nil {
		return nil, err
	}
	return s, nil
}

func walk(s Schema, prefix string, node map[string]any) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		child, ok := node[k].(map[string]any)
		if !ok {
			continue
		}

		if !isField(child) {
			if err := walk(s, path, child); err != nil {
				return err
			}
			continue
		}

		field, err := parseField(path, child)
		if err != nil {
			return err
		}
		s[path] = field
	}
	return nil
}

func isField(node map[string]any) bool {
	_, hasFormat := node["format"]
	_, hasDefault := node["default"]
	return hasFormat || hasDefault
}

func parseField(path string, node map[string]any) (Field, error) {
	f := Field{Default: node["default"]}
	if doc, ok := node["doc"].(string); ok {
		f.Doc = doc
	}

	format, ok := node["format"]
	if !ok {
		f.Format = inferFormat(f.Default)
		return f, nil
	}

	parsed, err := parseFormat(format)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", path, err)
	}
	f.Format = parsed
	return f, nil
}

func parseFormat(v any) (FieldFormat, error) {
	switch format := v.(type) {
	case []any:
		return Enum{Choices: format}, nil
	case string:
		marker := strings.ToLower(format)
		switch {
		case textMarkers[marker]:
			return Text{}, nil
		case numberMarkers[marker]:
			return Number{}, nil
		case booleanMarkers[marker]:
			return Boolean{}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFieldFormat, format)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFieldFormat, v)
	}
}

// inferFormat mirrors convict, which derives the format from the default
// when none is declared.
func inferFormat(def any) FieldFormat {
	switch def.(type) {
	case bool:
		return Boolean{}
	case int, int64, float64:
		return Number{}
	default:
		return Text{}
	}
}
