package schema

import "errors"

// ErrUnsupportedFieldFormat is returned when a field uses a format marker
// that has no FieldFormat variant.
var ErrUnsupportedFieldFormat = errors.New("unsupported field format")

// FieldFormat is the declared format of a field. The set of implementations
// is closed: Text, Enum, Boolean, Number and Custom.
type FieldFormat interface {
	isFieldFormat()
}

// Text is free-form text.
type Text struct{}

// Enum restricts a field to a fixed list of values.
type Enum struct {
	Choices []any
}

// Boolean is a yes/no field.
type Boolean struct{}

// Number accepts integers and floating point numbers.
type Number struct{}

// Custom validates values with a caller supplied function.
type Custom struct {
	Name     string
	Validate func(value any) error
}

func (Text) isFieldFormat()    {}
func (Enum) isFieldFormat()    {}
func (Boolean) isFieldFormat() {}
func (Number) isFieldFormat()  {}
func (Custom) isFieldFormat()  {}

// Field is the schema entry for a single configuration path.
type Field struct {
	Format  FieldFormat
	Default any
	Doc     string
}

// Schema maps dot-paths to fields.
type Schema map[string]Field

// Lookup returns the field registered for path.
func (s Schema) Lookup(path string) (*Field, bool) {
	f, ok := s[path]
	if !ok {
		return nil, false
	}
	return &f, true
}

// Merge returns base overlaid with overlay. Fields present in both are taken
// from overlay.
func Merge(base, overlay Schema) Schema {
	out := make(Schema, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
