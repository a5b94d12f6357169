package wizard

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/dadi/cli/internal/config/schema"
)

// ResolveDirective combines a question with its schema field (which may be
// nil) into a prompt directive. Values declared on the question always win
// over the schema; function defaults and choice resolvers are passed through
// untouched.
func ResolveDirective(q Question, field *schema.Field) (Directive, error) {
	d := Directive{
		Name:           q.Name,
		Message:        q.Message,
		Type:           q.Type,
		Choices:        q.Choices,
		ResolveChoices: q.ResolveChoices,
		Default:        q.Default,
		Validate:       q.Validate,
	}
	if d.Type == "" {
		d.Type = TypeInput
	}

	var (
		format        schema.FieldFormat = schema.Text{}
		schemaDefault any
	)
	if field != nil {
		schemaDefault = field.Default
		if field.Format != nil {
			format = field.Format
		}
		if d.Message == "" {
			d.Message = field.Doc
		}
	}

	if enum, ok := format.(schema.Enum); ok && !hasChoices(d) {
		d.Choices = enumChoices(enum.Choices)
	}
	if hasChoices(d) && d.Type != TypeCheckbox {
		d.Type = TypeList
	}

	switch f := format.(type) {
	case schema.Text, schema.Enum:
	case schema.Boolean:
		d.Type = TypeConfirm
		schemaDefault = schemaDefault == true
	case schema.Number:
		d.Validate = chainValidators(d.Validate, ValidateNumber)
		d.Filter = ParseNumber
	case schema.Custom:
		d.Validate = chainValidators(d.Validate, customValidator(f))
	default:
		return Directive{}, fmt.Errorf("%s: %w: %T", q.Name, schema.ErrUnsupportedFieldFormat, format)
	}

	if d.Default == nil {
		d.Default = schemaDefault
	}

	return d, nil
}

// decimalPattern matches plain decimal notation with an optional exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ValidateNumber accepts integers and floating point numbers in decimal
// notation. Surrounding characters, digit separators, hex literals, NaN and
// infinities are rejected, as are values too large for a float64.
func ValidateNumber(input string) error {
	if !decimalPattern.MatchString(input) {
		return fmt.Errorf("%w: %q is not a number", ErrValidationFailed, input)
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %q is out of range", ErrValidationFailed, input)
	}
	return nil
}

// ParseNumber converts validated numeric input to int64 when it is an
// integer and float64 otherwise.
func ParseNumber(input string) (any, error) {
	if err := ValidateNumber(input); err != nil {
		return nil, err
	}
	if i, err := strconv.ParseInt(input, 10, 64); err == nil {
		return i, nil
	}
	f, _ := strconv.ParseFloat(input, 64)
	return f, nil
}

func hasChoices(d Directive) bool {
	return len(d.Choices) > 0 || d.ResolveChoices != nil
}

func enumChoices(values []any) []Choice {
	choices := make([]Choice, len(values))
	for i, v := range values {
		choices[i] = Choice{Name: fmt.Sprint(v), Value: v}
	}
	return choices
}

func customValidator(f schema.Custom) func(string) error {
	if f.Validate == nil {
		return nil
	}
	return func(input string) error {
		err := f.Validate(input)
		if err == nil || errors.Is(err, ErrValidationFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
}

// chainValidators runs validators in order and stops at the first error.
// Nil validators are skipped.
func chainValidators(validators ...func(string) error) func(string) error {
	var active []func(string) error
	for _, v := range validators {
		if v != nil {
			active = append(active, v)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(input string) error {
		for _, v := range active {
			if err := v(input); err != nil {
				return err
			}
		}
		return nil
	}
}
