package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/schema"
)

// unknownFormat satisfies schema.FieldFormat through embedding but is not
// one of the known variants.
type unknownFormat struct{ schema.Text }

func TestResolveDirective_NoSchema(t *testing.T) {
	d, err := ResolveDirective(Question{Name: "app.name", Message: "Name", Default: "web"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "app.name", d.Name)
	assert.Equal(t, "Name", d.Message)
	assert.Equal(t, TypeInput, d.Type)
	assert.Equal(t, "web", d.Default)
	assert.Nil(t, d.Validate)
	assert.Nil(t, d.Filter)
}

func TestResolveDirective_Number(t *testing.T) {
	field := &schema.Field{Format: schema.Number{}, Default: 8080}

	d, err := ResolveDirective(Question{Name: "port"}, field)
	require.NoError(t, err)

	require.NotNil(t, d.Validate)
	require.NotNil(t, d.Filter)
	assert.Equal(t, 8080, d.Default)

	tests := []struct {
		input string
		valid bool
	}{
		{"1234", true},
		{"12.5", true},
		{"-3", true},
		{"12a", false},
		{"a12", false},
		{"", false},
		{" 12", false},
		{"NaN", false},
		{"Inf", false},
		{"+7", true},
		{".5", true},
		{"5.", true},
		{"1e3", true},
		{"2.5E-3", true},
		{"1_000", false},
		{"0x1p4", false},
		{"0x10", false},
		{"1e", false},
		{".", false},
		{"1e400", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := d.Validate(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidationFailed)
			}
		})
	}
}

func TestResolveDirective_NumberKeepsQuestionValidator(t *testing.T) {
	positive := func(s string) error {
		if len(s) > 0 && s[0] == '-' {
			return ErrValidationFailed
		}
		return nil
	}
	d, err := ResolveDirective(Question{Name: "port", Validate: positive}, &schema.Field{Format: schema.Number{}})
	require.NoError(t, err)

	assert.Error(t, d.Validate("-1"))
	assert.Error(t, d.Validate("x"))
	assert.NoError(t, d.Validate("1"))
}

func TestResolveDirective_Boolean(t *testing.T) {
	tests := []struct {
		name          string
		question      Question
		schemaDefault any
		want          any
	}{
		{"true default", Question{Name: "cache"}, true, true},
		{"missing default is false", Question{Name: "cache"}, nil, false},
		{"string default is not true", Question{Name: "cache"}, "true", false},
		{"question default wins", Question{Name: "cache", Default: false}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ResolveDirective(tt.question, &schema.Field{Format: schema.Boolean{}, Default: tt.schemaDefault})
			require.NoError(t, err)
			assert.Equal(t, TypeConfirm, d.Type)
			assert.Equal(t, tt.want, d.Default)
		})
	}
}

func TestResolveDirective_Enum(t *testing.T) {
	field := &schema.Field{
		Format:  schema.Enum{Choices: []any{"development", "test", "production"}},
		Default: "development",
		Doc:     "The application environment",
	}

	d, err := ResolveDirective(Question{Name: "env"}, field)
	require.NoError(t, err)

	assert.Equal(t, TypeList, d.Type)
	assert.Equal(t, "The application environment", d.Message)
	assert.Equal(t, "development", d.Default)
	require.Len(t, d.Choices, 3)
	assert.Equal(t, Choice{Name: "test", Value: "test"}, d.Choices[1])
}

func TestResolveDirective_QuestionChoicesWin(t *testing.T) {
	field := &schema.Field{Format: schema.Enum{Choices: []any{"a", "b"}}}
	q := Question{Name: "x", Choices: []Choice{{Name: "Only", Value: "only"}}}

	d, err := ResolveDirective(q, field)
	require.NoError(t, err)
	assert.Equal(t, q.Choices, d.Choices)
	assert.Equal(t, TypeList, d.Type)
}

func TestResolveDirective_ResolverSetsList(t *testing.T) {
	resolver := func(context.Context, answers.Tree) ([]Choice, error) { return nil, nil }

	d, err := ResolveDirective(Question{Name: "bucket", ResolveChoices: resolver}, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeList, d.Type)
	assert.NotNil(t, d.ResolveChoices)
	assert.Empty(t, d.Choices)
}

func TestResolveDirective_CheckboxIsKept(t *testing.T) {
	q := Question{Name: "features", Type: TypeCheckbox, Choices: []Choice{{Name: "A", Value: "a"}}}

	d, err := ResolveDirective(q, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeCheckbox, d.Type)
}

func TestResolveDirective_Custom(t *testing.T) {
	errShort := errors.New("too short")
	field := &schema.Field{Format: schema.Custom{
		Name: "secret",
		Validate: func(v any) error {
			if s, _ := v.(string); len(s) < 8 {
				return errShort
			}
			return nil
		},
	}}

	d, err := ResolveDirective(Question{Name: "auth.secret"}, field)
	require.NoError(t, err)
	require.NotNil(t, d.Validate)

	err = d.Validate("abc")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, errShort)
	assert.NoError(t, d.Validate("long enough"))
}

func TestResolveDirective_FunctionDefaultPassesThrough(t *testing.T) {
	fn := DefaultFunc(func(answers.Tree) any { return 1 })

	d, err := ResolveDirective(Question{Name: "n", Default: fn}, &schema.Field{Default: 2})
	require.NoError(t, err)

	got, ok := d.Default.(DefaultFunc)
	require.True(t, ok)
	assert.Equal(t, 1, got(nil))
}

func TestResolveDirective_MessagePrecedence(t *testing.T) {
	field := &schema.Field{Doc: "From schema"}

	d, err := ResolveDirective(Question{Name: "a", Message: "From question"}, field)
	require.NoError(t, err)
	assert.Equal(t, "From question", d.Message)

	d, err = ResolveDirective(Question{Name: "a"}, field)
	require.NoError(t, err)
	assert.Equal(t, "From schema", d.Message)
}

func TestResolveDirective_UnsupportedFormat(t *testing.T) {
	_, err := ResolveDirective(Question{Name: "a"}, &schema.Field{Format: unknownFormat{}})
	assert.ErrorIs(t, err, schema.ErrUnsupportedFieldFormat)
	assert.Contains(t, err.Error(), "a:")
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = ParseNumber("4.5")
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	v, err = ParseNumber("1e3")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	_, err = ParseNumber("4x")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ParseNumber("1_000")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ParseNumber("1e400")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "out of range")
}

func TestInputValue(t *testing.T) {
	d := Directive{Default: 8080, Filter: ParseNumber}

	v, err := inputValue(d, "")
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	v, err = inputValue(d, "9000")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), v)

	v, err = inputValue(Directive{}, "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}

func TestChoiceIndexes(t *testing.T) {
	choices := []Choice{{Name: "A", Value: "a"}, {Name: "B", Value: "b"}, {Name: "C", Value: "c"}}

	assert.Equal(t, 1, choiceIndex(choices, "b"))
	assert.Equal(t, -1, choiceIndex(choices, "z"))
	assert.Equal(t, -1, choiceIndex(choices, nil))
	assert.Equal(t, []int{0, 2}, defaultIndexes(choices, []any{"a", "c", "z"}))
	assert.Nil(t, defaultIndexes(choices, "a"))
}
