package wizard

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for the given directives and returns the answers
// keyed by directive name.
type Prompter interface {
	Prompt(ctx context.Context, directives []Directive) (map[string]any, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, directives []Directive) (map[string]any, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(ctx context.Context, directives []Directive) (map[string]any, error) {
	return f(ctx, directives)
}

// HuhPrompter renders each directive as a single-field huh form.
type HuhPrompter struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

// PrompterOption configures a HuhPrompter.
type PrompterOption func(*HuhPrompter)

// WithAccessible switches huh to its line-based accessible mode, which also
// works when the terminal cannot be driven interactively.
func WithAccessible(accessible bool) PrompterOption {
	return func(p *HuhPrompter) { p.accessible = accessible }
}

// WithIO overrides the reader and writer forms use.
func WithIO(in io.Reader, out io.Writer) PrompterOption {
	return func(p *HuhPrompter) {
		p.input = in
		p.output = out
	}
}

// NewHuhPrompter returns a prompter backed by charmbracelet/huh.
func NewHuhPrompter(opts ...PrompterOption) *HuhPrompter {
	p := &HuhPrompter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt implements Prompter.
func (p *HuhPrompter) Prompt(ctx context.Context, directives []Directive) (map[string]any, error) {
	result := make(map[string]any, len(directives))
	for _, d := range directives {
		value, err := p.ask(ctx, d)
		if err != nil {
			return nil, err
		}
		result[d.Name] = value
	}
	return result, nil
}

func (p *HuhPrompter) ask(ctx context.Context, d Directive) (any, error) {
	switch d.Type {
	case TypeConfirm:
		value, _ := d.Default.(bool)
		field := huh.NewConfirm().
			Title(d.Message).
			Value(&value)
		if err := p.run(ctx, field); err != nil {
			return nil, err
		}
		return value, nil

	case TypeList:
		if len(d.Choices) == 0 {
			return nil, fmt.Errorf("question %s has no choices", d.Name)
		}
		selected := choiceIndex(d.Choices, d.Default)
		if selected < 0 {
			selected = 0
		}
		field := huh.NewSelect[int]().
			Title(d.Message).
			Options(choiceOptions(d.Choices)...).
			Value(&selected)
		if err := p.run(ctx, field); err != nil {
			return nil, err
		}
		return d.Choices[selected].Value, nil

	case TypeCheckbox:
		selected := defaultIndexes(d.Choices, d.Default)
		field := huh.NewMultiSelect[int]().
			Title(d.Message).
			Options(choiceOptions(d.Choices)...).
			Value(&selected)
		if err := p.run(ctx, field); err != nil {
			return nil, err
		}
		values := make([]any, 0, len(selected))
		for _, i := range selected {
			values = append(values, d.Choices[i].Value)
		}
		return values, nil

	default:
		var value string
		field := huh.NewInput().
			Title(d.Message).
			Value(&value)
		if d.Default != nil {
			field = field.Placeholder(fmt.Sprint(d.Default))
		}
		if d.Validate != nil {
			field = field.Validate(func(s string) error {
				if s == "" && d.Default != nil {
					return nil
				}
				return d.Validate(s)
			})
		}
		if err := p.run(ctx, field); err != nil {
			return nil, err
		}
		return inputValue(d, value)
	}
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithShowHelp(false)
	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.output != nil {
		form = form.WithOutput(p.output)
	}
	return form.RunWithContext(ctx)
}

// inputValue applies the default and the directive filter to raw input.
func inputValue(d Directive, raw string) (any, error) {
	if raw == "" && d.Default != nil {
		return d.Default, nil
	}
	if d.Filter != nil {
		return d.Filter(raw)
	}
	return raw, nil
}

func choiceOptions(choices []Choice) []huh.Option[int] {
	opts := make([]huh.Option[int], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Name, i)
	}
	return opts
}

// choiceIndex returns the index of the choice whose value equals v, or -1.
func choiceIndex(choices []Choice, v any) int {
	if v == nil {
		return -1
	}
	for i, c := range choices {
		if reflect.DeepEqual(c.Value, v) {
			return i
		}
	}
	return -1
}

func defaultIndexes(choices []Choice, def any) []int {
	values, ok := def.([]any)
	if !ok {
		return nil
	}
	var idx []int
	for _, v := range values {
		if i := choiceIndex(choices, v); i >= 0 {
			idx = append(idx, i)
		}
	}
	return idx
}
