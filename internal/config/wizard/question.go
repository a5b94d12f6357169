package wizard

import (
	"context"

	"github.com/dadi/cli/internal/config/answers"
)

// QuestionType selects how a question is rendered.
type QuestionType string

// Question types.
const (
	TypeInput    QuestionType = "input"
	TypeConfirm  QuestionType = "confirm"
	TypeList     QuestionType = "list"
	TypeCheckbox QuestionType = "checkbox"
	TypeInfo     QuestionType = "info"
)

// Choice is one option of a list or checkbox question.
type Choice struct {
	Name  string
	Short string
	Value any
}

// ChoiceResolver produces choices on demand, typically from a remote source.
// It receives the answers collected so far.
type ChoiceResolver func(ctx context.Context, a answers.Tree) ([]Choice, error)

// DefaultFunc computes a default from the answers collected so far. It is
// called right before its question is asked.
type DefaultFunc func(a answers.Tree) any

// Question is a single prompt definition. Name is the dot-path the answer is
// stored at. Default holds either a static value or a DefaultFunc.
type Question struct {
	Name           string
	Message        string
	Type           QuestionType
	Choices        []Choice
	ResolveChoices ChoiceResolver
	Default        any
	Condition      func(a answers.Tree) bool
	Validate       func(input string) error
}

// Step is a group of questions introduced by an optional narrative text.
type Step struct {
	Text      string
	Questions []Question
}

// Directive is a question resolved against its field schema, ready to be
// handed to a Prompter.
type Directive struct {
	Name           string
	Message        string
	Type           QuestionType
	Choices        []Choice
	ResolveChoices ChoiceResolver
	Default        any
	Validate       func(input string) error
	Filter         func(input string) (any, error)
}

// countQuestions returns the number of questions across all steps.
func countQuestions(steps []Step) int {
	total := 0
	for _, step := range steps {
		total += len(step.Questions)
	}
	return total
}

// percentComplete returns floor(done / total * 100).
func percentComplete(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
