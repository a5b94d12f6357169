package wizard

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/schema"
	"github.com/dadi/cli/internal/ui/progress"
)

// Wizard asks a fixed sequence of questions and collects the answers.
type Wizard struct {
	steps    []Step
	schema   schema.Schema
	title    string
	prompter Prompter
	reporter progress.Reporter
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithPrompter sets the prompter used to ask questions.
func WithPrompter(p Prompter) Option {
	return func(w *Wizard) { w.prompter = p }
}

// WithReporter sets where narrative text and status updates go.
func WithReporter(r progress.Reporter) Option {
	return func(w *Wizard) { w.reporter = r }
}

// WithTitle sets a heading shown before the first step.
func WithTitle(title string) Option {
	return func(w *Wizard) { w.title = title }
}

// New creates a wizard over steps, using s to fill in formats, defaults and
// messages the questions leave out. Without options it prompts on the
// terminal with huh and reports nothing.
func New(steps []Step, s schema.Schema, opts ...Option) *Wizard {
	w := &Wizard{
		steps:    steps,
		schema:   s,
		prompter: NewHuhPrompter(),
		reporter: progress.Discard{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// titler is implemented by reporters that render headings.
type titler interface {
	Title(text string)
}

// Start runs the wizard. Paths already defined in initial are never asked
// for; initial itself is not modified. Questions are asked strictly one after
// another and the first failing resolver or prompt aborts the run.
func (w *Wizard) Start(ctx context.Context, initial answers.Tree) (answers.Tree, error) {
	if w.prompter == nil {
		return nil, errNoPrompter
	}

	log := logr.FromContextOrDiscard(ctx).WithName("wizard")
	total := countQuestions(w.steps)
	store := answers.Clone(initial)

	if w.title != "" {
		if t, ok := w.reporter.(titler); ok {
			t.Title(w.title)
		} else {
			w.reporter.Show(w.title)
		}
	}

	processed := 0
	for _, step := range w.steps {
		if step.Text != "" {
			w.reporter.Show(fmt.Sprintf("%s (%d%% complete)", step.Text, percentComplete(processed, total)))
		}

		for _, q := range step.Questions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			next, err := w.ask(ctx, log, q, store)
			if err != nil {
				return nil, err
			}
			store = next
		}

		processed += len(step.Questions)
	}

	return store, nil
}

// ask handles a single question and returns the updated answers.
func (w *Wizard) ask(ctx context.Context, log logr.Logger, q Question, store answers.Tree) (answers.Tree, error) {
	if q.Type == TypeInfo {
		if q.Condition == nil || q.Condition(store) {
			w.reporter.Report(progress.StateInfo, q.Message)
		}
		return store, nil
	}

	if store.Has(q.Name) {
		log.V(1).Info("skipping answered question", "question", q.Name)
		return store, nil
	}

	field, _ := w.schema.Lookup(q.Name)
	d, err := ResolveDirective(q, field)
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", q.Name, err)
	}

	if q.Condition != nil && !q.Condition(store) {
		log.V(1).Info("skipping question, condition not met", "question", q.Name)
		return store, nil
	}

	if d.ResolveChoices != nil {
		choices, err := w.resolveChoices(ctx, d, store)
		if err != nil {
			return nil, err
		}
		d.Choices = choices
		d.ResolveChoices = nil
	}

	switch fn := d.Default.(type) {
	case DefaultFunc:
		d.Default = fn(store)
	case func(answers.Tree) any:
		d.Default = fn(store)
	}

	log.V(1).Info("prompting", "question", q.Name, "type", string(d.Type))
	response, err := w.prompter.Prompt(ctx, []Directive{d})
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", q.Name, err)
	}
	if len(response) == 0 {
		return store, nil
	}

	return answers.Merge(store, answers.FromFlat(response)), nil
}

// resolveChoices runs a choices resolver behind a working indicator.
func (w *Wizard) resolveChoices(ctx context.Context, d Directive, store answers.Tree) ([]Choice, error) {
	w.reporter.Report(progress.StateStart, "Loading choices")

	choices, err := d.ResolveChoices(ctx, store)
	if err != nil {
		w.reporter.Report(progress.StateFail, "Could not load choices")
		return nil, fmt.Errorf("%w: %s: %w", ErrResolverFailed, d.Name, err)
	}
	if len(choices) == 0 {
		w.reporter.Report(progress.StateFail, "No choices available")
		return nil, fmt.Errorf("%w: %s: no choices available", ErrResolverFailed, d.Name)
	}

	w.reporter.Report(progress.StateSucceed, fmt.Sprintf("Loaded %d choices", len(choices)))
	return choices, nil
}
