// Package wizard provides the interactive setup wizard used by the dadi CLI.
//
// A Wizard walks an ordered list of Steps, each holding Questions. Every
// question is resolved against the product's field schema into a Directive
// (see ResolveDirective), its condition and lazy default are evaluated
// against the answers collected so far, and the result of the Prompter is
// deep-merged into the answer tree. Questions whose path already holds a
// value, for example from the initial state passed to Start, are never
// asked again.
//
// The default Prompter renders directives with charmbracelet/huh.
package wizard
