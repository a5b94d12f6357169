package wizard

import "errors"

var (
	// ErrResolverFailed is returned by Start when a choices resolver fails.
	ErrResolverFailed = errors.New("choices resolver failed")

	// ErrValidationFailed is returned by directive validators. The prompter
	// shows it and asks again; it never reaches the caller of Start.
	ErrValidationFailed = errors.New("validation failed")

	errNoPrompter = errors.New("wizard has no prompter")
)
