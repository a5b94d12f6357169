package products

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/wizard"
)

const (
	envPath       = "env"
	customEnvPath = "_env.custom"
	customEnv     = "custom"
	defaultEnv    = "development"
)

var envNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// environmentQuestions asks which environment the configuration applies to.
// A custom name is collected at a separate path because env already holds
// "custom" by the time it is asked.
func environmentQuestions() []wizard.Question {
	return []wizard.Question{
		{
			Name:    envPath,
			Type:    wizard.TypeList,
			Message: "Which environment does this config apply to?",
			Choices: []wizard.Choice{
				{Name: "Development", Value: "development"},
				{Name: "Test/QA", Value: "test"},
				{Name: "Live/production", Value: "production"},
				{Name: "Other (custom)", Value: customEnv},
			},
		},
		{
			Name:      customEnvPath,
			Message:   "What would you like the custom environment to be called?",
			Condition: func(a answers.Tree) bool { return a.String(envPath) == customEnv },
			Validate:  validateEnvName,
		},
	}
}

func validateEnvName(name string) error {
	if !envNamePattern.MatchString(name) {
		return fmt.Errorf("%w: use letters, digits, dashes and underscores", wizard.ErrValidationFailed)
	}
	return nil
}

// resolveEnvironment settles the environment name, promotes a custom name
// into env and removes the bookkeeping keys from a.
func resolveEnvironment(a answers.Tree) (string, error) {
	env := a.String(envPath)
	custom := a.String(customEnvPath)
	a.Delete("_env")

	switch env {
	case customEnv:
		if custom == "" {
			return "", errors.New("custom environment selected but no name given")
		}
		env = custom
	case "":
		env = defaultEnv
	}
	if err := validateEnvName(env); err != nil {
		return "", fmt.Errorf("environment %q: %w", env, err)
	}

	a.Set(envPath, env)
	return env, nil
}
