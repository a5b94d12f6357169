package products

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/wizard"
)

// Publish is DADI Publish.
var Publish = register(&Product{
	Name:        "publish",
	Package:     "@dadi/publish",
	Title:       "DADI Publish setup",
	Description: "Publish configuration file",
	Steps:       publishSteps,
	Schema:      publishSchema,
	Finalize:    finalizePublish,
})

func publishSteps(Sources) []wizard.Step {
	return []wizard.Step{
		{
			Text: "Let's start by configuring the web server that DADI Publish will run on.",
			Questions: []wizard.Question{
				{Name: "server.host", Message: "What IP address should the application be bound to?"},
				{Name: "server.port", Message: "What port number should the application be bound to?"},
			},
		},
		{
			Text: "Time to connect Publish to an instance of DADI API.",
			Questions: []wizard.Question{
				{Name: "apis.0.host", Message: "What is the URL of the API instance?", Default: "https://api.somedomain.tech"},
				{Name: "apis.0.port", Message: "What port number is the API running on?", Default: 443},
			},
		},
		{
			Text:      "Great! You have a basic configuration in place.",
			Questions: environmentQuestions(),
		},
	}
}

func finalizePublish(a answers.Tree) (*Output, error) {
	out, err := finalizeDefault(a)
	if err != nil {
		return nil, err
	}

	apis, err := indexedList(out.Config.Get("apis"))
	if err != nil {
		return nil, fmt.Errorf("apis: %w", err)
	}
	if apis != nil {
		out.Config["apis"] = apis
	}
	return out, nil
}

// indexedList turns a map keyed by array indexes, as produced by answer
// paths like "apis.0.host", into a slice. Slices pass through unchanged and
// nil stays nil.
func indexedList(v any) ([]any, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return list, nil
	case map[string]any:
		type entry struct {
			index int
			value any
		}
		entries := make([]entry, 0, len(list))
		for k, item := range list {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 {
				return nil, fmt.Errorf("key %q is not an index", k)
			}
			entries = append(entries, entry{index: i, value: item})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

		out := make([]any, len(entries))
		for n, e := range entries {
			out[n] = e.value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}
