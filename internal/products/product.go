package products

import (
	"fmt"
	"sort"

	"github.com/dadi/cli/internal/config"
	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/schema"
	"github.com/dadi/cli/internal/config/wizard"
)

// Product is a configurable application.
type Product struct {
	// Name is the CLI command name, e.g. "api".
	Name string
	// Package is the npm package the application is installed from.
	Package string
	// Title is shown before the first step.
	Title string
	// Description names the main configuration file in progress output.
	Description string
	// MinVersion is the oldest installed version the wizard supports. Empty
	// disables the check.
	MinVersion string

	Steps    func(src Sources) []wizard.Step
	Schema   schema.Schema
	Finalize func(a answers.Tree) (*Output, error)
}

// Output is the result of finalizing a wizard run.
type Output struct {
	Environment string
	Config      answers.Tree
	// Extra holds additional files named by handle, e.g. a data connector
	// configuration written to <handle>.<environment>.json.
	Extra []ExtraFile
	// Hints are informational messages for the user.
	Hints []string
}

// ExtraFile is a configuration file written next to the main one.
type ExtraFile struct {
	Handle      string
	Description string
	Content     any
}

// File is a configuration file ready to be saved.
type File struct {
	Description string
	Path        string
	Content     any
}

// Files returns every file of the output, main configuration first, with
// paths below baseDir.
func (p *Product) Files(baseDir string, out *Output) []File {
	files := []File{{
		Description: p.Description,
		Path:        config.Path(baseDir, out.Environment),
		Content:     out.Config,
	}}
	for _, extra := range out.Extra {
		files = append(files, File{
			Description: extra.Description,
			Path:        config.ConnectorPath(baseDir, extra.Handle, out.Environment),
			Content:     extra.Content,
		})
	}
	return files
}

var registry = map[string]*Product{}

func register(p *Product) *Product {
	registry[p.Name] = p
	return p
}

// Lookup returns the product registered under name.
func Lookup(name string) (*Product, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, name)
	}
	return p, nil
}

// All returns every product sorted by name.
func All() []*Product {
	out := make([]*Product, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// finalizeDefault resolves the environment and returns the answers as the
// configuration.
func finalizeDefault(a answers.Tree) (*Output, error) {
	cfg := answers.Clone(a)
	env, err := resolveEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	return &Output{Environment: env, Config: cfg}, nil
}
