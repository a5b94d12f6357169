// Package handlers contains the business logic for CLI commands.
//
// Handlers receive parsed options from the commands package, wire the
// wizard to its prompter, reporter and lookup sources, and save the
// resulting configuration files.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/dadi/cli/internal/config"
	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/wizard"
	"github.com/dadi/cli/internal/products"
	"github.com/dadi/cli/internal/ui/progress"
)

// SetupOptions holds the flags of a setup command.
type SetupOptions struct {
	Product     string
	BaseDir     string
	EnvFile     string
	AnswersFile string
	SchemaFile  string
	Datastore   string
	Resume      bool
	Accessible  bool
	Offline     bool
	Verbosity   int
}

// Factory function variables for setup - can be replaced in tests.
var (
	// appFs is the filesystem configuration is read from and written to.
	appFs = afero.NewOsFs()

	// stdout receives progress output.
	stdout io.Writer = os.Stdout

	// stderr receives debug logs.
	stderr io.Writer = os.Stderr

	// stdinIsTerminal reports whether prompts can be driven interactively.
	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// stdoutIsTerminal reports whether progress output may be colored.
	stdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}

	// newPrompter creates the prompter answering wizard questions.
	newPrompter = func(accessible bool) wizard.Prompter {
		return wizard.NewHuhPrompter(wizard.WithAccessible(accessible))
	}

	// newSources creates the lookups backing dynamic choices.
	newSources = func() products.Sources {
		return products.NewSources(os.Getenv("DADI_REGISTRY_URL"), os.Getenv("DADI_S3_ENDPOINT"))
	}
)

// Setup runs the setup wizard of a product and writes its configuration.
func Setup(ctx context.Context, opts SetupOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	if err := loadEnv(opts); err != nil {
		return err
	}

	log := newLogger(opts.Verbosity)
	ctx = logr.NewContext(ctx, log)

	product, err := products.Lookup(opts.Product)
	if err != nil {
		return err
	}

	reporter := progress.NewPrinter(stdout, stdoutIsTerminal())

	installed, err := product.CheckVersion(appFs, opts.BaseDir)
	if err != nil {
		reporter.Report(progress.StateFail, err.Error())
		return err
	}
	if installed != "" {
		log.V(1).Info("found installation", "package", product.Package, "version", installed)
	}

	s, err := product.LoadSchema(appFs, opts.BaseDir, opts.SchemaFile)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	initial, err := initialAnswers(opts)
	if err != nil {
		return err
	}

	sources := products.Sources{}
	if !opts.Offline {
		sources = newSources()
	}

	accessible := opts.Accessible || envBool("DADI_ACCESSIBLE") || !stdinIsTerminal()
	w := wizard.New(product.Steps(sources), s,
		wizard.WithPrompter(newPrompter(accessible)),
		wizard.WithReporter(reporter),
		wizard.WithTitle(product.Title),
	)

	result, err := w.Start(ctx, initial)
	if err != nil {
		reporter.Report(progress.StateFail, err.Error())
		return fmt.Errorf("setup wizard failed: %w", err)
	}

	out, err := product.Finalize(result)
	if err != nil {
		reporter.Report(progress.StateFail, err.Error())
		return err
	}

	if err := writeFiles(ctx, reporter, product.Files(opts.BaseDir, out)); err != nil {
		return err
	}

	for _, hint := range out.Hints {
		reporter.Report(progress.StateInfo, hint)
	}
	return nil
}

// writeFiles saves every file, reporting each outcome. It stops at the first
// failure.
func writeFiles(ctx context.Context, reporter progress.Reporter, files []products.File) error {
	writer := config.NewWriter(appFs)
	for _, f := range files {
		reporter.Report(progress.StateStart, "Writing files")
		res, err := writer.Save(ctx, f.Path, f.Content)
		config.ReportSave(reporter, f.Description, res, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// initialAnswers builds the seed tree: the existing development
// configuration when resuming, then the answers file, then flags.
func initialAnswers(opts SetupOptions) (answers.Tree, error) {
	initial := answers.New()

	if opts.Resume {
		path := config.Path(opts.BaseDir, "development")
		exists, err := afero.Exists(appFs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			existing, err := config.Load(appFs, path)
			if err != nil {
				return nil, err
			}
			// env is always asked again.
			existing.Delete("env")
			initial = answers.Merge(initial, existing)
		}
	}

	if opts.AnswersFile != "" {
		seeded, err := config.Load(appFs, opts.AnswersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load answers: %w", err)
		}
		initial = answers.Merge(initial, seeded)
	}

	if opts.Datastore != "" {
		initial.Set("datastore", opts.Datastore)
	}
	return initial, nil
}

// loadEnv loads variables from the env file, or from .env in the base
// directory when it exists. Variables already set win.
func loadEnv(opts SetupOptions) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
		return nil
	}

	path := filepath.Join(opts.BaseDir, ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func newLogger(verbosity int) logr.Logger {
	if verbosity <= 0 {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
