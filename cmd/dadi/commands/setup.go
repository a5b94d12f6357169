package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadi/cli/cmd/dadi/handlers"
	"github.com/dadi/cli/internal/products"
)

// Product returns the command group of a product, e.g. "dadi api".
func Product(p *products.Product) *cobra.Command {
	cmd := &cobra.Command{
		Use:   p.Name,
		Short: fmt.Sprintf("Manage a %s installation", p.Package),
	}
	cmd.AddCommand(Setup(p))
	return cmd
}

// Setup returns the command that runs the setup wizard of p.
//
// Flags:
//
//	--dir, -d: Directory the product is installed in (default ".")
//	--env-file: File to load environment variables from
//	--answers: JSON or YAML file with answers to skip questions
//	--resume: Start from the existing development configuration
//	--schema: Extra field schema file
//	--accessible: Use line-based prompts
//	--offline: Do not look up choices from npm or S3
//	--verbose, -v: Log debug output to stderr (repeatable)
//	--datastore: Data connector package (api only)
func Setup(p *products.Product) *cobra.Command {
	opts := handlers.SetupOptions{Product: p.Name}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Launches an interactive setup wizard",
		Long: fmt.Sprintf(`Launches an interactive setup wizard for %s.

The wizard asks for the settings of the installation and writes them to
config/config.<environment>.json below the installation directory. A file
that already exists at that path is backed up next to it first.

Answers that are already known, from --answers, --resume or flags, are
not asked again.`, p.Package),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Setup(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.BaseDir, "dir", "d", ".", "Directory the product is installed in")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "File to load environment variables from")
	cmd.Flags().StringVar(&opts.AnswersFile, "answers", "", "JSON or YAML file with known answers")
	cmd.Flags().BoolVar(&opts.Resume, "resume", false, "Start from the existing development configuration")
	cmd.Flags().StringVar(&opts.SchemaFile, "schema", "", "Extra field schema file")
	cmd.Flags().BoolVar(&opts.Accessible, "accessible", false, "Use line-based prompts")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "Do not look up choices from npm or S3")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Log debug output to stderr")

	if p.Name == products.API.Name {
		cmd.Flags().StringVar(&opts.Datastore, "datastore", "", "Data connector package, e.g. @dadi/api-mongodb")
	}

	return cmd
}
