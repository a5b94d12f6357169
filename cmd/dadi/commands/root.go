// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dadi/cli/internal/products"
)

// Root returns the root command for the dadi CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dadi",
		Short:         "Configure DADI products",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	for _, p := range products.All() {
		cmd.AddCommand(Product(p))
	}
	cmd.AddCommand(Version())

	return cmd
}
