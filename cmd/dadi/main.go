// Package main is the entry point for the dadi CLI.
//
// dadi configures DADI products (API, CDN and Publish) installed in a
// directory. Each product has an interactive setup wizard that asks for the
// product's settings and writes them to config/config.<environment>.json,
// backing up any file it replaces.
//
// For detailed usage information, run:
//
//	dadi --help
package main

import (
	"fmt"
	"os"

	"github.com/dadi/cli/cmd/dadi/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
