package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for indexgen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexgen",
		Short: "Barrel/index file generator",
		Long: `Indexgen scans directory trees for source files that export symbols
and synthesizes index files that re-export them, so consumers can import a
package without knowing its internal file layout.

Inclusion is decided by pattern matching over file paths plus a textual
export-detection heuristic; no syntax tree is ever parsed.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
