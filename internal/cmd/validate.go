package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/indexgen/internal/config"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file without generating anything",
		Long: `Parse and validate an indexgen configuration, checking for:
  - A non-empty set of input paths
  - A known traversal mode, header mode and newline setting
  - Include/exclude filters that compile

Exit code: 0 if valid, 1 if errors found`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			var err error
			if configFile != "" {
				cfg, err = config.Load(configFile)
			} else {
				cfg, err = config.Discover()
			}
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration valid: %d path(s), mode %s, output %s\n",
				len(cfg.Paths), cfg.Mode, cfg.Output)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (JSON or YAML)")

	return cmd
}
