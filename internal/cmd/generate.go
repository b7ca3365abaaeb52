package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/indexgen/internal/config"
	"github.com/harrison/indexgen/internal/generator"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/writer"
)

// generateFlags holds the raw flag values for the generate subcommand.
// Pointers are resolved from cobra's Changed tracking so only flags the user
// actually set override the config file.
type generateFlags struct {
	configFile string
	paths      []string
	includes   []string
	excludes   []string
	output     string
	mode       string
	format     string
	header     string
	headerMode string
	newline    string
	logLevel   string
	eofNewline bool
	onlyNeeded bool
	dryRun     bool
}

// NewGenerateCommand creates and returns the generate subcommand
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [path...]",
		Short: "Generate index files for the configured paths",
		Long: `Generate scans each configured path and writes index files according
to the selected mode:

  root                one index per input path, inside that path
  path                one shared index aggregating all input paths
  per-folder          one index per directory, subtree flattened
  per-folder-subtree  one index per directory, parents re-export child indexes

Configuration is read from --config (or .indexgen.yaml/.indexgen.json in the
working directory); flags override config file values.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "config file (JSON or YAML)")
	cmd.Flags().StringArrayVarP(&flags.paths, "path", "p", nil, "input directory (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.includes, "include", "i", nil, "include filter, regex or glob: prefixed (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.excludes, "exclude", "e", nil, "exclude filter, regex or glob: prefixed (repeatable)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file name or path")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "traversal mode: root, path, per-folder, per-folder-subtree")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "export statement template")
	cmd.Flags().StringVar(&flags.header, "header", "", "header text for generated files")
	cmd.Flags().StringVar(&flags.headerMode, "header-mode", "", "header rendering: disabled, raw, multiline, singleline")
	cmd.Flags().StringVar(&flags.newline, "newline", "", "line separator: lf, crlf, os")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.eofNewline, "eof-newline", true, "append a trailing newline to generated files")
	cmd.Flags().BoolVar(&flags.onlyNeeded, "only-if-needed", true, "suppress empty index files, deleting stale ones")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "log writes instead of touching the filesystem")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, flags *generateFlags) error {
	cfg, err := loadGenerateConfig(cmd, args, flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cmd.OutOrStdout(), cfg.LogLevel)
	opts := []generator.Option{generator.WithLogger(log)}
	if flags.dryRun {
		opts = append(opts, generator.WithSink(dryRunSink(log)))
	}

	gen, err := generator.New(cfg, opts...)
	if err != nil {
		return err
	}
	return gen.Generate()
}

// loadGenerateConfig loads the config file and merges flag overrides.
// Positional args are extra input paths, appended after --path values.
func loadGenerateConfig(cmd *cobra.Command, args []string, flags *generateFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configFile != "" {
		cfg, err = config.Load(flags.configFile)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		return nil, err
	}

	stringFlag := func(name string, value string) *string {
		if cmd.Flags().Changed(name) {
			return &value
		}
		return nil
	}
	boolFlag := func(name string, value bool) *bool {
		if cmd.Flags().Changed(name) {
			return &value
		}
		return nil
	}

	paths := append(append([]string{}, flags.paths...), args...)
	cfg.MergeWithFlags(paths, flags.includes, flags.excludes,
		stringFlag("output", flags.output),
		stringFlag("mode", flags.mode),
		stringFlag("format", flags.format),
		stringFlag("header", flags.header),
		stringFlag("header-mode", flags.headerMode),
		stringFlag("newline", flags.newline),
		stringFlag("log-level", flags.logLevel),
		boolFlag("eof-newline", flags.eofNewline),
		boolFlag("only-if-needed", flags.onlyNeeded))
	return cfg, nil
}

// dryRunSink reports what would be written without touching disk. Empty
// content means the file would be removed or left absent.
func dryRunSink(log *logger.Logger) writer.Sink {
	return func(path, content string) error {
		if content == "" {
			if _, err := os.Stat(path); err == nil {
				log.Infof("dry-run: would remove %s", path)
			}
			return nil
		}
		log.Infof("dry-run: would write %s (%d bytes)", path, len(content))
		return nil
	}
}
