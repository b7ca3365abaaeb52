// Package config defines the generator configuration record and its file
// loading, flag merging and validation.
//
// The record handed to the generation core is always fully populated: every
// default is applied here, so no field is ever missing during traversal.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/harrison/indexgen/internal/header"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/pattern"
)

// Mode selects the traversal strategy: how many index files are produced
// and where.
type Mode string

const (
	// ModeRoot writes one index per configured input path, located inside
	// that path.
	ModeRoot Mode = "root"

	// ModePath writes exactly one index at the configured output path,
	// aggregating every input path's exports.
	ModePath Mode = "path"

	// ModePerFolder writes one index per directory; each folder's index
	// re-exports everything reachable in its subtree.
	ModePerFolder Mode = "per-folder"

	// ModePerFolderWithSub writes one index per directory; a parent's index
	// re-exports the child's index file instead of the child's members.
	ModePerFolderWithSub Mode = "per-folder-subtree"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRoot, ModePath, ModePerFolder, ModePerFolderWithSub:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q, must be one of: root, path, per-folder, per-folder-subtree", s)
}

// Config is the generator configuration record. Field names in config files
// follow the camelCase keys accepted by the original tool, in JSON or YAML
// (JSON documents parse as YAML).
type Config struct {
	// Paths are the input directories, in scan order.
	Paths []string `yaml:"paths"`

	// Output is the index file name or path; its meaning depends on Mode.
	Output string `yaml:"output"`

	// Mode is the traversal strategy.
	Mode Mode `yaml:"mode"`

	// Includes are ordered filters a relative path must match to qualify.
	Includes []string `yaml:"includes"`

	// Excludes are ordered filters that disqualify a matching relative path.
	Excludes []string `yaml:"excludes"`

	// Format is the export statement template. Recognized placeholders:
	// {name}, {ext}, {dir_name}, {rel}, {abs}.
	Format string `yaml:"format"`

	// Header is the raw header text prepended to every generated file.
	Header string `yaml:"header"`

	// HeaderMode selects how Header is rendered.
	HeaderMode header.Mode `yaml:"headerMode"`

	// Newline selects the line separator: "lf", "crlf" or "os".
	Newline string `yaml:"newline"`

	// NewlineAtTheEndOfFile appends one trailing newline to every index.
	NewlineAtTheEndOfFile bool `yaml:"newlineAtTheEndOfFile"`

	// CreateFileOnlyIfNeeded suppresses empty index files, deleting stale
	// ones instead of writing an empty artifact.
	CreateFileOnlyIfNeeded bool `yaml:"createFileOnlyIfNeeded"`

	// LogLevel sets console verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns a Config with the same defaults the original tool's
// CLI applies.
func DefaultConfig() *Config {
	return &Config{
		Output:                 "index.ts",
		Mode:                   ModePath,
		Includes:               []string{`\.ts$`},
		Format:                 `export * from '{rel}/{name}';`,
		HeaderMode:             header.ModeDisabled,
		Newline:                "os",
		NewlineAtTheEndOfFile:  true,
		CreateFileOnlyIfNeeded: true,
		LogLevel:               "info",
	}
}

// Load reads a config file into a defaulted Config. Fields absent from the
// file keep their defaults. The file may be JSON or YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigFiles are the file names probed, in order, when no --config
// flag is given.
var DefaultConfigFiles = []string{".indexgen.yaml", ".indexgen.yml", ".indexgen.json"}

// Discover loads the first default config file present in the current
// directory. If none exists, it returns defaults without error.
func Discover() (*Config, error) {
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}
	return DefaultConfig(), nil
}

// MergeWithFlags merges CLI flag values into the configuration. Non-nil and
// non-empty values override config file settings, so flags take precedence.
func (c *Config) MergeWithFlags(paths, includes, excludes []string, output, mode, format, headerText, headerMode, newline, logLevel *string, eofNewline, onlyIfNeeded *bool) {
	if len(paths) > 0 {
		c.Paths = paths
	}
	if len(includes) > 0 {
		c.Includes = includes
	}
	if len(excludes) > 0 {
		c.Excludes = excludes
	}
	if output != nil {
		c.Output = *output
	}
	if mode != nil {
		c.Mode = Mode(*mode)
	}
	if format != nil {
		c.Format = *format
	}
	if headerText != nil {
		c.Header = *headerText
	}
	if headerMode != nil {
		c.HeaderMode = header.Mode(*headerMode)
	}
	if newline != nil {
		c.Newline = *newline
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if eofNewline != nil {
		c.NewlineAtTheEndOfFile = *eofNewline
	}
	if onlyIfNeeded != nil {
		c.CreateFileOnlyIfNeeded = *onlyIfNeeded
	}
}

// Validate checks the configuration for values the generator cannot run
// with. Filter expressions are compiled here so malformed patterns fail
// before any scan begins.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("at least one input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Format == "" {
		return fmt.Errorf("format must not be empty")
	}
	if _, err := header.ParseMode(string(c.HeaderMode)); err != nil {
		return err
	}
	switch c.Newline {
	case "lf", "crlf", "os":
	default:
		return fmt.Errorf("invalid newline %q, must be one of: lf, crlf, os", c.Newline)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid logLevel %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if len(c.Includes) == 0 {
		return fmt.Errorf("at least one include filter is required")
	}
	if _, err := pattern.CompileSet(c.Includes); err != nil {
		return fmt.Errorf("invalid include filter: %w", err)
	}
	if _, err := pattern.CompileSet(c.Excludes); err != nil {
		return fmt.Errorf("invalid exclude filter: %w", err)
	}
	return nil
}

// NewlineString resolves the Newline setting to the literal separator. The
// "os" default is CRLF on Windows and LF elsewhere.
func (c *Config) NewlineString() string {
	switch c.Newline {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	}
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
