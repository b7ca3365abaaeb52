// Package generator drives index generation: it owns the configuration,
// runs the scanner in the mode-appropriate flavor and invokes the writer
// once per required output file.
package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/harrison/indexgen/internal/config"
	"github.com/harrison/indexgen/internal/format"
	"github.com/harrison/indexgen/internal/header"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/pathutil"
	"github.com/harrison/indexgen/internal/pattern"
	"github.com/harrison/indexgen/internal/scanner"
	"github.com/harrison/indexgen/internal/writer"
)

// Option customizes a Generator at construction time.
type Option func(*Generator)

// WithSink installs an output sink in place of direct filesystem writes.
// Empty content passed to the sink means nothing should exist at the path.
func WithSink(sink writer.Sink) Option {
	return func(g *Generator) {
		g.sink = sink
	}
}

// WithLogger installs the console logger used for progress and debug output.
func WithLogger(log *logger.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// Generator is the traversal orchestrator. Construct it with New and run it
// with Generate; a Generator is single-use per configuration but Generate
// itself is idempotent.
type Generator struct {
	cfg        *config.Config
	scanner    *scanner.Scanner
	formatter  *format.Formatter
	writer     *writer.Writer
	log        *logger.Logger
	sink       writer.Sink
	newline    string
	outputBase string
	runID      string
}

// New compiles filters, renders the header once and wires the scanner,
// formatter and writer. When the mode is per-folder, an exclude filter for
// the output file's base name is appended so a previous run's index is never
// treated as a source file.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:        cfg,
		newline:    cfg.NewlineString(),
		outputBase: filepath.Base(cfg.Output),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.New(nil, "")
	}

	includes, err := pattern.CompileSet(cfg.Includes)
	if err != nil {
		return nil, fmt.Errorf("invalid include filter: %w", err)
	}
	excludeExprs := cfg.Excludes
	if cfg.Mode == config.ModePerFolder {
		excludeExprs = append(append([]string{}, excludeExprs...), regexp.QuoteMeta(g.outputBase)+"$")
	}
	excludes, err := pattern.CompileSet(excludeExprs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude filter: %w", err)
	}

	g.scanner = scanner.New(includes, excludes)
	g.formatter = format.New(cfg.Format)
	g.writer = writer.New(writer.Options{
		Header:             header.Render(cfg.Header, cfg.HeaderMode, g.newline),
		Newline:            g.newline,
		NewlineAtEOF:       cfg.NewlineAtTheEndOfFile,
		CreateOnlyIfNeeded: cfg.CreateFileOnlyIfNeeded,
		Sink:               g.sink,
	})
	return g, nil
}

// Generate runs one full generation pass over every configured input path,
// in order. Filesystem failures abort the run and propagate unchanged.
func (g *Generator) Generate() error {
	outputAbs := pathutil.Resolve(g.cfg.Output, "")
	var shared []string

	for _, input := range g.cfg.Paths {
		root := pathutil.Resolve(input, "")
		g.log.Debugf("run %s: scanning %s (%s mode)", g.runID, root, g.cfg.Mode)

		switch g.cfg.Mode {
		case config.ModeRoot:
			// Each input path gets its own index, located inside it.
			out := pathutil.Resolve(g.cfg.Output, root)
			files, err := g.scanner.Collect(root)
			if err != nil {
				return err
			}
			if _, err := g.writer.Write(out, g.formatter.Format(out, files, root)); err != nil {
				return err
			}
			g.log.Infof("generated %s (%d exports)", out, len(files))

		case config.ModePath:
			files, err := g.scanner.Collect(root)
			if err != nil {
				return err
			}
			shared = append(shared, g.formatter.Format(outputAbs, files, root)...)

		case config.ModePerFolder:
			tree, err := g.scanner.CollectTree(root)
			if err != nil {
				return err
			}
			if _, err := g.writePerFolder(tree); err != nil {
				return err
			}

		case config.ModePerFolderWithSub:
			tree, err := g.scanner.CollectTree(root)
			if err != nil {
				return err
			}
			if _, err := g.writePerFolderWithSub(tree); err != nil {
				return err
			}
		}
	}

	if g.cfg.Mode == config.ModePath {
		if _, err := g.writer.Write(outputAbs, shared); err != nil {
			return err
		}
		g.log.Infof("generated %s (%d exports)", outputAbs, len(shared))
	}
	return nil
}

// writePerFolder is the bottom-up write pass over a collected subtree for
// per-folder mode. Children are written strictly before their parent. The
// returned list is the folder's aggregated entries without self-reference
// filtering applied, for the parent's use.
func (g *Generator) writePerFolder(folder *scanner.Folder) ([]string, error) {
	var local []string
	for _, item := range folder.Items {
		if item.Child != nil {
			childFiles, err := g.writePerFolder(item.Child)
			if err != nil {
				return nil, err
			}
			for _, childFile := range childFiles {
				local = append(local, "./"+item.Child.Name+strings.TrimPrefix(childFile, "."))
			}
			continue
		}
		local = append(local, "./"+item.File)
	}
	if _, err := g.writeFolderIndex(folder.Dir, g.dropIndexRefs(local)); err != nil {
		return nil, err
	}
	return local, nil
}

// writeFolderIndex writes one per-folder artifact. Entries naming the output
// file are dropped here again even though callers already filtered them; the
// auto-appended exclude filter, the caller's filter and this one are kept as
// separate checks because they see paths at different stages of assembly.
func (g *Generator) writeFolderIndex(dir string, files []string) (bool, error) {
	files = g.dropIndexRefs(files)
	out := filepath.Join(dir, g.outputBase)
	wrote, err := g.writer.Write(out, g.formatter.Format(out, files, dir))
	if err != nil {
		return false, err
	}
	if wrote {
		g.log.Debugf("run %s: wrote %s", g.runID, out)
	}
	return wrote, nil
}

// writePerFolderWithSub is the bottom-up write pass for subtree mode. A
// parent re-exports a child's generated index file, never the child's
// individual members, and only when the child's write pass reported that a
// file was written.
func (g *Generator) writePerFolderWithSub(folder *scanner.Folder) (bool, error) {
	var local []string
	for _, item := range folder.Items {
		if item.Child != nil {
			wrote, err := g.writePerFolderWithSub(item.Child)
			if err != nil {
				return false, err
			}
			if wrote {
				local = append(local, "./"+item.Child.Name+"/"+g.outputBase)
			}
			continue
		}
		local = append(local, "./"+item.File)
	}
	out := filepath.Join(folder.Dir, g.outputBase)
	wrote, err := g.writer.Write(out, g.formatter.Format(out, local, folder.Dir))
	if err != nil {
		return false, err
	}
	if wrote {
		g.log.Debugf("run %s: wrote %s", g.runID, out)
	}
	return wrote, nil
}

// dropIndexRefs removes entries whose last path segment equals the output
// file's base name.
func (g *Generator) dropIndexRefs(files []string) []string {
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if path.Base(file) == g.outputBase {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}
