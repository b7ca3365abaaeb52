// Package writer assembles and persists generated index files.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Sink persists generated content in place of direct filesystem writes.
// Empty content means "nothing should exist at this path": implementations
// are expected to delete or truncate rather than write zero bytes.
type Sink func(path, content string) error

// Options configures a Writer. All fields must be populated by the caller;
// the writer applies no defaults.
type Options struct {
	// Header is the pre-rendered header block, empty when disabled.
	Header string

	// Newline is the literal line separator.
	Newline string

	// NewlineAtEOF appends one trailing newline to every written file.
	NewlineAtEOF bool

	// CreateOnlyIfNeeded suppresses writing when there are no export lines,
	// deleting any stale file instead.
	CreateOnlyIfNeeded bool

	// Sink overrides filesystem persistence when non-nil.
	Sink Sink
}

// Writer turns export statement lines into final file content and persists
// it. With a Sink injected it never touches the filesystem, which keeps the
// generation pipeline testable without temp directories.
type Writer struct {
	opts Options
}

// New creates a Writer from fully-populated options.
func New(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Write persists the index at outputPath and reports whether a file with
// content was written.
//
// With no lines and suppression enabled, no content is written: an injected
// sink is notified with empty content, otherwise an existing file at the
// path is deleted. With suppression disabled an empty index still gets the
// header-only treatment. Identical arguments always produce byte-identical
// output and identical filesystem state.
func (w *Writer) Write(outputPath string, lines []string) (bool, error) {
	if len(lines) == 0 && w.opts.CreateOnlyIfNeeded {
		if w.opts.Sink != nil {
			if err := w.opts.Sink(outputPath, ""); err != nil {
				return false, err
			}
			return false, nil
		}
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Remove(outputPath); err != nil {
				return false, fmt.Errorf("failed to remove stale index %s: %w", outputPath, err)
			}
		}
		return false, nil
	}

	content := w.render(lines)
	if w.opts.Sink != nil {
		if err := w.opts.Sink(outputPath, content); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := atomicWrite(outputPath, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

// render assembles header, blank separator, export lines and the optional
// trailing newline. The blank separator appears only when both header and
// lines are non-empty.
func (w *Writer) render(lines []string) string {
	var b strings.Builder
	if w.opts.Header != "" {
		b.WriteString(w.opts.Header)
		if len(lines) > 0 {
			b.WriteString(w.opts.Newline)
			b.WriteString(w.opts.Newline)
		}
	}
	b.WriteString(strings.Join(lines, w.opts.Newline))
	if w.opts.NewlineAtEOF {
		b.WriteString(w.opts.Newline)
	}
	return b.String()
}

// atomicWrite persists data via a flock-guarded temp-file-and-rename so a
// reader never observes a partially written index and concurrent runs do not
// interleave. The temp file lives in the target directory to keep the rename
// on one filesystem.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lockPath, err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	tempPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
