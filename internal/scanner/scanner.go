// Package scanner walks directory trees and decides which source files
// qualify for re-export.
//
// Qualification is a textual heuristic, not a parser: a file qualifies when
// its path passes the include/exclude filters, its content carries no ignore
// marker, and at least one line starts (after leading whitespace) with an
// export declaration. Keeping this a pattern match over raw text preserves
// the tool's behavior on files a real parser would reject.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/harrison/indexgen/internal/pattern"
)

var (
	// ignoreMarker matches a line that is solely a comment containing the
	// opt-out token.
	ignoreMarker = regexp.MustCompile(`(?m)^[ \t]*(?://+|/\*+)[ \t]*index-generator-ignore[ \t]*(?:\*+/)?[ \t]*\r?$`)

	// exportDecl matches a line whose first token, after leading whitespace,
	// is an export declaration.
	exportDecl = regexp.MustCompile(`(?m)^[ \t]*export\b`)
)

// Scanner applies the shared qualification rule across the traversal flavors.
type Scanner struct {
	includes *pattern.Set
	excludes *pattern.Set
}

// New creates a Scanner with compiled include and exclude filters.
func New(includes, excludes *pattern.Set) *Scanner {
	return &Scanner{includes: includes, excludes: excludes}
}

// Collect returns every qualifying file under root as a "./"-prefixed
// forward-slash path relative to root, depth-first in directory-listing
// order. Collect never writes; it is the flat traversal used by the root and
// path modes.
func (s *Scanner) Collect(root string) ([]string, error) {
	var files []string
	if err := s.collect(root, root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) collect(root, dir string, out *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			// Directories are never content-inspected; recurse unconditionally.
			if err := s.collect(root, full, out); err != nil {
				return err
			}
			continue
		}
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", full, err)
		}
		ok, err := s.qualifies(full, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			*out = append(*out, "./"+filepath.ToSlash(rel))
		}
	}
	return nil
}

// Folder is one directory's slice of a pure collection pass: its qualifying
// direct files and child subtrees, interleaved in directory-listing order.
type Folder struct {
	// Dir is the absolute path of the folder.
	Dir string

	// Name is the folder's base name, used by parents to prefix child paths.
	Name string

	// Items holds the folder's entries in the order they were listed.
	Items []Item
}

// Item is a single ordered entry of a Folder: exactly one of File or Child
// is set.
type Item struct {
	// File is the bare name of a qualifying file directly in the folder.
	File string

	// Child is the subtree of an immediate subdirectory.
	Child *Folder
}

// CollectTree performs the pure collection phase of the per-folder modes.
// Every folder in the subtree becomes its own scan root: direct files are
// filtered by their bare name, and subdirectories are recursed
// unconditionally. No writes happen here; the generator replays the tree
// bottom-up in a separate write pass, which keeps the child-before-parent
// write ordering without conflating traversal with I/O.
func (s *Scanner) CollectTree(root string) (*Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}
	folder := &Folder{Dir: root, Name: filepath.Base(root)}
	for _, entry := range entries {
		full := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			child, err := s.CollectTree(full)
			if err != nil {
				return nil, err
			}
			folder.Items = append(folder.Items, Item{Child: child})
			continue
		}
		ok, err := s.qualifies(full, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			folder.Items = append(folder.Items, Item{File: entry.Name()})
		}
	}
	return folder, nil
}

// qualifies applies the shared entry qualification rule. relPath is the
// forward-slash path of the entry relative to its scan root.
func (s *Scanner) qualifies(path, relPath string) (bool, error) {
	if !s.includes.Any(relPath) {
		return false, nil
	}
	if s.excludes.Any(relPath) {
		return false, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if ignoreMarker.Match(content) {
		return false, nil
	}
	return exportDecl.Match(content), nil
}
