// Package format renders qualifying files into export statements using the
// configured template.
package format

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harrison/indexgen/internal/pathutil"
)

// placeholderToken matches any {word}-shaped token in the template.
var placeholderToken = regexp.MustCompile(`\{(\w+)\}`)

// Formatter substitutes per-file values into the export statement template.
// Recognized placeholders are {name}, {ext}, {dir_name}, {rel} and {abs};
// unrecognized tokens pass through verbatim.
type Formatter struct {
	template string
}

// New creates a Formatter for the given template.
func New(template string) *Formatter {
	return &Formatter{template: template}
}

// Format renders one statement per file, preserving input order. files are
// "./"-prefixed forward-slash paths relative to rootDir. A file whose
// resolved absolute path equals outputPath is skipped silently so an index
// never re-exports itself.
func (f *Formatter) Format(outputPath string, files []string, rootDir string) []string {
	statements := make([]string, 0, len(files))
	for _, file := range files {
		abs := pathutil.Resolve(filepath.FromSlash(file), rootDir)
		if abs == outputPath {
			continue
		}
		statements = append(statements, f.render(file, rootDir))
	}
	return statements
}

func (f *Formatter) render(file, rootDir string) string {
	trimmed := strings.TrimPrefix(file, "./")
	relDir := path.Dir(trimmed)
	if relDir != "." {
		relDir = "./" + relDir
	}
	base := path.Base(trimmed)
	ext := path.Ext(base)
	absDir := filepath.Join(rootDir, filepath.FromSlash(relDir))

	values := map[string]string{
		"name":     strings.TrimSuffix(base, ext),
		"ext":      ext,
		"dir_name": filepath.Base(absDir),
		"rel":      relDir,
		"abs":      absDir,
	}

	return placeholderToken.ReplaceAllStringFunc(f.template, func(token string) string {
		if value, ok := values[token[1:len(token)-1]]; ok {
			return value
		}
		return token
	})
}
