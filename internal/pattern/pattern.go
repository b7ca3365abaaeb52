// Package pattern compiles the include/exclude filters applied to
// forward-slash-normalized paths relative to each scan root.
//
// Filters are regular expressions by default. A "glob:" prefix selects
// doublestar glob matching instead, for configs that prefer gitignore-style
// wildcards over regex syntax.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globPrefix marks a filter expression as a doublestar glob.
const globPrefix = "glob:"

// Matcher is one compiled filter expression.
type Matcher struct {
	source string
	regex  *regexp.Regexp
	glob   string
}

// Compile compiles a single filter expression. Malformed expressions are
// fatal: the resulting error propagates to the caller unchanged.
func Compile(expr string) (*Matcher, error) {
	if glob, ok := strings.CutPrefix(expr, globPrefix); ok {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid glob pattern %q", glob)
		}
		return &Matcher{source: expr, glob: glob}, nil
	}
	regex, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Matcher{source: expr, regex: regex}, nil
}

// Match reports whether the relative path matches this filter.
func (m *Matcher) Match(relPath string) bool {
	if m.regex != nil {
		return m.regex.MatchString(relPath)
	}
	// Pattern validity was checked at compile time.
	ok, _ := doublestar.Match(m.glob, relPath)
	return ok
}

// String returns the original filter expression.
func (m *Matcher) String() string {
	return m.source
}

// Set is an ordered collection of filters.
type Set struct {
	matchers []*Matcher
}

// CompileSet compiles every expression in order. The first malformed
// expression aborts compilation.
func CompileSet(exprs []string) (*Set, error) {
	set := &Set{matchers: make([]*Matcher, 0, len(exprs))}
	for _, expr := range exprs {
		m, err := Compile(expr)
		if err != nil {
			return nil, err
		}
		set.matchers = append(set.matchers, m)
	}
	return set, nil
}

// Any reports whether at least one filter in the set matches the path.
// An empty set matches nothing.
func (s *Set) Any(relPath string) bool {
	for _, m := range s.matchers {
		if m.Match(relPath) {
			return true
		}
	}
	return false
}

// Len returns the number of filters in the set.
func (s *Set) Len() int {
	return len(s.matchers)
}
