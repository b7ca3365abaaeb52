// Package pathutil provides path resolution helpers shared by the scanner,
// formatter and generator.
package pathutil

import (
	"os"
	"path/filepath"
)

// Resolve converts value to an absolute path. Absolute values are returned
// unchanged. Relative values are joined onto relativeTo; an empty relativeTo
// means the process working directory.
func Resolve(value, relativeTo string) string {
	if filepath.IsAbs(value) {
		return value
	}
	if relativeTo == "" {
		relativeTo, _ = os.Getwd()
	}
	return filepath.Join(relativeTo, value)
}
