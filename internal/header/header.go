// Package header renders the optional boilerplate block prepended to every
// generated index file.
package header

import (
	"fmt"
	"strings"
)

// Mode selects how the raw header text is rendered.
type Mode string

const (
	// ModeDisabled suppresses the header entirely.
	ModeDisabled Mode = "disabled"

	// ModeRaw emits the header text unchanged.
	ModeRaw Mode = "raw"

	// ModeMultiline wraps the header in a block comment, one " * " prefixed
	// line per input line.
	ModeMultiline Mode = "multiline"

	// ModeSingleline prefixes every line with a line comment marker.
	ModeSingleline Mode = "singleline"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDisabled, ModeRaw, ModeMultiline, ModeSingleline:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid header mode %q, must be one of: disabled, raw, multiline, singleline", s)
}

// Render produces the literal header prefix for the given raw text and mode.
// Input lines are split on "\n" (tolerating "\r\n") and rejoined with the
// configured newline. Render is called once per run; the result is reused for
// every output file.
func Render(text string, mode Mode, newline string) string {
	switch mode {
	case ModeRaw:
		return text
	case ModeMultiline:
		lines := splitLines(text)
		block := make([]string, 0, len(lines)+2)
		block = append(block, "/*")
		for _, line := range lines {
			block = append(block, " * "+line)
		}
		block = append(block, " */")
		return strings.Join(block, newline)
	case ModeSingleline:
		lines := splitLines(text)
		for i, line := range lines {
			lines[i] = "// " + line
		}
		return strings.Join(lines, newline)
	}
	return ""
}

// splitLines splits on "\n" and strips any trailing "\r" so CRLF input does
// not leak carriage returns into the rendered block.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
