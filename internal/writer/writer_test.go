package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every sink invocation for assertions.
type captureSink struct {
	paths    []string
	contents []string
}

func (c *captureSink) sink(path, content string) error {
	c.paths = append(c.paths, path)
	c.contents = append(c.contents, content)
	return nil
}

func TestWriteRendering(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		lines []string
		want  string
	}{
		{
			name:  "lines only",
			opts:  Options{Newline: "\n"},
			lines: []string{"a", "b"},
			want:  "a\nb",
		},
		{
			name:  "trailing newline",
			opts:  Options{Newline: "\n", NewlineAtEOF: true},
			lines: []string{"a", "b"},
			want:  "a\nb\n",
		},
		{
			name:  "header with blank separator",
			opts:  Options{Header: "// banner", Newline: "\n", NewlineAtEOF: true},
			lines: []string{"a"},
			want:  "// banner\n\na\n",
		},
		{
			name:  "header only when no lines and suppression disabled",
			opts:  Options{Header: "// banner", Newline: "\n", NewlineAtEOF: true},
			lines: nil,
			want:  "// banner\n",
		},
		{
			name:  "crlf separator",
			opts:  Options{Header: "// banner", Newline: "\r\n", NewlineAtEOF: true},
			lines: []string{"a", "b"},
			want:  "// banner\r\n\r\na\r\nb\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &captureSink{}
			tt.opts.Sink = capture.sink
			wrote, err := New(tt.opts).Write("/out/index.ts", tt.lines)
			require.NoError(t, err)
			assert.True(t, wrote)
			require.Len(t, capture.contents, 1)
			assert.Equal(t, tt.want, capture.contents[0])
		})
	}
}

func TestWriteEmptySuppressedNotifiesSink(t *testing.T) {
	capture := &captureSink{}
	w := New(Options{Newline: "\n", CreateOnlyIfNeeded: true, Sink: capture.sink})

	wrote, err := w.Write("/out/index.ts", nil)
	require.NoError(t, err)
	assert.False(t, wrote, "no file was written with content")
	require.Len(t, capture.contents, 1)
	assert.Equal(t, "", capture.contents[0], "sink is notified of emptiness")
}

func TestWriteEmptySuppressedDeletesStaleFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(out, []byte("export * from './old';\n"), 0o644))

	w := New(Options{Newline: "\n", CreateOnlyIfNeeded: true})
	wrote, err := w.Write(out, nil)
	require.NoError(t, err)
	assert.False(t, wrote)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "stale index must be deleted")
}

func TestWriteEmptySuppressedMissingFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Newline: "\n", CreateOnlyIfNeeded: true})
	wrote, err := w.Write(filepath.Join(dir, "index.ts"), nil)
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestWriteToFilesystem(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "index.ts")

	w := New(Options{Newline: "\n", NewlineAtEOF: true})
	wrote, err := w.Write(out, []string{"export * from './a';"})
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "export * from './a';\n", string(data))

	// No temp or lock files may remain next to the index.
	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.ts", entries[0].Name())
}

func TestWriteIdempotent(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "index.ts")
	w := New(Options{Header: "// banner", Newline: "\n", NewlineAtEOF: true})

	_, err := w.Write(out, []string{"a", "b"})
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = w.Write(out, []string{"a", "b"})
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical arguments produce byte-identical output")
}
