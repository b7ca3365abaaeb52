package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/harrison/indexgen/internal/pattern"
)

// writeTree creates the given files under root, creating directories as
// needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func newScanner(t *testing.T, includes, excludes []string) *Scanner {
	t.Helper()
	inc, err := pattern.CompileSet(includes)
	if err != nil {
		t.Fatalf("failed to compile includes: %v", err)
	}
	exc, err := pattern.CompileSet(excludes)
	if err != nil {
		t.Fatalf("failed to compile excludes: %v", err)
	}
	return New(inc, exc)
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.ts":           "export const x = 1;\n",
		"b.ts":           "const internal = 2;\n", // no export line
		"c.txt":          "export const y = 3;\n", // filtered by includes
		"skip.ts":        "// index-generator-ignore\nexport const z = 4;\n",
		"util/d.ts":      "export function f() {}\n",
		"util/deep/e.ts": "  export default class E {}\n",
		"vendor/v.ts":    "export const v = 5;\n", // filtered by excludes
	})

	s := newScanner(t, []string{`\.ts$`}, []string{`^vendor/`})
	files, err := s.Collect(root)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	want := []string{"./a.ts", "./util/d.ts", "./util/deep/e.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Collect() = %v, want %v", files, want)
	}
}

func TestIgnoreMarkerBeatsExports(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"line comment marker", "// index-generator-ignore\nexport const a = 1;\n", false},
		{"block comment marker", "/* index-generator-ignore */\nexport const a = 1;\n", false},
		{"indented marker", "  // index-generator-ignore\nexport const a = 1;\n", false},
		{"marker inside a statement does not count", "const s = 'index-generator-ignore';\nexport const a = 1;\n", true},
		{"plain export", "export const a = 1;\n", true},
		{"indented export", "\texport type T = string;\n", true},
		{"export mentioned mid-line only", "const a = 1; // export later\n", false},
		{"no exports at all", "const a = 1;\n", false},
	}

	s := newScanner(t, []string{`\.ts$`}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeTree(t, root, map[string]string{"probe.ts": tt.content})
			got, err := s.qualifies(filepath.Join(root, "probe.ts"), "probe.ts")
			if err != nil {
				t.Fatalf("qualifies() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("qualifies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.ts":        "export const a = 1;\n",
		"util/b.ts":   "export const b = 2;\n",
		"util/c.ts":   "const c = 3;\n", // not exported
		"empty/.keep": "",
	})

	s := newScanner(t, []string{`\.ts$`}, nil)
	tree, err := s.CollectTree(root)
	if err != nil {
		t.Fatalf("CollectTree() error: %v", err)
	}

	if tree.Dir != root {
		t.Errorf("tree.Dir = %q, want %q", tree.Dir, root)
	}
	// ReadDir order: a.ts, empty, util
	if len(tree.Items) != 3 {
		t.Fatalf("len(tree.Items) = %d, want 3", len(tree.Items))
	}
	if tree.Items[0].File != "a.ts" {
		t.Errorf("first item = %+v, want file a.ts", tree.Items[0])
	}
	empty := tree.Items[1].Child
	if empty == nil || empty.Name != "empty" || len(empty.Items) != 0 {
		t.Errorf("second item = %+v, want empty child folder", tree.Items[1])
	}
	util := tree.Items[2].Child
	if util == nil || util.Name != "util" {
		t.Fatalf("third item = %+v, want util child folder", tree.Items[2])
	}
	if len(util.Items) != 1 || util.Items[0].File != "b.ts" {
		t.Errorf("util.Items = %+v, want single file b.ts", util.Items)
	}
}

func TestCollectTreeFiltersByBareName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"util/index.ts": "export * from './b';\n",
		"util/b.ts":     "export const b = 1;\n",
	})

	// In per-folder traversal every folder is its own scan root, so the
	// exclude filter sees bare names.
	s := newScanner(t, []string{`\.ts$`}, []string{`index\.ts$`})
	tree, err := s.CollectTree(root)
	if err != nil {
		t.Fatalf("CollectTree() error: %v", err)
	}
	util := tree.Items[0].Child
	if util == nil {
		t.Fatal("expected util child folder")
	}
	if len(util.Items) != 1 || util.Items[0].File != "b.ts" {
		t.Errorf("util.Items = %+v, want only b.ts", util.Items)
	}
}
