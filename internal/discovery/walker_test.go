package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverClassifiesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", "export const x = 1;")
	writeFile(t, dir, "src/app.test.ts", "test('x', () => {});")
	writeFile(t, dir, "src/generated/schema.gen.ts", "// generated")
	writeFile(t, dir, "src/config.ts", "export default {};")
	writeFile(t, dir, "src/stories/Button.stories.tsx", "export default {};")
	writeFile(t, dir, ".git/HEAD", "ref: refs/heads/main")
	writeFile(t, dir, "node_modules/pkg/index.js", "module.exports = {};")
	writeFile(t, dir, "package.json", `{"name":"x"}`)

	w := NewWalker(Options{})
	result, err := w.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	kinds := make(map[string]types.FileKind)
	for _, f := range result.Files {
		kinds[f.RelPath] = f.Kind
	}

	if _, ok := kinds["node_modules/pkg/index.js"]; ok {
		t.Error("node_modules should be skipped once package.json stack is detected")
	}
	if _, ok := kinds[".git/HEAD"]; ok {
		t.Error(".git should always be skipped")
	}
	if kinds["src/app.ts"] != types.KindCode {
		t.Errorf("src/app.ts = %v, want code", kinds["src/app.ts"])
	}
	if kinds["src/app.test.ts"] != types.KindTest {
		t.Errorf("src/app.test.ts = %v, want test", kinds["src/app.test.ts"])
	}
	if kinds["src/generated/schema.gen.ts"] != types.KindGenerated {
		t.Errorf("generated file misclassified: %v", kinds["src/generated/schema.gen.ts"])
	}
	if kinds["src/config.ts"] != types.KindConfig {
		t.Errorf("src/config.ts = %v, want config", kinds["src/config.ts"])
	}
	if kinds["src/stories/Button.stories.tsx"] != types.KindStory {
		t.Errorf("story file misclassified: %v", kinds["src/stories/Button.stories.tsx"])
	}
}

func TestClassifyPathPrecedence(t *testing.T) {
	// generated beats test: a file under generated/ matching a test pattern
	// is still reported as generated.
	got := ClassifyPath("generated/foo.test.ts")
	if got != types.KindGenerated {
		t.Errorf("precedence: got %v, want generated", got)
	}
}

func TestDiscoverIsLexicographic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package main")
	writeFile(t, dir, "a.go", "package main")
	writeFile(t, dir, "c.go", "package main")

	w := NewWalker(Options{})
	result, err := w.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(result.Files) != 3 {
		t.Fatalf("got %d files, want 3", len(result.Files))
	}
	for i, want := range []string{"a.go", "b.go", "c.go"} {
		if result.Files[i].RelPath != want {
			t.Errorf("Files[%d] = %s, want %s", i, result.Files[i].RelPath, want)
		}
	}
}

func TestDetectStacks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname=\"x\"")
	stacks := DetectStacks(dir)
	found := false
	for _, s := range stacks {
		if s == "target" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected target bucket from Cargo.toml, got %v", stacks)
	}
}
