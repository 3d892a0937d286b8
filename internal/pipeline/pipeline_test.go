package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProjectFile(t *testing.T, dir, rel, contents string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunBuildsSnapshotAndFindings(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "src/a.ts", "export const thing = 1;\n")
	writeProjectFile(t, dir, "src/b.ts", "import { thing } from './a';\nconsole.log(thing);\n")
	writeProjectFile(t, dir, "src/unused.ts", "export const neverImported = 2;\n")

	rep, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if rep.Snapshot == nil || len(rep.Snapshot.FileAnalyses) != 3 {
		t.Fatalf("expected 3 files in snapshot, got %+v", rep.Snapshot)
	}
	if _, err := os.Stat(filepath.Join(dir, ".loctree", "snapshot.json")); err != nil {
		t.Errorf("expected snapshot.json written: %v", err)
	}

	foundUnused := false
	for _, de := range rep.DeadExports {
		if de.Symbol == "neverImported" {
			foundUnused = true
		}
	}
	if !foundUnused {
		t.Errorf("expected neverImported flagged as dead, got %+v", rep.DeadExports)
	}
}

func TestRunHonorsSuppressions(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "src/a.ts", "export const neverImported = 2;\n")
	writeProjectFile(t, dir, ".loctree/suppressions.toml", `[[suppression]]
type = "dead_export"
symbol = "neverImported"
file = "src/a.ts"
`)

	rep, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, de := range rep.DeadExports {
		if de.Symbol == "neverImported" {
			t.Fatalf("expected neverImported suppressed, got %+v", rep.DeadExports)
		}
	}
}
