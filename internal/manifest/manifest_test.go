package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSummarizeMissingManifestsReturnsNil(t *testing.T) {
	dir := t.TempDir()
	if s := Summarize(dir); s != nil {
		t.Fatalf("expected nil for a directory with no manifests, got %+v", s)
	}
}

func TestSummarizePackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"name": "my-app",
		"version": "1.2.3",
		"dependencies": {"react": "^18.0.0"},
		"workspaces": ["packages/*"]
	}`)

	s := Summarize(dir)
	if s == nil || s.Name != "my-app" || s.Version != "1.2.3" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "react" {
		t.Errorf("unexpected dependencies: %+v", s.Dependencies)
	}
	if len(s.Workspaces) != 1 || s.Workspaces[0] != "packages/*" {
		t.Errorf("unexpected workspaces: %+v", s.Workspaces)
	}
}

func TestSummarizeCargoToml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `
[package]
name = "my-crate"

[dependencies]
serde = "1"

[workspace]
members = ["crates/*"]
`)

	s := Summarize(dir)
	if s == nil || s.Name != "my-crate" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "serde" {
		t.Errorf("unexpected dependencies: %+v", s.Dependencies)
	}
	if len(s.Workspaces) != 1 || s.Workspaces[0] != "crates/*" {
		t.Errorf("unexpected workspaces: %+v", s.Workspaces)
	}
}

func TestSummarizeGoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", `module github.com/example/widget

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	golang.org/x/mod v0.15.0 // indirect
)
`)

	s := Summarize(dir)
	if s == nil || s.Name != "github.com/example/widget" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "github.com/spf13/cobra" {
		t.Errorf("expected only direct requires, got %+v", s.Dependencies)
	}
}

func TestSummarizeMergesMultipleManifests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "tauri-app", "version": "0.1.0"}`)
	writeFile(t, dir, "Cargo.toml", `
[package]
name = "tauri-app-src"

[dependencies]
tauri = "2"
`)

	s := Summarize(dir)
	if s == nil || s.Name != "tauri-app" {
		t.Fatalf("expected package.json name to win, got %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "tauri" {
		t.Errorf("unexpected merged dependencies: %+v", s.Dependencies)
	}
}
