package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LibraryMode {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".loctree"), 0o755); err != nil {
		t.Fatal(err)
	}
	contents := `
version = 1
library_mode = true
custom_command_macros = ["register_commands!"]
invalid_command_names = ["__proto__"]
`
	if err := os.WriteFile(filepath.Join(dir, ".loctree", "config.toml"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.LibraryMode {
		t.Errorf("expected library_mode true")
	}
	if len(cfg.CustomCommandMacros) != 1 || cfg.CustomCommandMacros[0] != "register_commands!" {
		t.Errorf("unexpected macros: %+v", cfg.CustomCommandMacros)
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".loctree"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".loctree", "config.toml"), []byte("version = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for unsupported version")
	}
}
