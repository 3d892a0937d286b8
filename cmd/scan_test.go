package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetGlobalFlags resets package-level flags to defaults before each
// integration test, since cobra flags are package state shared across runs.
func resetGlobalFlags() {
	jsonOutput = false
	quiet = false
	verbose = false
	colorMode = "auto"
	fresh = false
	noScan = false
	failStale = false
	findings = false
	summary = false
}

// makeMinimalGoProject creates a temp dir with a two-file Go module: one
// file importing the other, so the scan has at least one edge to walk.
func makeMinimalGoProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/test\n\ngo 1.21\n"), 0644)
	os.Mkdir(filepath.Join(dir, "greet"), 0755)
	os.WriteFile(filepath.Join(dir, "greet", "greet.go"), []byte("package greet\n\nfunc Hello() string { return \"hi\" }\n"), 0644)
	os.WriteFile(filepath.Join(dir, "main.go"), []byte(
		"package main\n\nimport (\n\t\"fmt\"\n\n\t\"example.com/test/greet\"\n)\n\nfunc main() { fmt.Println(greet.Hello()) }\n"), 0644)
	return dir
}

func TestScanCmdMetadata(t *testing.T) {
	if scanCmd.Use != "scan [directory]" {
		t.Errorf("expected Use='scan [directory]', got %q", scanCmd.Use)
	}
	if scanCmd.Short == "" {
		t.Error("scan command should have a short description")
	}
}

func TestScanCmdAcceptsZeroOrOneArg(t *testing.T) {
	if err := scanCmd.Args(scanCmd, []string{}); err != nil {
		t.Errorf("scan should accept 0 args, got error: %v", err)
	}
	if err := scanCmd.Args(scanCmd, []string{"a"}); err != nil {
		t.Errorf("scan should accept 1 arg, got error: %v", err)
	}
	if err := scanCmd.Args(scanCmd, []string{"a", "b"}); err == nil {
		t.Error("scan should reject 2 args")
	}
}

func TestScanRunE_InvalidDir(t *testing.T) {
	resetGlobalFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", string([]byte{0})})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for an unusable path")
	}
}

func TestScanRunE_ValidProject_JSON(t *testing.T) {
	resetGlobalFlags()
	dir := makeMinimalGoProject(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", "--json", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan --json should succeed, got: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".loctree", "snapshot.json"))
	if err != nil {
		t.Fatalf("expected a persisted snapshot, got: %v", err)
	}
	if !strings.Contains(string(data), "example.com/test") {
		t.Error("persisted snapshot should reference the scanned module")
	}
}

func TestScanRunE_FreshRescans(t *testing.T) {
	resetGlobalFlags()
	dir := makeMinimalGoProject(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", "--quiet", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("first scan should succeed, got: %v", err)
	}

	resetGlobalFlags()
	rootCmd.SetArgs([]string{"scan", "--quiet", "--fresh", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan --fresh should succeed, got: %v", err)
	}
}

func TestScanRunE_NoScanWithoutSnapshotFails(t *testing.T) {
	resetGlobalFlags()
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/empty\n\ngo 1.21\n"), 0644)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", "--no-scan", dir})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error when --no-scan runs with no prior snapshot")
	}
}

func TestScanRunE_NoScanReusesSnapshot(t *testing.T) {
	resetGlobalFlags()
	dir := makeMinimalGoProject(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", "--quiet", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("initial scan should succeed, got: %v", err)
	}

	resetGlobalFlags()
	rootCmd.SetArgs([]string{"scan", "--no-scan", "--json", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan --no-scan should reuse the persisted snapshot, got: %v", err)
	}
}
