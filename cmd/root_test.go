package cmd

import (
	"bytes"
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	want := []string{"scan", "tree", "slice", "find", "dead", "cycles", "trace",
		"commands", "events", "pipelines", "routes", "report", "info", "lint",
		"query", "diff", "impact", "crowd", "twins", "suppress", "coverage",
		"health", "audit", "plan"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "loctree" {
		t.Errorf("expected Use='loctree', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if rootCmd.Version == "" {
		t.Error("root command should have a version set")
	}
}

func TestVerboseFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	if f == nil {
		t.Fatal("verbose flag not registered")
	}
	if f.Shorthand != "v" {
		t.Errorf("verbose shorthand should be 'v', got %q", f.Shorthand)
	}
	if f.DefValue != "false" {
		t.Errorf("verbose default should be 'false', got %q", f.DefValue)
	}
}

func TestQuietFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("quiet")
	if f == nil {
		t.Fatal("quiet flag not registered")
	}
	if f.Shorthand != "q" {
		t.Errorf("quiet shorthand should be 'q', got %q", f.Shorthand)
	}
}

func TestColorFlagDefault(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("color")
	if f == nil {
		t.Fatal("color flag not registered")
	}
	if f.DefValue != "auto" {
		t.Errorf("color default should be 'auto', got %q", f.DefValue)
	}
}

func TestSilenceErrors(t *testing.T) {
	if !rootCmd.SilenceErrors {
		t.Error("root command should have SilenceErrors=true")
	}
}

func TestSilenceUsage(t *testing.T) {
	if !rootCmd.SilenceUsage {
		t.Error("root command should have SilenceUsage=true")
	}
}

func TestExecute_HelpDoesNotPanic(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	_ = rootCmd.Execute()
}

func TestExitOnFound(t *testing.T) {
	if err := exitOnFound(false, true); err != nil {
		t.Errorf("gate off should never error, got: %v", err)
	}
	if err := exitOnFound(true, false); err != nil {
		t.Errorf("nothing found should never error, got: %v", err)
	}
	err := exitOnFound(true, true)
	if err == nil {
		t.Fatal("gate on with a finding should error")
	}
	exitErr, ok := err.(*types.ExitError)
	if !ok {
		t.Fatalf("expected *types.ExitError, got %T", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.Code)
	}
}
