// Package config loads the optional .loctree/config.toml project file
// (§6 "Configuration").
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig is the user-tunable surface of .loctree/config.toml.
// A missing file is not an error: callers get a zero-value ProjectConfig.
type ProjectConfig struct {
	Version int `toml:"version"`

	// CustomCommandMacros lists additional macro names (beyond
	// generate_handler!) that register Tauri command handlers. It is loaded
	// and validated; no lexer reads it.
	CustomCommandMacros []string `toml:"custom_command_macros"`

	// DOMExclusions lists identifier prefixes to exclude from DOM-event
	// false-positive detection in the TS/JS lexer. It is loaded and
	// validated; no lexer reads it.
	DOMExclusions []string `toml:"dom_exclusions"`

	// NonInvokeExclusions lists call-site names that look like invoke()
	// wrappers but are not command calls. It is loaded and validated; no
	// lexer reads it.
	NonInvokeExclusions []string `toml:"non_invoke_exclusions"`

	// InvalidCommandNames lists command names known not to be real
	// Tauri commands, excluded from command-coverage findings.
	InvalidCommandNames []string `toml:"invalid_command_names"`

	// LibraryMode, when true, suppresses "unused export" findings for
	// every file (the project is a library; everything is a public API).
	LibraryMode bool `toml:"library_mode"`

	// ExtraLibraryExampleGlobs lists additional glob patterns treated as
	// example/demo code and exempted from dead-export analysis.
	ExtraLibraryExampleGlobs []string `toml:"extra_library_example_globs"`
}

// fileName is the config file's name under the project's .loctree directory.
const fileName = "config.toml"

// Load reads <dir>/.loctree/config.toml. A missing file returns a zero-value
// ProjectConfig and no error. A malformed file returns the zero value and a
// non-nil error; callers at the CLI boundary should warn and fall back to
// defaults rather than aborting the scan (§7 "Configuration errors" is about
// fatal CLI-level misconfiguration, not a malformed optional project file).
func Load(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, ".loctree", fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return &ProjectConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &ProjectConfig{}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return &ProjectConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return &ProjectConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded config for internally inconsistent values.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	return nil
}
