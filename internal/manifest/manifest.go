// Package manifest summarizes package.json/Cargo.toml/pyproject.toml/go.mod
// into the handful of facts downstream components want without re-reading
// the manifest (§3 "manifest_summary", supplemented feature grounded on
// original_source's manifests.rs).
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"

	"github.com/loctree/loctree-go/pkg/types"
)

// Summarize inspects root for package.json, Cargo.toml, pyproject.toml, and
// go.mod and merges whatever it finds into one ManifestSummary. A project may
// carry more than one (a Tauri app has both package.json and Cargo.toml);
// dependencies and workspace globs accumulate across all four, while the
// project name is taken from the first manifest found, in that order.
func Summarize(root string) *types.ManifestSummary {
	s := &types.ManifestSummary{}
	found := false

	if pkg, ok := summarizePackageJSON(root); ok {
		found = true
		if s.Name == "" {
			s.Name = pkg.name
		}
		if s.Version == "" {
			s.Version = pkg.version
		}
		s.Dependencies = append(s.Dependencies, pkg.dependencies...)
		s.Workspaces = append(s.Workspaces, pkg.workspaces...)
	}

	if cargo, ok := summarizeCargoToml(root); ok {
		found = true
		if s.Name == "" {
			s.Name = cargo.name
		}
		s.Dependencies = append(s.Dependencies, cargo.dependencies...)
		s.Workspaces = append(s.Workspaces, cargo.workspaceMembers...)
	}

	if py, ok := summarizePyProjectToml(root); ok {
		found = true
		if s.Name == "" {
			s.Name = py.name
		}
		if s.Version == "" {
			s.Version = py.version
		}
		s.Dependencies = append(s.Dependencies, py.dependencies...)
	}

	if gomod, ok := summarizeGoMod(root); ok {
		found = true
		if s.Name == "" {
			s.Name = gomod.modulePath
		}
		s.Dependencies = append(s.Dependencies, gomod.requires...)
	}

	if !found {
		return nil
	}

	sort.Strings(s.Dependencies)
	s.Dependencies = dedupe(s.Dependencies)
	sort.Strings(s.Workspaces)
	s.Workspaces = dedupe(s.Workspaces)
	return s
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	out := items[:0:0]
	var prev string
	for i, it := range items {
		if i == 0 || it != prev {
			out = append(out, it)
		}
		prev = it
	}
	return out
}

type packageJSONSummary struct {
	name         string
	version      string
	dependencies []string
	workspaces   []string
}

func summarizePackageJSON(root string) (packageJSONSummary, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return packageJSONSummary{}, false
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return packageJSONSummary{}, false
	}

	summary := packageJSONSummary{
		name:    stringField(doc, "name"),
		version: stringField(doc, "version"),
	}

	for _, key := range []string{"dependencies", "devDependencies", "peerDependencies"} {
		if deps, ok := doc[key].(map[string]any); ok {
			for name := range deps {
				summary.dependencies = append(summary.dependencies, name)
			}
		}
	}

	switch ws := doc["workspaces"].(type) {
	case []any:
		for _, item := range ws {
			if s, ok := item.(string); ok {
				summary.workspaces = append(summary.workspaces, s)
			}
		}
	case map[string]any:
		if packages, ok := ws["packages"].([]any); ok {
			for _, item := range packages {
				if s, ok := item.(string); ok {
					summary.workspaces = append(summary.workspaces, s)
				}
			}
		}
	}

	return summary, true
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

type cargoTomlSummary struct {
	name             string
	dependencies     []string
	workspaceMembers []string
}

func summarizeCargoToml(root string) (cargoTomlSummary, bool) {
	data, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return cargoTomlSummary{}, false
	}

	var doc struct {
		Package struct {
			Name string `toml:"name"`
		} `toml:"package"`
		Dependencies    map[string]toml.Primitive `toml:"dependencies"`
		DevDependencies map[string]toml.Primitive `toml:"dev-dependencies"`
		Workspace       struct {
			Members []string `toml:"members"`
		} `toml:"workspace"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return cargoTomlSummary{}, false
	}

	summary := cargoTomlSummary{name: doc.Package.Name, workspaceMembers: doc.Workspace.Members}
	for name := range doc.Dependencies {
		summary.dependencies = append(summary.dependencies, name)
	}
	for name := range doc.DevDependencies {
		summary.dependencies = append(summary.dependencies, name)
	}
	return summary, true
}

type pyProjectSummary struct {
	name         string
	version      string
	dependencies []string
}

func summarizePyProjectToml(root string) (pyProjectSummary, bool) {
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return pyProjectSummary{}, false
	}

	var doc struct {
		Project struct {
			Name         string   `toml:"name"`
			Version      string   `toml:"version"`
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Name         string                    `toml:"name"`
				Version      string                    `toml:"version"`
				Dependencies map[string]toml.Primitive `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return pyProjectSummary{}, false
	}

	summary := pyProjectSummary{
		name:         doc.Project.Name,
		version:      doc.Project.Version,
		dependencies: doc.Project.Dependencies,
	}
	if summary.name == "" {
		summary.name = doc.Tool.Poetry.Name
	}
	if summary.version == "" {
		summary.version = doc.Tool.Poetry.Version
	}
	for name := range doc.Tool.Poetry.Dependencies {
		if name == "python" {
			continue
		}
		summary.dependencies = append(summary.dependencies, name)
	}
	return summary, true
}

type gomodSummary struct {
	modulePath string
	requires   []string
}

// summarizeGoMod reads go.mod's module path and direct (non-indirect)
// requires. Parsed syntactically via modfile rather than loaded with
// go/packages, matching loctree's lexical-only scope ("not a type-checker").
func summarizeGoMod(root string) (gomodSummary, bool) {
	path := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return gomodSummary{}, false
	}

	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return gomodSummary{}, false
	}

	summary := gomodSummary{}
	if f.Module != nil {
		summary.modulePath = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		summary.requires = append(summary.requires, req.Mod.Path)
	}
	return summary, true
}
