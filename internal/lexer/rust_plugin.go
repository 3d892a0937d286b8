package lexer

import (
	"regexp"
	"strings"
)

// rePluginAttr matches a file-level `#![plugin(identifier = "...")]` marker
// that a generated Tauri plugin crate root carries (§4.2 "Tauri plugin
// commands").
var rePluginAttr = regexp.MustCompile(`#!\s*\[\s*plugin\s*\(\s*identifier\s*=\s*"([^"]+)"\s*\)\s*\]`)

// rePluginPathSegment and reNamespacedPluginDir recover a plugin identifier
// from conventional path shapes when the crate carries no explicit
// attribute: a `tauri-plugin-<name>` crate directory, a `plugins/<name>/`
// workspace layout, or a `<name>/plugin.rs` module file.
var (
	rePluginPathSegment    = regexp.MustCompile(`tauri-plugin-([a-z][a-z0-9_-]*)`)
	reNamespacedPluginDir  = regexp.MustCompile(`plugins/([a-z][a-z0-9_-]*)/`)
	rePluginModuleSibling  = regexp.MustCompile(`/([a-z][a-z0-9_-]*)/plugin\.rs$`)
)

// extractPluginName reports whether a command attribute explicitly scopes
// its own crate as root (`#[command(root = "crate")]`), which opts the
// command out of plugin namespacing even inside a plugin crate.
func extractPluginName(attrRaw string) bool {
	return strings.Contains(attrRaw, `root`) && strings.Contains(attrRaw, `"crate"`)
}

// extractPluginIdentifier derives the plugin namespace a Tauri plugin
// crate's commands are registered under, trying each strategy in order and
// returning the first match. Hyphens are normalized to underscores to match
// how Tauri's `generate_handler!` names the namespaced command.
func extractPluginIdentifier(content []byte, relPath string) (string, bool) {
	if m := rePluginAttr.FindSubmatch(content); m != nil {
		return normalizePluginIdent(string(m[1])), true
	}
	slashPath := toSlashPath(relPath)
	if m := rePluginPathSegment.FindStringSubmatch(slashPath); m != nil {
		return normalizePluginIdent(m[1]), true
	}
	if m := reNamespacedPluginDir.FindStringSubmatch(slashPath); m != nil {
		return normalizePluginIdent(m[1]), true
	}
	if strings.HasSuffix(slashPath, "/plugin.rs") || strings.HasSuffix(slashPath, `\plugin.rs`) {
		if m := rePluginModuleSibling.FindStringSubmatch(slashPath); m != nil {
			return normalizePluginIdent(m[1]), true
		}
	}
	return "", false
}

func normalizePluginIdent(ident string) string {
	return strings.ReplaceAll(ident, "-", "_")
}

func toSlashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
