package discovery

import (
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

// extensionLanguages maps a lowercased extension (without the leading dot)
// to the language it represents (§4.1 recognized extensions set).
var extensionLanguages = map[string]types.Language{
	"ts":     types.LangTS,
	"tsx":    types.LangTS,
	"mts":    types.LangTS,
	"cts":    types.LangTS,
	"js":     types.LangJS,
	"jsx":    types.LangJS,
	"mjs":    types.LangJS,
	"cjs":    types.LangJS,
	"vue":    types.LangTS, // SFC script block is lexed as TS/JS
	"svelte": types.LangTS,
	"rs":     types.LangRust,
	"py":     types.LangPython,
	"go":     types.LangGo,
	"dart":   types.LangDart,
	"css":    types.LangCSS,
}

// generatedSuffixes are known generated-file suffixes recognized regardless
// of directory (§4.1).
var generatedSuffixes = []string{
	".gen.ts", ".gen.js", ".g.dart", ".freezed.dart", ".pb.dart", ".pb.go",
}

// LanguageForExt returns the Language for a lowercase extension (no dot), or
// false if unrecognized.
func LanguageForExt(ext string) (types.Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// ClassifyPath classifies a project-relative, POSIX-separated path
// according to the precedence in §4.1: generated > test > story > config >
// code. Matching is case-insensitive.
func ClassifyPath(relPath string) types.FileKind {
	lower := strings.ToLower(relPath)

	if isGenerated(lower) {
		return types.KindGenerated
	}
	if isTest(lower) {
		return types.KindTest
	}
	if isStory(lower) {
		return types.KindStory
	}
	if isConfig(lower) {
		return types.KindConfig
	}
	return types.KindCode
}

func isGenerated(lower string) bool {
	if containsSegment(lower, "generated") || containsSegment(lower, "codegen") || containsSegment(lower, "gen") {
		return true
	}
	for _, suf := range generatedSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

func isTest(lower string) bool {
	if containsSegment(lower, "__tests__") {
		return true
	}
	if strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") {
		return true
	}
	for _, suf := range []string{"_test.rs", "_tests.rs", "_test.go", "_test.dart"} {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

func isStory(lower string) bool {
	if containsSegment(lower, "stories") {
		return true
	}
	return strings.Contains(lower, ".story.") || strings.Contains(lower, ".stories.")
}

func isConfig(lower string) bool {
	if containsSegment(lower, "config") {
		return true
	}
	for _, ext := range []string{".ts", ".tsx", ".js", ".rs"} {
		if strings.HasSuffix(lower, "config"+ext) {
			return true
		}
	}
	for _, ext := range []string{".ts", ".js", ".json"} {
		if strings.HasSuffix(lower, ".config"+ext) {
			return true
		}
	}
	return false
}

// containsSegment reports whether lower contains name as a path segment,
// i.e. surrounded by slashes (or at the start/end of the string).
func containsSegment(lower, name string) bool {
	needle := "/" + name + "/"
	if strings.Contains(lower, needle) {
		return true
	}
	return strings.HasPrefix(lower, name+"/") || strings.HasSuffix(lower, "/"+name)
}
