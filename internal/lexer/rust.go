package lexer

import (
	"regexp"
	"strings"

	"github.com/loctree/loctree-go/internal/lexer/ident"
	"github.com/loctree/loctree-go/pkg/types"
)

// Rust regex patterns, grounded on the canonical pattern set for the
// import/export/command surface of a Rust source file (§4.2). Go's RE2
// engine has no lookaround, so each pattern is written to avoid needing it.
var (
	reRustUse = regexp.MustCompile(`(?m)^\s*use\s+([A-Za-z0-9_:]+(?:::\{[^}]*\}|::\*)?)\s*;`)

	reRustPubUseBraced = regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+use\s+([A-Za-z0-9_:]+)::\{([^}]*)\}\s*;`)
	reRustPubUseStar   = regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+use\s+([A-Za-z0-9_:]+)::\*\s*;`)
	reRustPubUseSingle = regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+use\s+([A-Za-z0-9_:]+)::([A-Za-z0-9_]+)(?:\s+as\s+([A-Za-z0-9_]+))?\s*;`)

	rustPubDeclKinds = []struct {
		keyword string
		re      *regexp.Regexp
		kind    types.ExportKind
	}{
		{"fn", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+(?:async\s+)?fn\s+([A-Za-z0-9_]+)`), types.ExportFunction},
		{"struct", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+struct\s+([A-Za-z0-9_]+)`), types.ExportDecl},
		{"enum", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+enum\s+([A-Za-z0-9_]+)`), types.ExportEnum},
		{"trait", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+trait\s+([A-Za-z0-9_]+)`), types.ExportDecl},
		{"type", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+type\s+([A-Za-z0-9_]+)`), types.ExportType},
		{"union", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+union\s+([A-Za-z0-9_]+)`), types.ExportDecl},
		{"mod", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+mod\s+([A-Za-z0-9_]+)`), types.ExportDecl},
	}

	rustPubConstKinds = []struct {
		keyword string
		re      *regexp.Regexp
		kind    types.ExportKind
	}{
		{"const", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+const\s+([A-Za-z0-9_]+)`), types.ExportConst},
		{"static", regexp.MustCompile(`(?m)^\s*pub(?:\s*\([^)]*\))?\s+static\s+([A-Za-z0-9_]+)`), types.ExportVar},
	}

	reTauriCommandFn = regexp.MustCompile(`(?ms)#\[\s*tauri::command\s*(\([^)]*\))?\s*\]\s*(?:pub(?:\s*\([^)]*\))?\s+)?(?:async\s+)?fn\s+([A-Za-z0-9_]+)`)

	reGenerateHandler = regexp.MustCompile(`generate_handler!\s*\[([^\]]*)\]`)

	// reRustLocalDecl matches a top-level declaration with no `pub` qualifier
	// (the anchor excludes any line starting with `pub`), feeding LocalSymbols
	// for the where-symbol query (§4.12).
	reRustLocalDecl = regexp.MustCompile(`(?m)^(?:async\s+)?(?:fn|struct|enum|trait|type|union|mod)\s+([A-Za-z0-9_]+)`)
)

// RustLexer extracts imports, re-exports, public declarations, and Tauri
// command handlers from a Rust source file (§4.2 "Rust").
type RustLexer struct{}

func (RustLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, types.LangRust)
	fa.LOC = countLines(source)
	content := string(source)

	for _, m := range reRustUse.FindAllStringSubmatchIndex(content, -1) {
		path := content[m[2]:m[3]]
		line := offsetToLine(content, m[0])
		fa.Imports = append(fa.Imports, types.ImportEntry{
			Source:    path,
			SourceRaw: path,
			Kind:      types.ImportStatic,
			Line:      line,
		})
	}

	lexRustPubUse(fa, content)
	lexRustPubDecls(fa, content)
	lexRustPubConsts(fa, content)
	lexRustTauriCommands(fa, content, relPath, source)
	lexRustGenerateHandlerBlocks(fa, content)
	lexRustLocalDecls(fa, content)

	fa.SymbolUsages = ident.Filter(ident.Collect(source), rustKeywords)
	fa.StringLiterals = ident.CollectStrings(source)
	return fa
}

// lexRustPubUse handles the three shapes of `pub use`: a braced list of
// names (with optional `as` aliasing and a `self` member), a glob
// re-export, and a single aliased or bare path (§4.2).
func lexRustPubUse(fa *types.FileAnalysis, content string) {
	consumed := make(map[int]bool)

	for _, m := range reRustPubUseBraced.FindAllStringSubmatchIndex(content, -1) {
		consumed[m[0]] = true
		source := content[m[2]:m[3]]
		braceBody := content[m[4]:m[5]]
		line := offsetToLine(content, m[0])
		names := parseRustBraceNames(braceBody)
		symbols := make([]types.ImportedSymbol, len(names))
		for i, n := range names {
			symbols[i] = types.ImportedSymbol{Name: n}
		}
		fa.Reexports = append(fa.Reexports, types.ReexportEntry{
			Source: source,
			Kind:   types.ReexportNamed,
			Names:  symbols,
			Line:   line,
		})
		for _, n := range names {
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: n,
				Kind: types.ExportReexport,
				Form: types.ExportNamed,
				Line: line,
			})
		}
	}

	for _, m := range reRustPubUseStar.FindAllStringSubmatchIndex(content, -1) {
		if consumed[m[0]] {
			continue
		}
		consumed[m[0]] = true
		source := content[m[2]:m[3]]
		line := offsetToLine(content, m[0])
		fa.Reexports = append(fa.Reexports, types.ReexportEntry{
			Source: source,
			Kind:   types.ReexportStar,
			Line:   line,
		})
	}

	for _, m := range reRustPubUseSingle.FindAllStringSubmatchIndex(content, -1) {
		if consumed[m[0]] {
			continue
		}
		source := content[m[2]:m[3]]
		name := content[m[4]:m[5]]
		alias := name
		if m[6] >= 0 {
			alias = content[m[6]:m[7]]
		}
		line := offsetToLine(content, m[0])
		fa.Reexports = append(fa.Reexports, types.ReexportEntry{
			Source: source,
			Kind:   types.ReexportNamed,
			Names:  []types.ImportedSymbol{{Name: alias}},
			Line:   line,
		})
		fa.Exports = append(fa.Exports, types.ExportSymbol{
			Name: alias,
			Kind: types.ExportReexport,
			Form: types.ExportNamed,
			Line: line,
		})
	}
}

// parseRustBraceNames splits the inner list of a `pub use path::{...}`
// statement into exported names, skipping `self` (which refers to the path
// itself) and resolving `Name as Alias` to the alias.
func parseRustBraceNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" || trimmed == "self" {
			continue
		}
		if idx := strings.Index(trimmed, " as "); idx >= 0 {
			alias := strings.TrimSpace(trimmed[idx+len(" as "):])
			names = append(names, alias)
			continue
		}
		names = append(names, trimmed)
	}
	return names
}

func lexRustPubDecls(fa *types.FileAnalysis, content string) {
	for _, d := range rustPubDeclKinds {
		for _, m := range d.re.FindAllStringSubmatchIndex(content, -1) {
			name := content[m[2]:m[3]]
			line := offsetToLine(content, m[0])
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: name,
				Kind: d.kind,
				Form: types.ExportNamed,
				Line: line,
			})
		}
	}
}

func lexRustPubConsts(fa *types.FileAnalysis, content string) {
	for _, d := range rustPubConstKinds {
		for _, m := range d.re.FindAllStringSubmatchIndex(content, -1) {
			name := content[m[2]:m[3]]
			line := offsetToLine(content, m[0])
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: name,
				Kind: d.kind,
				Form: types.ExportNamed,
				Line: line,
			})
		}
	}
}

// lexRustTauriCommands finds `#[tauri::command]`-annotated functions and
// records their exposed invoke name, applying plugin namespacing when the
// file belongs to a Tauri plugin crate and the command has not opted out
// via `#[command(root = "crate")]` (§4.2 "Tauri plugin commands").
func lexRustTauriCommands(fa *types.FileAnalysis, content, relPath string, source []byte) {
	pluginID, isPlugin := extractPluginIdentifier(source, relPath)

	for _, m := range reTauriCommandFn.FindAllStringSubmatchIndex(content, -1) {
		attrRaw := ""
		if m[2] >= 0 {
			attrRaw = content[m[2]:m[3]]
		}
		fnName := content[m[4]:m[5]]
		line := offsetToLine(content, m[0])

		exposed := exposedCommandName(attrRaw, fnName)
		refIsPlugin := false
		if isPlugin && !extractPluginName(attrRaw) {
			exposed = "plugin:" + pluginID + "|" + exposed
			refIsPlugin = true
		}

		fa.CommandHandlers = append(fa.CommandHandlers, types.CommandRef{
			Name:        fnName,
			ExposedName: exposed,
			Line:        line,
			IsPlugin:    refIsPlugin,
			// Registered is resolved later, once every Rust file's
			// generate_handler! blocks have been collected across the
			// whole scan (a handler's registration commonly lives in a
			// different file than its definition).
			Registered: false,
		})
	}
}

// lexRustGenerateHandlerBlocks records every command name registered by a
// `tauri::generate_handler![...]` invocation in fa.Matches, prefixed so the
// command-coverage analyzer can recover them after a scan without
// re-reading source (§4.7). A command path like `commands::do_thing` is
// normalized to its final segment.
func lexRustGenerateHandlerBlocks(fa *types.FileAnalysis, content string) {
	for _, m := range reGenerateHandler.FindAllStringSubmatch(content, -1) {
		for _, part := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if idx := strings.LastIndex(name, "::"); idx >= 0 {
				name = name[idx+2:]
			}
			fa.Matches = append(fa.Matches, "generate_handler:"+name)
		}
	}
}

// lexRustLocalDecls records every top-level declaration that carries no
// `pub` qualifier, so where-symbol (§4.12) can resolve module-private names
// the same way the Go lexer already does for unexported declarations.
func lexRustLocalDecls(fa *types.FileAnalysis, content string) {
	for _, m := range reRustLocalDecl.FindAllStringSubmatch(content, -1) {
		fa.LocalSymbols = append(fa.LocalSymbols, m[1])
	}
}

// offsetToLine converts a byte offset into a 1-based line number.
func offsetToLine(content string, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// rustKeywords are subtracted from raw identifier collection so
// SymbolUsages reflects real references rather than language syntax.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "async": true, "await": true,
	"dyn": true,
}
