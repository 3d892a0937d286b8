package lexer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/loctree/loctree-go/internal/lexer/ident"
	"github.com/loctree/loctree-go/pkg/types"
)

// TSJSLexer parses TypeScript/JavaScript (and the <script> block of Vue/Svelte
// single-file components) with a real AST rather than regexes, per §4.2
// "TS/JS must use a real parser". Invoke/event call sites are then recovered
// with a regex overlay on the source text, mirroring the canonical pattern
// set for Tauri's JS-side bridge API, which has no dedicated AST shape.
type TSJSLexer struct {
	mu        sync.Mutex
	tsParser  *tree_sitter.Parser
	tsxParser *tree_sitter.Parser
}

// NewTSJSLexer creates the pooled TypeScript and TSX parsers. Tree-sitter
// parsers are not thread-safe, so every Lex call serializes through mu.
func NewTSJSLexer() (*TSJSLexer, error) {
	tsParser := tree_sitter.NewParser()
	tsLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}

	tsxParser := tree_sitter.NewParser()
	tsxLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	if err := tsxParser.SetLanguage(tsxLang); err != nil {
		tsParser.Close()
		tsxParser.Close()
		return nil, fmt.Errorf("set tsx language: %w", err)
	}

	return &TSJSLexer{tsParser: tsParser, tsxParser: tsxParser}, nil
}

// Close releases both pooled parsers.
func (l *TSJSLexer) Close() {
	if l.tsParser != nil {
		l.tsParser.Close()
	}
	if l.tsxParser != nil {
		l.tsxParser.Close()
	}
}

var reSFCScriptBlock = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)

func (l *TSJSLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, tsjsLanguageFor(relPath))
	fa.LOC = countLines(source)

	content := source
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(relPath), "."))
	if ext == "vue" || ext == "svelte" {
		if m := reSFCScriptBlock.FindSubmatch(source); m != nil {
			content = m[1]
		} else {
			content = nil
		}
	}

	if len(content) > 0 {
		l.mu.Lock()
		parser := l.tsxParser
		if ext == "ts" || ext == "mts" || ext == "cts" {
			parser = l.tsParser
		}
		tree := parser.Parse(content, nil)
		l.mu.Unlock()
		if tree != nil {
			walkTSJS(tree.RootNode(), content, fa)
			walkTSJSLocal(tree.RootNode(), content, fa)
			tree.Close()
		}
		fa.SymbolUsages = ident.Filter(ident.Collect(content), tsjsKeywords)
	}

	lexTSJSInvokeAndEvents(fa, string(source))
	fa.StringLiterals = ident.CollectStrings(source)
	return fa
}

// tsjsKeywords are the reserved words subtracted from the raw identifier
// collection so SymbolUsages only contains real references (§4.2, §4.6's
// local-uses set), matching the per-language keyword lists in golang.go,
// rust.go, python.go, and dart.go.
var tsjsKeywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true, "new": true,
	"null": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "var": true,
	"void": true, "while": true, "with": true, "yield": true, "as": true,
	"async": true, "await": true, "from": true, "of": true, "static": true,
	"get": true, "set": true, "implements": true, "namespace": true, "type": true,
	"readonly": true, "abstract": true, "declare": true, "is": true, "keyof": true,
	"module": true, "require": true, "undefined": true,
}

func tsjsLanguageFor(relPath string) types.Language {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(relPath), "."))
	switch ext {
	case "js", "jsx", "mjs", "cjs":
		return types.LangJS
	default:
		return types.LangTS
	}
}

func nodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

func tsStripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// walkTSJS walks the top-level statements of the parsed module, recording
// imports, re-exports, exports, and dynamic import() call sites (§4.2).
func walkTSJS(root *tree_sitter.Node, content []byte, fa *types.FileAnalysis) {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			tsjsImportStatement(child, content, fa)
		case "export_statement":
			tsjsExportStatement(child, content, fa)
		}
	}

	walkTSJSDynamic(root, content, fa)
}

// walkTSJSLocal records top-level declarations NOT wrapped in an
// export_statement, so where-symbol (§4.12) can resolve module-private
// names in TS/JS the same way it already does for Go.
func walkTSJSLocal(root *tree_sitter.Node, content []byte, fa *types.FileAnalysis) {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "function_declaration", "generator_function_declaration", "class_declaration",
			"interface_declaration", "type_alias_declaration", "enum_declaration":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				fa.LocalSymbols = append(fa.LocalSymbols, nodeText(nameNode, content))
			}
		case "lexical_declaration", "variable_declaration":
			for j := uint(0); j < child.ChildCount(); j++ {
				declChild := child.Child(j)
				if declChild == nil || declChild.Kind() != "variable_declarator" {
					continue
				}
				if nameNode := declChild.ChildByFieldName("name"); nameNode != nil {
					fa.LocalSymbols = append(fa.LocalSymbols, nodeText(nameNode, content))
				}
			}
		}
	}
}

func tsjsImportStatement(node *tree_sitter.Node, content []byte, fa *types.FileAnalysis) {
	line := int(node.StartPosition().Row) + 1
	srcNode := node.ChildByFieldName("source")
	source := ""
	if srcNode != nil {
		source = tsStripQuotes(nodeText(srcNode, content))
	}

	isTypeOnly := false
	var symbols []types.ImportedSymbol
	hasClause := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "type":
			isTypeOnly = true
		case "import_clause":
			hasClause = true
			symbols = append(symbols, tsjsImportClauseSymbols(child, content)...)
		}
	}

	fa.Imports = append(fa.Imports, types.ImportEntry{
		Source:     source,
		SourceRaw:  source,
		Kind:       types.ImportStatic,
		IsBare:     !hasClause,
		Symbols:    symbols,
		IsTypeOnly: isTypeOnly,
		Line:       line,
	})
}

func tsjsImportClauseSymbols(clause *tree_sitter.Node, content []byte) []types.ImportedSymbol {
	var symbols []types.ImportedSymbol
	for j := uint(0); j < clause.ChildCount(); j++ {
		inner := clause.Child(j)
		if inner == nil {
			continue
		}
		switch inner.Kind() {
		case "identifier":
			symbols = append(symbols, types.ImportedSymbol{Name: "default", Alias: nodeText(inner, content)})
		case "named_imports":
			for k := uint(0); k < inner.ChildCount(); k++ {
				spec := inner.Child(k)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
				if nameNode == nil {
					continue
				}
				sym := types.ImportedSymbol{Name: nodeText(nameNode, content)}
				if aliasNode != nil {
					sym.Alias = nodeText(aliasNode, content)
				}
				symbols = append(symbols, sym)
			}
		case "namespace_import":
			name := ""
			if nameNode := inner.ChildByFieldName("name"); nameNode != nil {
				name = nodeText(nameNode, content)
			} else {
				for k := uint(0); k < inner.ChildCount(); k++ {
					c := inner.Child(k)
					if c != nil && c.Kind() == "identifier" {
						name = nodeText(c, content)
					}
				}
			}
			symbols = append(symbols, types.ImportedSymbol{Name: "*", Alias: name})
		}
	}
	return symbols
}

func tsjsExportStatement(node *tree_sitter.Node, content []byte, fa *types.FileAnalysis) {
	line := int(node.StartPosition().Row) + 1
	srcNode := node.ChildByFieldName("source")

	if srcNode != nil {
		source := tsStripQuotes(nodeText(srcNode, content))
		isStar := false
		for i := uint(0); i < node.ChildCount(); i++ {
			if c := node.Child(i); c != nil && c.Kind() == "*" {
				isStar = true
			}
		}
		if isStar {
			fa.Reexports = append(fa.Reexports, types.ReexportEntry{Source: source, Kind: types.ReexportStar, Line: line})
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "export_clause" {
				names := tsjsExportClauseSymbols(child, content)
				fa.Reexports = append(fa.Reexports, types.ReexportEntry{Source: source, Kind: types.ReexportNamed, Names: names, Line: line})
				for _, n := range names {
					name := n.Name
					if n.Alias != "" {
						name = n.Alias
					}
					fa.Exports = append(fa.Exports, types.ExportSymbol{Name: name, Kind: types.ExportReexport, Form: types.ExportNamed, Line: line})
				}
			}
		}
		return
	}

	isDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default":
			isDefault = true
		case "function_declaration", "generator_function_declaration":
			addTSJSDeclExport(fa, child, content, types.ExportFunction, isDefault, line)
		case "class_declaration":
			addTSJSDeclExport(fa, child, content, types.ExportClass, isDefault, line)
		case "interface_declaration":
			addTSJSDeclExport(fa, child, content, types.ExportType, isDefault, line)
		case "type_alias_declaration":
			addTSJSDeclExport(fa, child, content, types.ExportType, isDefault, line)
		case "enum_declaration":
			addTSJSDeclExport(fa, child, content, types.ExportEnum, isDefault, line)
		case "lexical_declaration", "variable_declaration":
			tsjsLexicalExports(fa, child, content)
		case "export_clause":
			names := tsjsExportClauseSymbols(child, content)
			for _, n := range names {
				name := n.Name
				if n.Alias != "" {
					name = n.Alias
				}
				fa.Exports = append(fa.Exports, types.ExportSymbol{Name: name, Kind: types.ExportDecl, Form: types.ExportNamed, Line: line})
			}
		default:
			if isDefault && (child.Kind() == "identifier" || child.Kind() == "call_expression") {
				fa.Exports = append(fa.Exports, types.ExportSymbol{Name: nodeText(child, content), Kind: types.ExportDecl, Form: types.ExportDefault, Line: line})
			}
		}
	}
}

func addTSJSDeclExport(fa *types.FileAnalysis, node *tree_sitter.Node, content []byte, kind types.ExportKind, isDefault bool, line int) {
	name := ""
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = nodeText(nameNode, content)
	}
	form := types.ExportNamed
	if isDefault {
		form = types.ExportDefault
		if name == "" {
			name = "default"
		}
	}
	if name == "" {
		return
	}
	fa.Exports = append(fa.Exports, types.ExportSymbol{Name: name, Kind: kind, Form: form, Line: line})
}

func tsjsLexicalExports(fa *types.FileAnalysis, node *tree_sitter.Node, content []byte) {
	for j := uint(0); j < node.ChildCount(); j++ {
		declChild := node.Child(j)
		if declChild == nil || declChild.Kind() != "variable_declarator" {
			continue
		}
		nameNode := declChild.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		fa.Exports = append(fa.Exports, types.ExportSymbol{
			Name: nodeText(nameNode, content),
			Kind: types.ExportVar,
			Form: types.ExportNamed,
			Line: int(nameNode.StartPosition().Row) + 1,
		})
	}
}

func tsjsExportClauseSymbols(clause *tree_sitter.Node, content []byte) []types.ImportedSymbol {
	var names []types.ImportedSymbol
	for j := uint(0); j < clause.ChildCount(); j++ {
		spec := clause.Child(j)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		aliasNode := spec.ChildByFieldName("alias")
		if nameNode == nil {
			continue
		}
		sym := types.ImportedSymbol{Name: nodeText(nameNode, content)}
		if aliasNode != nil {
			sym.Alias = nodeText(aliasNode, content)
		}
		names = append(names, sym)
	}
	return names
}

// walkTSJSDynamic records `import("...")` dynamic imports and bare
// `require("...")` calls as DynamicImports, so resolution and dead-export
// analysis can treat them as evidence without conflating them with static
// imports (§4.2, §4.6).
func walkTSJSDynamic(node *tree_sitter.Node, content []byte, fa *types.FileAnalysis) {
	if node == nil {
		return
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil {
			fnText := nodeText(fn, content)
			if fn.Kind() == "import" || fnText == "require" {
				if args := node.ChildByFieldName("arguments"); args != nil {
					for i := uint(0); i < args.ChildCount(); i++ {
						arg := args.Child(i)
						if arg != nil && arg.Kind() == "string" {
							fa.DynamicImports = append(fa.DynamicImports, types.ImportEntry{
								Source: tsStripQuotes(nodeText(arg, content)),
								Kind:   types.ImportStatic,
								Line:   int(node.StartPosition().Row) + 1,
							})
							break
						}
					}
				}
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTSJSDynamic(node.Child(i), content, fa)
	}
}

// Regex overlay for the Tauri JS bridge surface, grounded on the canonical
// invoke/event pattern set: the AST gives no dedicated node for
// `invoke("cmd")` or `listen("evt", cb)`, so these are recovered from the
// raw source text the same way upstream does (§4.2, §4.7, §4.8).
var (
	reSafeInvoke   = regexp.MustCompile(`safeInvoke\s*(?:<[^>]+>)?\(\s*["']([^"']+)["']`)
	reInvokeSnake  = regexp.MustCompile(`invokeSnake\s*(?:<[^>]+>)?\(\s*["']([^"']+)["']`)
	reInvokeAudio  = regexp.MustCompile(`invokeAudio(?:Camel)?\s*(?:<[^>]+>)?\(\s*["']([^"']+)["']`)
	reTauriInvoke  = regexp.MustCompile(`(?:^|[^A-Za-z0-9_.])invoke\s*(?:<[^>]*>)?\(\s*["']([^"']+)["']`)
	reEventEmitJS  = regexp.MustCompile(`(?:emit(?:All|To)?|app\.emit|window\.emit)\s*\(\s*(["'][^"']+["']|[A-Za-z_][A-Za-z0-9_]*)`)
	reEventListenJS = regexp.MustCompile(`(?:listen|once)\s*\(\s*(["'][^"']+["']|[A-Za-z_][A-Za-z0-9_]*)`)
	reEventConstJS = regexp.MustCompile(`(?m)^\s*(?:export\s+)?const\s+([A-Za-z0-9_]+)\s*=\s*["']([^"']+)["']`)
)

// precededByAwait reports whether the nearest preceding non-whitespace word
// before the byte offset pos is the `await` keyword, recording real ordering
// evidence for an emit call site (§4.8 "no intervening await/ordering
// constraint") rather than conflating it with const-name resolution.
func precededByAwait(content string, pos int) bool {
	i := pos
	for i > 0 {
		c := content[i-1]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i--
			continue
		}
		break
	}
	const kw = "await"
	if i < len(kw) || content[i-len(kw):i] != kw {
		return false
	}
	if i-len(kw) > 0 {
		c := content[i-len(kw)-1]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			return false
		}
	}
	return true
}

func lexTSJSInvokeAndEvents(fa *types.FileAnalysis, content string) {
	for _, m := range reEventConstJS.FindAllStringSubmatch(content, -1) {
		fa.EventConsts[m[1]] = m[2]
	}

	addInvoke := func(re *regexp.Regexp) {
		for _, idx := range re.FindAllStringSubmatchIndex(content, -1) {
			name := content[idx[2]:idx[3]]
			line := offsetToLine(content, idx[0])
			fa.CommandCalls = append(fa.CommandCalls, types.CommandRef{Name: name, ExposedName: name, Line: line})
		}
	}
	addInvoke(reSafeInvoke)
	addInvoke(reInvokeSnake)
	addInvoke(reInvokeAudio)
	addInvoke(reTauriInvoke)

	resolveEventName := func(raw string) (string, bool) {
		if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') {
			return raw[1 : len(raw)-1], true
		}
		if v, ok := fa.EventConsts[raw]; ok {
			return v, true
		}
		return raw, false
	}

	for _, m := range reEventEmitJS.FindAllStringSubmatchIndex(content, -1) {
		raw := content[m[2]:m[3]]
		line := offsetToLine(content, m[0])
		name, _ := resolveEventName(raw)
		awaited := precededByAwait(content, m[0])
		fa.EventEmits = append(fa.EventEmits, types.EventRef{RawName: raw, Name: name, Line: line, Kind: types.EventEmit, Awaited: awaited})
	}
	for _, m := range reEventListenJS.FindAllStringSubmatchIndex(content, -1) {
		raw := content[m[2]:m[3]]
		line := offsetToLine(content, m[0])
		name, _ := resolveEventName(raw)
		fa.EventListens = append(fa.EventListens, types.EventRef{RawName: raw, Name: name, Line: line, Kind: types.EventListen})
	}
}
