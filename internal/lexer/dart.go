package lexer

import (
	"strings"

	"github.com/loctree/loctree-go/internal/lexer/ident"
	"github.com/loctree/loctree-go/pkg/types"
)

// DartLexer extracts imports, part directives, export re-exports, and
// top-level declarations from a Dart source file by scanning whole lines
// rather than building an AST (§4.2 "Dart").
type DartLexer struct{}

func (DartLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, types.LangDart)
	fa.LOC = countLines(source)
	content := string(source)
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "part ") {
			if src, ok := dartStringLiteral(trimmed); ok {
				fa.Imports = append(fa.Imports, types.ImportEntry{
					Source: src, SourceRaw: src, Kind: types.ImportStatic, Line: i + 1,
				})
			}
			continue
		}

		if strings.HasPrefix(trimmed, "export ") {
			if src, ok := dartStringLiteral(trimmed); ok {
				fa.Reexports = append(fa.Reexports, types.ReexportEntry{
					Source: src, Kind: types.ReexportStar, Line: i + 1,
				})
			}
			continue
		}
	}

	fa.Exports = dartParseExports(lines)
	for _, e := range fa.Exports {
		if strings.HasPrefix(e.Name, "_") {
			fa.LocalSymbols = append(fa.LocalSymbols, e.Name)
		}
	}
	fa.SymbolUsages = dartCollectLocalUses(content)
	fa.StringLiterals = ident.CollectStrings(source)
	return fa
}

func dartStringLiteral(line string) (string, bool) {
	var quote byte
	var start int = -1
	for i := 0; i < len(line); i++ {
		if line[i] == '\'' || line[i] == '"' {
			quote = line[i]
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], quote)
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

func dartIsIdent(token string) bool {
	if token == "" {
		return false
	}
	first := token[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z' || first == '_') {
		return false
	}
	for i := 1; i < len(token); i++ {
		c := token[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

func dartIsTopLevel(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

func dartNamedAfterKeyword(trimmed, keyword string) (string, bool) {
	rest := strings.TrimPrefix(trimmed, keyword)
	if rest == trimmed {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

func dartConstLikeName(trimmed string) (string, bool) {
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return "", false
	}
	eqIdx := len(tokens) - 1
	for i, t := range tokens {
		if t == "=" || strings.HasSuffix(t, "=") {
			eqIdx = i
			break
		}
	}
	if eqIdx == 0 {
		return "", false
	}
	candidate := strings.TrimRight(tokens[eqIdx-1], ";,")
	if dartIsIdent(candidate) {
		return candidate, true
	}
	return "", false
}

func dartParseFunctionName(line string) (string, bool) {
	if !dartIsTopLevel(line) {
		return "", false
	}
	if !strings.Contains(line, "(") {
		return "", false
	}
	trimmed := strings.TrimLeft(line, " \t")
	for _, starter := range []string{"if ", "for ", "while ", "switch ", "class "} {
		if strings.HasPrefix(trimmed, starter) {
			return "", false
		}
	}
	beforeParen := strings.TrimRight(strings.SplitN(trimmed, "(", 2)[0], " \t")
	tokens := strings.Fields(beforeParen)
	if len(tokens) == 0 {
		return "", false
	}
	name := strings.TrimSuffix(tokens[len(tokens)-1], ":")
	if dartIsIdent(name) {
		return name, true
	}
	return "", false
}

func dartParseExports(lines []string) []types.ExportSymbol {
	var exports []types.ExportSymbol
	for idx, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		if name, ok := dartNamedAfterKeyword(trimmed, "class "); ok && dartIsIdent(name) {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportClass, Form: types.ExportNamed, Line: idx + 1})
			continue
		}
		if name, ok := dartNamedAfterKeyword(trimmed, "enum "); ok && dartIsIdent(name) {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportEnum, Form: types.ExportNamed, Line: idx + 1})
			continue
		}
		if name, ok := dartNamedAfterKeyword(trimmed, "mixin "); ok && dartIsIdent(name) {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportDecl, Form: types.ExportNamed, Line: idx + 1})
			continue
		}
		if name, ok := dartNamedAfterKeyword(trimmed, "typedef "); ok && dartIsIdent(name) {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportType, Form: types.ExportNamed, Line: idx + 1})
			continue
		}
		if name, ok := dartNamedAfterKeyword(trimmed, "extension "); ok && dartIsIdent(name) {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportDecl, Form: types.ExportNamed, Line: idx + 1})
			continue
		}
		if dartIsTopLevel(line) && strings.HasPrefix(trimmed, "const ") {
			if name, ok := dartConstLikeName(trimmed); ok {
				exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportConst, Form: types.ExportNamed, Line: idx + 1})
			}
			continue
		}
		if dartIsTopLevel(line) && strings.HasPrefix(trimmed, "final ") {
			if name, ok := dartConstLikeName(trimmed); ok {
				exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportVar, Form: types.ExportNamed, Line: idx + 1})
			}
			continue
		}
		if name, ok := dartParseFunctionName(line); ok {
			exports = append(exports, types.ExportSymbol{Name: name, Kind: types.ExportFunction, Form: types.ExportNamed, Line: idx + 1})
		}
	}
	return exports
}

var dartKeywords = map[string]bool{
	"abstract": true, "as": true, "assert": true, "async": true, "await": true, "break": true,
	"case": true, "catch": true, "class": true, "const": true, "continue": true, "covariant": true,
	"default": true, "deferred": true, "do": true, "dynamic": true, "else": true, "enum": true,
	"export": true, "extends": true, "extension": true, "external": true, "factory": true,
	"false": true, "final": true, "finally": true, "for": true, "Function": true, "get": true,
	"hide": true, "if": true, "implements": true, "import": true, "in": true, "interface": true,
	"is": true, "late": true, "library": true, "mixin": true, "new": true, "null": true, "on": true,
	"operator": true, "part": true, "rethrow": true, "return": true, "set": true, "show": true,
	"static": true, "super": true, "switch": true, "sync": true, "this": true, "throw": true,
	"true": true, "try": true, "typedef": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true,
}

func dartCollectLocalUses(content string) []string {
	return ident.Filter(ident.Collect([]byte(content)), dartKeywords)
}
