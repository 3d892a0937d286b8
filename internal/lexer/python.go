package lexer

import (
	"regexp"
	"strings"

	"github.com/loctree/loctree-go/internal/lexer/ident"
	"github.com/loctree/loctree-go/pkg/types"
)

var (
	rePyImportLine   = regexp.MustCompile(`(?m)^\s*import\s+([A-Za-z_][\w.]*(?:\s+as\s+[A-Za-z_]\w*)?(?:\s*,\s*[A-Za-z_][\w.]*(?:\s+as\s+[A-Za-z_]\w*)?)*)`)
	rePyFromImport   = regexp.MustCompile(`(?m)^\s*from\s+([.\w]+)\s+import\s+(.+)$`)
	rePyAll          = regexp.MustCompile(`(?s)__all__\s*=\s*\[([^\]]*)\]`)
	rePyDef          = regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)`)
	rePyClass        = regexp.MustCompile(`(?m)^\s*class\s+([A-Za-z_]\w*)`)
	rePyDynImportlib = regexp.MustCompile(`importlib\.import_module\(\s*([^)]+?)\s*(?:,|\))`)
	rePyDynDunder    = regexp.MustCompile(`__import__\(\s*([^)]+?)\s*(?:,|\))`)
	reSysModules     = regexp.MustCompile(`sys\.modules\[['"]([^'"]+)['"]\]\s*=\s*(\w+)`)
	reSysModulesName = regexp.MustCompile(`sys\.modules\[__name__\]\s*=\s*(\w+)`)
	rePyDecoratorLine = regexp.MustCompile(`(?m)^\s*@[\w.]+.*$`)
)

// pythonFrameworkDecorators marks a decorator-line substring (matched
// case-insensitively) as evidence that a framework calls the decorated
// function at runtime, so it is never flagged dead (§4.2 "Python").
var pythonFrameworkDecorators = []string{
	"@pytest.fixture", "@fixture", "@pytest.mark", "@pytest.parametrize",
	".command", "@click.", "@app.command", "@typer.",
	"@app.get", "@app.post", "@app.put", "@app.delete", "@app.patch",
	"@router.get", "@router.post", "@router.put", "@router.delete", "@router.patch",
	"@api_router.",
	"@app.route", "@blueprint.route", ".route(",
	"@celery.task", "@app.task", "@shared_task",
	"@admin.register", "@receiver", "@login_required", "@permission_required",
	"@cron", "@func",
	"@rumps.", ".timer(",
	"@on_event", "@event_handler", "@callback", "@hook", "@register",
}

var pythonRouteDecorators = []struct {
	pattern string
	method  string
}{
	{"@app.get", "GET"}, {"@app.post", "POST"}, {"@app.put", "PUT"}, {"@app.delete", "DELETE"}, {"@app.patch", "PATCH"},
	{"@router.get", "GET"}, {"@router.post", "POST"}, {"@router.put", "PUT"}, {"@router.delete", "DELETE"}, {"@router.patch", "PATCH"},
	{"@api_router.get", "GET"}, {"@api_router.post", "POST"}, {"@api_router.put", "PUT"}, {"@api_router.delete", "DELETE"}, {"@api_router.patch", "PATCH"},
}

var pythonTestContentMarkers = []string{
	"import pytest", "from pytest", "import unittest", "from unittest",
	"@pytest.fixture", "@pytest.mark", "class Test", "def test_",
}

// PythonLexer extracts imports, __all__-or-convention exports, decorator
// framework evidence, and dynamic-codegen escape hatches from Python
// source (§4.2 "Python").
type PythonLexer struct{}

func (PythonLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, types.LangPython)
	fa.LOC = countLines(source)
	content := string(source)

	lexPythonImports(fa, content)
	lexPythonExports(fa, content)
	lexPythonLocalSymbols(fa, content)
	lexPythonDecorators(fa, content)
	lexPythonDynamic(fa, content)

	fa.IsTest = fa.IsTest || containsAny(content, pythonTestContentMarkers)
	fa.SymbolUsages = ident.Filter(ident.Collect(source), pythonKeywords)
	fa.StringLiterals = ident.CollectStrings(source)
	return fa
}

func lexPythonImports(fa *types.FileAnalysis, content string) {
	for _, m := range rePyImportLine.FindAllStringSubmatchIndex(content, -1) {
		line := offsetToLine(content, m[0])
		list := content[m[2]:m[3]]
		for _, part := range strings.Split(list, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			module := part
			var symbols []types.ImportedSymbol
			if idx := strings.Index(part, " as "); idx >= 0 {
				module = strings.TrimSpace(part[:idx])
				alias := strings.TrimSpace(part[idx+len(" as "):])
				symbols = []types.ImportedSymbol{{Name: module, Alias: alias}}
			}
			fa.Imports = append(fa.Imports, types.ImportEntry{
				Source:    module,
				SourceRaw: part,
				Kind:      types.ImportStatic,
				Symbols:   symbols,
				Line:      line,
			})
		}
	}

	for _, m := range rePyFromImport.FindAllStringSubmatchIndex(content, -1) {
		line := offsetToLine(content, m[0])
		module := content[m[2]:m[3]]
		names := content[m[4]:m[5]]
		names = strings.Trim(strings.TrimSpace(names), "()")
		if strings.TrimSpace(names) == "*" {
			fa.Imports = append(fa.Imports, types.ImportEntry{
				Source:    module,
				SourceRaw: module,
				Kind:      types.ImportStatic,
				IsBare:    true,
				Line:      line,
			})
			continue
		}
		var symbols []types.ImportedSymbol
		for _, part := range strings.Split(names, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name := part
			alias := ""
			if idx := strings.Index(part, " as "); idx >= 0 {
				name = strings.TrimSpace(part[:idx])
				alias = strings.TrimSpace(part[idx+len(" as "):])
			}
			symbols = append(symbols, types.ImportedSymbol{Name: name, Alias: alias})
		}
		fa.Imports = append(fa.Imports, types.ImportEntry{
			Source:    module,
			SourceRaw: module,
			Kind:      types.ImportStatic,
			Symbols:   symbols,
			Line:      line,
		})
	}
}

// lexPythonExports follows Python's own visibility convention: an explicit
// __all__ list is authoritative; without one, every top-level def/class not
// prefixed with `_` is implicitly public (§4.2, §4.6 "Python export rule").
func lexPythonExports(fa *types.FileAnalysis, content string) {
	allNames := parsePyAllList(content)
	allSet := make(map[string]bool, len(allNames))
	for _, n := range allNames {
		allSet[n] = true
	}

	addExport := func(name string, line int, kind types.ExportKind) {
		if len(allSet) > 0 {
			if !allSet[name] {
				return
			}
		} else if strings.HasPrefix(name, "_") {
			return
		}
		fa.Exports = append(fa.Exports, types.ExportSymbol{
			Name: name,
			Kind: kind,
			Form: types.ExportNamed,
			Line: line,
		})
	}

	indented := func(m []int) bool {
		pre := content[m[0]:m[2]]
		if i := strings.LastIndexByte(pre, '\n'); i >= 0 {
			pre = pre[i+1:]
		}
		return pre != "" && (pre[0] == ' ' || pre[0] == '\t')
	}
	for _, m := range rePyDef.FindAllStringSubmatchIndex(content, -1) {
		if indented(m) {
			continue
		}
		name := content[m[2]:m[3]]
		addExport(name, offsetToLine(content, m[0]), types.ExportFunction)
	}
	for _, m := range rePyClass.FindAllStringSubmatchIndex(content, -1) {
		if indented(m) {
			continue
		}
		name := content[m[2]:m[3]]
		addExport(name, offsetToLine(content, m[0]), types.ExportClass)
	}

	// Names listed in __all__ that match neither def nor class (re-exported
	// symbols, module-level constants) still count as exports.
	declared := make(map[string]bool)
	for _, e := range fa.Exports {
		declared[e.Name] = true
	}
	for _, n := range allNames {
		if !declared[n] {
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: n, Kind: types.ExportVar, Form: types.ExportNamed,
			})
		}
	}
}

// lexPythonLocalSymbols records every def/class name that lexPythonExports
// did not promote to an export (leading-underscore convention, or excluded
// by an explicit __all__), so where-symbol (§4.12) can resolve Python's
// module-private names the same way it already does for Go.
func lexPythonLocalSymbols(fa *types.FileAnalysis, content string) {
	exported := make(map[string]bool, len(fa.Exports))
	for _, e := range fa.Exports {
		exported[e.Name] = true
	}
	add := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if !exported[m[1]] {
				fa.LocalSymbols = append(fa.LocalSymbols, m[1])
			}
		}
	}
	add(rePyDef)
	add(rePyClass)
}

// parsePyAllList extracts the literal names from an `__all__ = [...]` list,
// stripping inline comments and quoting (§4.2).
func parsePyAllList(content string) []string {
	var names []string
	for _, m := range rePyAll.FindAllStringSubmatch(content, -1) {
		body := m[1]
		for _, line := range strings.Split(body, "\n") {
			cleaned := stripPyLineComment(line)
			cleaned = strings.TrimSpace(cleaned)
			if cleaned == "" || strings.HasPrefix(cleaned, "#") {
				continue
			}
			for _, item := range strings.Split(cleaned, ",") {
				trimmed := strings.TrimSpace(item)
				if idx := strings.Index(trimmed, "#"); idx >= 0 {
					trimmed = trimmed[:idx]
				}
				trimmed = strings.Trim(strings.TrimSpace(trimmed), `'"`)
				trimmed = strings.TrimSpace(trimmed)
				if trimmed != "" {
					names = append(names, trimmed)
				}
			}
		}
	}
	return names
}

func stripPyLineComment(line string) string {
	var out strings.Builder
	inSingle, inDouble := false, false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\\':
			out.WriteRune(c)
			if i+1 < len(runes) {
				i++
				out.WriteRune(runes[i])
			}
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			out.WriteRune(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			out.WriteRune(c)
		case c == '#' && !inSingle && !inDouble:
			return out.String()
		default:
			out.WriteRune(c)
		}
	}
	return out.String()
}

// lexPythonDecorators detects framework decorators (marking the following
// declaration as an entry point so it is excluded from dead-export
// findings) and parses web-route decorators into Routes (§4.2, §4.6).
func lexPythonDecorators(fa *types.FileAnalysis, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(line, "@") {
			continue
		}
		if containsAny(lower, pythonFrameworkDecorators) {
			if name := nextPyDeclName(lines, i); name != "" {
				markEntryPoint(fa, name)
			}
		}
		for _, rd := range pythonRouteDecorators {
			if strings.Contains(lower, rd.pattern) {
				fa.Routes = append(fa.Routes, types.RouteRef{
					Method: rd.method,
					Path:   extractFirstStringLiteral(line),
					Line:   i + 1,
				})
				break
			}
		}
	}
}

func nextPyDeclName(lines []string, decoratorLine int) string {
	for i := decoratorLine + 1; i < len(lines) && i < decoratorLine+5; i++ {
		if m := rePyDef.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
		if m := rePyClass.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
		if rePyDecoratorLine.MatchString(lines[i]) {
			continue
		}
	}
	return ""
}

func markEntryPoint(fa *types.FileAnalysis, name string) {
	for i := range fa.Exports {
		if fa.Exports[i].Name == name {
			fa.Exports[i].IsEntry = true
			fa.Exports[i].EntryKind = "framework_decorator"
			return
		}
	}
	fa.EntryPoints = append(fa.EntryPoints, name)
}

func extractFirstStringLiteral(text string) string {
	var quote rune
	var buf strings.Builder
	inQuote := false
	for _, ch := range text {
		if inQuote {
			if ch == quote {
				return buf.String()
			}
			buf.WriteRune(ch)
			continue
		}
		if ch == '"' || ch == '\'' {
			quote = ch
			inQuote = true
		}
	}
	return ""
}

// lexPythonDynamic records importlib/__import__ dynamic imports, sys.modules
// monkey-patching, and exec/eval/compile template codegen, all of which
// suppress dead-export confidence for the symbols they touch (§4.6).
func lexPythonDynamic(fa *types.FileAnalysis, content string) {
	for _, m := range rePyDynImportlib.FindAllStringSubmatchIndex(content, -1) {
		line := offsetToLine(content, m[0])
		fa.DynamicImports = append(fa.DynamicImports, types.ImportEntry{
			Source: content[m[2]:m[3]], Kind: types.ImportStatic, Resolution: types.ResolutionDynamic, Line: line,
		})
	}
	for _, m := range rePyDynDunder.FindAllStringSubmatchIndex(content, -1) {
		line := offsetToLine(content, m[0])
		fa.DynamicImports = append(fa.DynamicImports, types.ImportEntry{
			Source: content[m[2]:m[3]], Kind: types.ImportStatic, Resolution: types.ResolutionDynamic, Line: line,
		})
	}
	for _, m := range reSysModules.FindAllStringSubmatchIndex(content, -1) {
		fa.SysModulesInjections = append(fa.SysModulesInjections, content[m[2]:m[3]])
	}
	for range reSysModulesName.FindAllStringSubmatchIndex(content, -1) {
		fa.SysModulesInjections = append(fa.SysModulesInjections, "__name__")
	}

	for i, line := range strings.Split(content, "\n") {
		for _, kw := range []string{"exec(", "eval(", "compile("} {
			idx := strings.Index(line, kw)
			if idx < 0 {
				continue
			}
			after := line[idx+len(kw):]
			hasOld := strings.Contains(after, "%s") || strings.Contains(after, "%d") ||
				strings.Contains(after, "%r") || strings.Contains(after, "%(")
			hasNew := strings.Contains(after, "{}") || strings.Contains(after, "{0}") ||
				(strings.Contains(after, "{") && strings.Contains(after, "}"))
			if !hasOld && !hasNew {
				continue
			}
			prefix := extractExecPrefix(after)
			fa.DynamicExecTemplates = append(fa.DynamicExecTemplates, types.DynamicExecTemplate{
				Prefix: prefix,
				Line:   i + 1,
			})
		}
	}
}

// extractExecPrefix pulls the identifier prefix before a format placeholder
// out of a `def foo%s(...)` or `class Foo%s(...)` style exec/eval template.
func extractExecPrefix(after string) string {
	for _, kw := range []string{"def ", "class "} {
		idx := strings.Index(after, kw)
		if idx < 0 {
			continue
		}
		rest := after[idx+len(kw):]
		end := strings.IndexAny(rest, "%{")
		if end < 0 {
			continue
		}
		prefix := strings.TrimSpace(rest[:end])
		if prefix != "" {
			return prefix
		}
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

var pythonKeywords = map[string]bool{
	"if": true, "else": true, "elif": true, "while": true, "for": true, "try": true,
	"except": true, "finally": true, "with": true, "as": true, "def": true, "class": true,
	"return": true, "yield": true, "raise": true, "import": true, "from": true, "pass": true,
	"break": true, "continue": true, "lambda": true, "and": true, "or": true, "not": true,
	"in": true, "is": true, "True": true, "False": true, "None": true, "assert": true,
	"del": true, "global": true, "nonlocal": true, "async": true, "await": true, "self": true, "cls": true,
}
