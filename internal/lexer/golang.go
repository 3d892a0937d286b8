package lexer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/loctree/loctree-go/internal/lexer/ident"
	"github.com/loctree/loctree-go/pkg/types"
)

// GoLexer extracts imports and exported declarations from a Go source file
// using the standard library parser rather than a regex pass, since an AST
// is already free for this one language (§4.2 "Go").
type GoLexer struct{}

func (GoLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, types.LangGo)
	fa.LOC = countLines(source)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, relPath, source, parser.ParseComments)
	if err != nil {
		// Malformed input still yields a best-effort identifier scan; a
		// lexer must never fail (§4.2 "Shared behaviors").
		fa.SymbolUsages = ident.Collect(source)
		fa.StringLiterals = ident.CollectStrings(source)
		return fa
	}

	for _, imp := range file.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		line := fset.Position(imp.Pos()).Line
		fa.Imports = append(fa.Imports, types.ImportEntry{
			Source:     path,
			SourceRaw:  imp.Path.Value,
			Kind:       types.ImportStatic,
			IsBare:     alias == "_",
			Symbols:    []types.ImportedSymbol{{Name: path, Alias: alias}},
			Line:       line,
		})
	}

	hasMain := false
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil {
				continue // method, not a package-level export
			}
			line := fset.Position(d.Pos()).Line
			if d.Name.Name == "main" && file.Name.Name == "main" {
				hasMain = true
				fa.EntryPoints = append(fa.EntryPoints, "main")
			}
			if !d.Name.IsExported() {
				fa.LocalSymbols = append(fa.LocalSymbols, d.Name.Name)
				continue
			}
			isEntry := strings.HasPrefix(d.Name.Name, "Test") || strings.HasPrefix(d.Name.Name, "Benchmark") || strings.HasPrefix(d.Name.Name, "Example")
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: d.Name.Name, Kind: types.ExportFunction, Form: types.ExportNamed,
				Line: line, IsEntry: isEntry, EntryKind: goEntryKind(isEntry),
			})
		case *ast.GenDecl:
			lexGoGenDecl(fa, fset, d)
		}
	}
	if hasMain {
		fa.Kind = types.KindCode
	}

	fa.SymbolUsages = ident.Filter(ident.Collect(source), goKeywords)
	fa.StringLiterals = ident.CollectStrings(source)
	return fa
}

func goEntryKind(isEntry bool) string {
	if isEntry {
		return "go_test"
	}
	return ""
}

func lexGoGenDecl(fa *types.FileAnalysis, fset *token.FileSet, d *ast.GenDecl) {
	var kind types.ExportKind
	switch d.Tok {
	case token.CONST:
		kind = types.ExportConst
	case token.VAR:
		kind = types.ExportVar
	case token.TYPE:
		kind = types.ExportType
	default:
		return
	}

	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.ValueSpec:
			for _, name := range s.Names {
				if name.Name == "_" {
					continue
				}
				line := fset.Position(name.Pos()).Line
				if !name.IsExported() {
					fa.LocalSymbols = append(fa.LocalSymbols, name.Name)
					continue
				}
				fa.Exports = append(fa.Exports, types.ExportSymbol{
					Name: name.Name, Kind: kind, Form: types.ExportNamed, Line: line,
				})
			}
		case *ast.TypeSpec:
			line := fset.Position(s.Pos()).Line
			tkind := types.ExportType
			if _, isStruct := s.Type.(*ast.StructType); isStruct {
				tkind = types.ExportClass
			}
			if _, isIface := s.Type.(*ast.InterfaceType); isIface {
				tkind = types.ExportType
			}
			if !s.Name.IsExported() {
				fa.LocalSymbols = append(fa.LocalSymbols, s.Name.Name)
				continue
			}
			fa.Exports = append(fa.Exports, types.ExportSymbol{
				Name: s.Name.Name, Kind: tkind, Form: types.ExportNamed, Line: line,
			})
		}
	}
}

var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}
