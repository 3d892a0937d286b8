package lexer

import (
	"regexp"
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

// reCSSImport matches `@import "x.css";`, `@import url("x.css");`, and the
// unquoted `@import url(x.css);` form (§4.2 "CSS").
var reCSSImport = regexp.MustCompile(`(?m)@import\s+(?:url\()?['"]?([^"'()\s;]+)['"]?\)?`)

// CSSLexer extracts @import targets from a stylesheet. CSS has no export
// surface, so this lexer only populates Imports.
type CSSLexer struct{}

func (CSSLexer) Lex(source []byte, relPath string) *types.FileAnalysis {
	fa := types.NewFileAnalysis(relPath, types.LangCSS)
	fa.LOC = countLines(source)
	content := string(source)

	for _, m := range reCSSImport.FindAllStringSubmatchIndex(content, -1) {
		target := content[m[2]:m[3]]
		line := offsetToLine(content, m[0])
		kind := types.ImportStatic
		fa.Imports = append(fa.Imports, types.ImportEntry{
			Source:    strings.TrimSuffix(target, ";"),
			SourceRaw: target,
			Kind:      kind,
			IsBare:    true,
			Line:      line,
		})
	}
	return fa
}
