// Package lexer implements the per-language lexical analyzers of C2 (§4.2):
// a single Lexer capability dispatched by file extension, per REDESIGN
// FLAGS §9. Every lexer is total — it never fails on malformed input, and
// instead returns whatever evidence it could recover.
package lexer

import (
	"path/filepath"
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

// Lexer extracts structured facts from one source file. Implementations
// must never panic and must always return a non-nil *FileAnalysis whose
// Path equals relPath (§8 quantified invariant).
type Lexer interface {
	Lex(source []byte, relPath string) *types.FileAnalysis
}

// Registry holds one Lexer per language, shared across a scan so that
// stateful lexers (e.g. pooled tree-sitter parsers) are created once per
// scan and threaded explicitly, per REDESIGN FLAGS §9.
type Registry struct {
	tsjs   *TSJSLexer
	rust   *RustLexer
	python *PythonLexer
	golang *GoLexer
	dart   *DartLexer
	css    *CSSLexer
}

// NewRegistry builds a Registry with one instance of every lexer. The
// tree-sitter-backed TS/JS lexer is created eagerly; callers that tear down
// a scan must call Close.
func NewRegistry() (*Registry, error) {
	tsjs, err := NewTSJSLexer()
	if err != nil {
		return nil, err
	}
	return &Registry{
		tsjs:   tsjs,
		rust:   &RustLexer{},
		python: &PythonLexer{},
		golang: &GoLexer{},
		dart:   &DartLexer{},
		css:    &CSSLexer{},
	}, nil
}

// Close releases resources held by stateful lexers (tree-sitter parsers).
func (r *Registry) Close() {
	if r.tsjs != nil {
		r.tsjs.Close()
	}
}

// For returns the Lexer to use for relPath's extension, or nil if the
// extension is not recognized.
func (r *Registry) For(relPath string) Lexer {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(relPath), "."))
	switch ext {
	case "ts", "tsx", "mts", "cts", "js", "jsx", "mjs", "cjs", "vue", "svelte":
		return r.tsjs
	case "rs":
		return r.rust
	case "py":
		return r.python
	case "go":
		return r.golang
	case "dart":
		return r.dart
	case "css":
		return r.css
	default:
		return nil
	}
}

// Lex dispatches relPath to the matching lexer and lexes content. Returns
// nil if the extension is unrecognized (the caller should skip the file).
func (r *Registry) Lex(content []byte, relPath string) *types.FileAnalysis {
	l := r.For(relPath)
	if l == nil {
		return nil
	}
	return l.Lex(content, relPath)
}

// countLines is the shared LOC counter used by every lexer.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}
