// Package ident provides the identifier-collection pass shared by every
// lexer (§4.2 "Shared behaviors expected of every lexer"): a deduplicated
// set of identifiers referenced in a file, used to approximate "used by
// this file" when resolving dead exports (§4.6).
package ident

import (
	"regexp"
	"sort"
)

// identPattern matches a bare identifier token across every supported
// language's lexical syntax (ASCII letters/digits/underscore, not starting
// with a digit).
var identPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)

// stringLiteralPattern matches a quoted string literal across every
// supported language's lexical syntax: double-quoted, single-quoted, or
// backtick/triple-quoted-adjacent forms, escape-aware.
var stringLiteralPattern = regexp.MustCompile("\"(?:[^\"\\\\]|\\\\.)*\"|'(?:[^'\\\\]|\\\\.)*'|`(?:[^`\\\\]|\\\\.)*`")

// CollectStrings returns the deduplicated, sorted set of string literal
// contents in source (§4.2 "string_literals"), used by the command-coverage
// and event-flow analyzers' string-literal confidence downgrades (§4.6
// step 4, §4.7, §4.8). A coarse approximation: quote characters inside
// comments are not excluded, matching Collect's own deliberate imprecision.
func CollectStrings(source []byte) []string {
	seen := make(map[string]bool)
	for _, m := range stringLiteralPattern.FindAll(source, -1) {
		if len(m) < 2 {
			continue
		}
		inner := string(m[1 : len(m)-1])
		if inner == "" {
			continue
		}
		seen[inner] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Collect returns the deduplicated, sorted set of identifier-shaped tokens
// in source. It is a coarse approximation deliberately: identifiers inside
// strings and comments are included, and lexers only subtract their
// language's keywords from it (see Filter).
func Collect(source []byte) []string {
	seen := make(map[string]bool)
	for _, m := range identPattern.FindAll(source, -1) {
		seen[string(m)] = true
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Filter lets a lexer subtract its language's reserved words from a
// raw identifier collection so SymbolUsages only contains real references.
func Filter(ids []string, keywords map[string]bool) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if !keywords[id] {
			out = append(out, id)
		}
	}
	return out
}
