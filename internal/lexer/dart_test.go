package lexer

import "testing"

func TestDartLexerImportsAndExports(t *testing.T) {
	src := `
import 'package:flutter/material.dart';
import './widgets/button.dart';
export 'src/api.dart';
part 'src/state.dart';
// comment import 'ignored.dart';

class MyWidget {}

const pi = 3;
`
	fa := (DartLexer{}).Lex([]byte(src), "lib/main.dart")

	sources := make(map[string]bool)
	for _, imp := range fa.Imports {
		sources[imp.Source] = true
	}
	if !sources["package:flutter/material.dart"] || !sources["./widgets/button.dart"] || !sources["src/state.dart"] {
		t.Fatalf("missing expected imports: %+v", fa.Imports)
	}

	if len(fa.Reexports) != 1 || fa.Reexports[0].Source != "src/api.dart" {
		t.Fatalf("reexport mismatch: %+v", fa.Reexports)
	}

	names := make(map[string]bool)
	for _, e := range fa.Exports {
		names[e.Name] = true
	}
	if !names["MyWidget"] || !names["pi"] {
		t.Errorf("expected MyWidget and pi exported, got %+v", fa.Exports)
	}
}

func TestDartLexerLocalSymbolsCoverPrivateNames(t *testing.T) {
	src := `
class _InternalHelper {}

class PublicWidget {}
`
	fa := (DartLexer{}).Lex([]byte(src), "lib/widget.dart")

	local := make(map[string]bool)
	for _, s := range fa.LocalSymbols {
		local[s] = true
	}
	if !local["_InternalHelper"] {
		t.Errorf("expected library-private _InternalHelper recorded as a local symbol, got %+v", fa.LocalSymbols)
	}
	if local["PublicWidget"] {
		t.Errorf("expected public PublicWidget not recorded as a local symbol, got %+v", fa.LocalSymbols)
	}
}
