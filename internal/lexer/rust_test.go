package lexer

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestRustLexerImportsAndReexports(t *testing.T) {
	src := `
use crate::foo::Bar;
pub use crate::foo::{Bar as Baz, Quux};
pub use crate::module::*;
pub use crate::thing::Widget as Gadget;
`
	fa := (RustLexer{}).Lex([]byte(src), "src/lib.rs")

	if len(fa.Imports) != 1 || fa.Imports[0].Source != "crate::foo::Bar" {
		t.Fatalf("unexpected imports: %+v", fa.Imports)
	}

	if len(fa.Reexports) != 3 {
		t.Fatalf("expected 3 reexports, got %d: %+v", len(fa.Reexports), fa.Reexports)
	}

	braced := fa.Reexports[0]
	if braced.Kind != types.ReexportNamed || len(braced.Names) != 2 {
		t.Fatalf("braced reexport mismatch: %+v", braced)
	}
	if braced.Names[0].Name != "Baz" || braced.Names[1].Name != "Quux" {
		t.Fatalf("braced reexport names mismatch: %+v", braced.Names)
	}

	star := fa.Reexports[1]
	if star.Kind != types.ReexportStar || star.Source != "crate::module" {
		t.Fatalf("star reexport mismatch: %+v", star)
	}

	single := fa.Reexports[2]
	if single.Kind != types.ReexportNamed || len(single.Names) != 1 || single.Names[0].Name != "Gadget" {
		t.Fatalf("single reexport mismatch: %+v", single)
	}
}

func TestRustLexerPubDecls(t *testing.T) {
	src := `
pub struct MyStruct {
    pub field: u32,
}

pub enum MyEnum { A, B }

pub const ANSWER: u32 = 42;

pub type Alias = u64;

pub fn do_work() -> bool {
    true
}
`
	fa := (RustLexer{}).Lex([]byte(src), "src/lib.rs")

	want := map[string]types.ExportKind{
		"MyStruct": types.ExportDecl,
		"MyEnum":   types.ExportEnum,
		"ANSWER":   types.ExportConst,
		"Alias":    types.ExportType,
		"do_work":  types.ExportFunction,
	}
	got := make(map[string]types.ExportKind)
	for _, e := range fa.Exports {
		got[e.Name] = e.Kind
	}
	for name, kind := range want {
		if got[name] != kind {
			t.Errorf("export %s: got kind %v, want %v", name, got[name], kind)
		}
	}
}

func TestRustLexerLocalSymbolsExcludePub(t *testing.T) {
	src := `
fn helper() -> u32 { 1 }

struct Internal { x: u32 }

pub fn do_work() -> bool { true }
`
	fa := (RustLexer{}).Lex([]byte(src), "src/lib.rs")

	local := make(map[string]bool)
	for _, s := range fa.LocalSymbols {
		local[s] = true
	}
	if !local["helper"] || !local["Internal"] {
		t.Errorf("expected helper and Internal recorded as local symbols, got %+v", fa.LocalSymbols)
	}
	if local["do_work"] {
		t.Errorf("expected pub fn do_work not recorded as a local symbol, got %+v", fa.LocalSymbols)
	}
}

func TestRustLexerTauriCommandRename(t *testing.T) {
	src := `
#[tauri::command(rename = "exposed_cmd")]
pub fn real_name(x: u32) -> u32 { x }

#[tauri::command(rename_all = "camelCase")]
pub fn snake_case_func() {}

#[tauri::command]
pub async fn plain_command() {}
`
	fa := (RustLexer{}).Lex([]byte(src), "src-tauri/src/commands.rs")

	if len(fa.CommandHandlers) != 3 {
		t.Fatalf("expected 3 command handlers, got %d: %+v", len(fa.CommandHandlers), fa.CommandHandlers)
	}

	byName := make(map[string]types.CommandRef)
	for _, c := range fa.CommandHandlers {
		byName[c.Name] = c
	}

	if byName["real_name"].ExposedName != "exposed_cmd" {
		t.Errorf("rename mismatch: %+v", byName["real_name"])
	}
	if byName["snake_case_func"].ExposedName != "snakeCaseFunc" {
		t.Errorf("rename_all camelCase mismatch: %+v", byName["snake_case_func"])
	}
	if byName["plain_command"].ExposedName != "plain_command" {
		t.Errorf("plain command mismatch: %+v", byName["plain_command"])
	}
}

func TestRustLexerPluginNamespacing(t *testing.T) {
	src := `
#![plugin(identifier = "my-plugin")]

#[tauri::command]
pub fn do_thing() {}

#[tauri::command(root = "crate")]
pub fn internal_only() {}
`
	fa := (RustLexer{}).Lex([]byte(src), "plugins/my-plugin/src/commands.rs")

	byName := make(map[string]types.CommandRef)
	for _, c := range fa.CommandHandlers {
		byName[c.Name] = c
	}

	doThing := byName["do_thing"]
	if !doThing.IsPlugin || doThing.ExposedName != "plugin:my_plugin|do_thing" {
		t.Errorf("plugin-namespaced command mismatch: %+v", doThing)
	}

	internalOnly := byName["internal_only"]
	if internalOnly.IsPlugin || internalOnly.ExposedName != "internal_only" {
		t.Errorf("root=crate opt-out mismatch: %+v", internalOnly)
	}
}
