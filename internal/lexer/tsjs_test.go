package lexer

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func newTSJSLexerForTest(t *testing.T) *TSJSLexer {
	t.Helper()
	l, err := NewTSJSLexer()
	if err != nil {
		t.Fatalf("NewTSJSLexer: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestTSJSLexerImportsAndExports(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
import React from "react";
import { useState, useEffect as useFx } from "react";
import * as utils from "./utils";
import "./styles.css";
import type { Props } from "./types";

export function greet(name: string): string {
  return "hi " + name;
}

export const answer = 42;

export class Widget {}

export { greet as sayHi };
export * from "./other";
`
	fa := l.Lex([]byte(src), "src/app.ts")

	if len(fa.Imports) < 5 {
		t.Fatalf("expected at least 5 imports, got %d: %+v", len(fa.Imports), fa.Imports)
	}

	var sideEffect *types.ImportEntry
	for i := range fa.Imports {
		if fa.Imports[i].Source == "./styles.css" {
			sideEffect = &fa.Imports[i]
		}
	}
	if sideEffect == nil || !sideEffect.IsBare {
		t.Errorf("expected ./styles.css as bare side-effect import, got %+v", fa.Imports)
	}

	names := make(map[string]bool)
	for _, e := range fa.Exports {
		names[e.Name] = true
	}
	if !names["greet"] || !names["answer"] || !names["Widget"] {
		t.Errorf("missing expected exports: %+v", fa.Exports)
	}

	foundStar := false
	for _, r := range fa.Reexports {
		if r.Kind == types.ReexportStar && r.Source == "./other" {
			foundStar = true
		}
	}
	if !foundStar {
		t.Errorf("expected star reexport from ./other, got %+v", fa.Reexports)
	}
}

func TestTSJSLexerDynamicImport(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
async function load() {
  const mod = await import("./lazy");
  return mod;
}
`
	fa := l.Lex([]byte(src), "src/loader.ts")
	if len(fa.DynamicImports) != 1 || fa.DynamicImports[0].Source != "./lazy" {
		t.Fatalf("dynamic import mismatch: %+v", fa.DynamicImports)
	}
}

func TestTSJSLexerSymbolUsagesResolveNamespaceMemberAccess(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
import * as api from "./a";

export function run() {
  return api.doThing();
}
`
	fa := l.Lex([]byte(src), "src/consumer.ts")

	found := false
	for _, u := range fa.SymbolUsages {
		if u == "doThing" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected doThing in SymbolUsages from api.doThing(), got %+v", fa.SymbolUsages)
	}
}

func TestTSJSLexerLocalSymbolsExcludeExports(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
function helper() {
  return 1;
}

export function greet() {
  return helper();
}
`
	fa := l.Lex([]byte(src), "src/app.ts")

	foundLocal := false
	for _, s := range fa.LocalSymbols {
		if s == "helper" {
			foundLocal = true
		}
	}
	if !foundLocal {
		t.Fatalf("expected helper recorded as a local symbol, got %+v", fa.LocalSymbols)
	}
	for _, s := range fa.LocalSymbols {
		if s == "greet" {
			t.Fatalf("expected greet (exported) not recorded as a local symbol, got %+v", fa.LocalSymbols)
		}
	}
}

func TestTSJSLexerStringLiterals(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `const name = "doThing";`
	fa := l.Lex([]byte(src), "src/registry.ts")

	found := false
	for _, s := range fa.StringLiterals {
		if s == "doThing" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected doThing in StringLiterals, got %+v", fa.StringLiterals)
	}
}

func TestTSJSLexerInvokeAndEvents(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
import { invoke } from "@tauri-apps/api/core";
import { listen, emit } from "@tauri-apps/api/event";

const EVT_READY = "app:ready";

export async function doThing() {
  await invoke("do_thing", { x: 1 });
  await emit(EVT_READY, { ok: true });
  await listen("app:tick", () => {});
}
`
	fa := l.Lex([]byte(src), "src/bridge.ts")

	if len(fa.CommandCalls) != 1 || fa.CommandCalls[0].Name != "do_thing" {
		t.Fatalf("invoke call mismatch: %+v", fa.CommandCalls)
	}
	if len(fa.EventEmits) != 1 || fa.EventEmits[0].Name != "app:ready" {
		t.Fatalf("event emit mismatch: %+v", fa.EventEmits)
	}
	if len(fa.EventListens) != 1 || fa.EventListens[0].Name != "app:tick" {
		t.Fatalf("event listen mismatch: %+v", fa.EventListens)
	}
	if !fa.EventEmits[0].Awaited {
		t.Errorf("expected emit preceded by await to be marked Awaited, got %+v", fa.EventEmits[0])
	}
}

func TestTSJSLexerAwaitedReflectsActualAwaitKeyword(t *testing.T) {
	l := newTSJSLexerForTest(t)
	src := `
import { emit } from "@tauri-apps/api/event";

export function fireAndForget() {
  emit("progress", {});
}
`
	fa := l.Lex([]byte(src), "src/bridge.ts")
	if len(fa.EventEmits) != 1 {
		t.Fatalf("expected one emit, got %+v", fa.EventEmits)
	}
	if fa.EventEmits[0].Awaited {
		t.Errorf("expected emit with no preceding await to be Awaited=false, got %+v", fa.EventEmits[0])
	}
}
