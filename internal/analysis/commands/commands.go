// Package commands implements the command-coverage analyzer (C7, §4.7):
// correlating frontend invoke() call sites against backend Tauri command
// handlers by exposed name.
package commands

import (
	"sort"
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

// registeredMatchPrefix is how the Rust lexer records a generate_handler!
// entry in FileAnalysis.Matches, since registration commonly lives in a
// different file (main.rs/lib.rs) than the handler it names.
const registeredMatchPrefix = "generate_handler:"

// ResolveRegistrations scans every file's recorded generate_handler!
// evidence and sets CommandRef.Registered on every matching handler across
// the whole file set. Call this once per scan before Analyze so that a
// handler defined in one file can be marked registered by a
// generate_handler! block living in another (§4.7).
func ResolveRegistrations(files map[string]*types.FileAnalysis) {
	registered := make(map[string]bool)
	for _, fa := range files {
		for _, m := range fa.Matches {
			if name, ok := strings.CutPrefix(m, registeredMatchPrefix); ok {
				if i := strings.LastIndex(name, "::"); i >= 0 {
					name = name[i+2:]
				}
				registered[name] = true
			}
		}
	}
	for _, fa := range files {
		for i := range fa.CommandHandlers {
			h := &fa.CommandHandlers[i]
			name := h.ExposedName
			if name == "" {
				name = h.Name
			}
			if registered[h.Name] || registered[name] {
				h.Registered = true
				markCommandHandlerExport(fa, h.Name)
			}
		}
	}
}

// markCommandHandlerExport flags the export declaring a registered command
// handler as an entry point, so the dead-export analyzer exempts it (§4.6
// step 3): a handler invoked only from the frontend has no Go-graph
// importer and would otherwise be indistinguishable from a genuinely
// unused export.
func markCommandHandlerExport(fa *types.FileAnalysis, name string) {
	for i := range fa.Exports {
		if fa.Exports[i].Name == name {
			fa.Exports[i].IsEntry = true
			fa.Exports[i].EntryKind = "tauri_command"
		}
	}
}

// Analyze correlates every command_call against command_handlers across
// all files, classifying each distinct exposed name (§4.7 matching rules).
// Call ResolveRegistrations first so Registered reflects cross-file
// generate_handler! evidence. invalidNames excludes known-not-real command
// names (e.g. third-party plugin commands misdetected as Tauri commands)
// from the finding set.
func Analyze(files map[string]*types.FileAnalysis, invalidNames []string) []types.CommandFinding {
	invalid := make(map[string]bool, len(invalidNames))
	for _, n := range invalidNames {
		invalid[n] = true
	}

	callSites := make(map[string][]types.Location)
	handlerSites := make(map[string][]types.Location)
	registered := make(map[string]bool)
	stringLiteralNames := make(map[string]bool)

	for path, fa := range files {
		for _, c := range fa.CommandCalls {
			callSites[c.Name] = append(callSites[c.Name], types.Location{File: path, Line: c.Line})
		}
		for _, h := range fa.CommandHandlers {
			name := h.ExposedName
			if name == "" {
				name = h.Name
			}
			handlerSites[name] = append(handlerSites[name], types.Location{File: path, Line: h.Line})
			if h.Registered {
				registered[name] = true
			}
		}
		for _, lit := range fa.StringLiterals {
			stringLiteralNames[lit] = true
		}
	}

	names := make(map[string]bool)
	for n := range callSites {
		names[n] = true
	}
	for n := range handlerSites {
		names[n] = true
	}

	var findings []types.CommandFinding
	for name := range names {
		if invalid[name] {
			continue
		}
		calls := callSites[name]
		handlers := handlerSites[name]

		switch {
		case len(handlers) == 0:
			findings = append(findings, types.CommandFinding{
				Name: name, Status: types.CommandMissingHandler, Confidence: types.ConfidenceCertain,
				CallSites: calls, Handlers: handlers,
			})
		case len(calls) == 0:
			confidence := types.ConfidenceHigh
			if stringLiteralNames[name] {
				confidence = types.ConfidenceSmell
			}
			findings = append(findings, types.CommandFinding{
				Name: name, Status: types.CommandUnusedHandler, Confidence: confidence,
				CallSites: calls, Handlers: handlers,
			})
		case !registered[name]:
			findings = append(findings, types.CommandFinding{
				Name: name, Status: types.CommandUnregisteredHandler, Confidence: types.ConfidenceCertain,
				CallSites: calls, Handlers: handlers,
			})
		default:
			findings = append(findings, types.CommandFinding{
				Name: name, Status: types.CommandOK, Confidence: types.ConfidenceCertain,
				CallSites: calls, Handlers: handlers,
			})
		}
	}

	sortFindings(findings)
	return findings
}

func sortFindings(f []types.CommandFinding) {
	rank := map[types.CommandStatus]int{
		types.CommandMissingHandler: 0, types.CommandUnregisteredHandler: 1,
		types.CommandUnusedHandler: 2, types.CommandOK: 3,
	}
	sort.Slice(f, func(i, j int) bool {
		if rank[f[i].Status] != rank[f[j].Status] {
			return rank[f[i].Status] < rank[f[j].Status]
		}
		return f[i].Name < f[j].Name
	})
}
