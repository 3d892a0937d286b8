// Package events implements the event-flow analyzer (C8, §4.8):
// correlating emit and listen sites recorded by the TS/JS and Rust lexers.
package events

import (
	"sort"

	"github.com/loctree/loctree-go/pkg/types"
)

// Analyze finds ghost emits, orphan listeners, and same-event emit races
// across every file's EventEmits/EventListens (§4.8).
func Analyze(files map[string]*types.FileAnalysis) []types.EventFinding {
	emitSites := make(map[string][]types.Location)
	listenSites := make(map[string][]types.Location)
	stringLiteralNames := make(map[string]bool)
	allAwaited := make(map[string]bool)
	seenEmit := make(map[string]bool)

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fa := files[path]
		for _, e := range fa.EventEmits {
			name := e.Name
			if name == "" {
				name = e.RawName
			}
			emitSites[name] = append(emitSites[name], types.Location{File: path, Line: e.Line})
			if !seenEmit[name] {
				seenEmit[name] = true
				allAwaited[name] = e.Awaited
			} else {
				allAwaited[name] = allAwaited[name] && e.Awaited
			}
		}
		for _, l := range fa.EventListens {
			name := l.Name
			if name == "" {
				name = l.RawName
			}
			listenSites[name] = append(listenSites[name], types.Location{File: path, Line: l.Line})
		}
		for _, lit := range fa.StringLiterals {
			stringLiteralNames[lit] = true
		}
	}

	names := make(map[string]bool)
	for n := range emitSites {
		names[n] = true
	}
	for n := range listenSites {
		names[n] = true
	}

	var findings []types.EventFinding
	for name := range names {
		if name == "" {
			continue
		}
		emits := emitSites[name]
		listens := listenSites[name]

		if len(listens) == 0 && len(emits) > 0 {
			confidence := types.ConfidenceHigh
			if stringLiteralNames[name] {
				confidence = types.ConfidenceSmell
			}
			findings = append(findings, types.EventFinding{
				Name: name, Kind: types.EventGhostEmit, Confidence: confidence, Sites: emits,
			})
		}
		if len(emits) == 0 && len(listens) > 0 {
			findings = append(findings, types.EventFinding{
				Name: name, Kind: types.EventOrphanListener, Confidence: types.ConfidenceHigh, Sites: listens,
			})
		}
		if len(emits) > 1 && !allAwaited[name] {
			findings = append(findings, types.EventFinding{
				Name: name, Kind: types.EventRace, Confidence: types.ConfidenceSmell, Sites: emits,
			})
		}
	}

	sortFindings(findings)
	return findings
}

func sortFindings(f []types.EventFinding) {
	rank := map[types.EventIssueKind]int{
		types.EventGhostEmit: 0, types.EventOrphanListener: 1, types.EventRace: 2,
	}
	sort.Slice(f, func(i, j int) bool {
		if rank[f[i].Kind] != rank[f[j].Kind] {
			return rank[f[i].Kind] < rank[f[j].Kind]
		}
		return f[i].Name < f[j].Name
	})
}
