// Package deadexport implements the dead-export analyzer (C6, §4.6): for
// every declared ExportSymbol, it decides whether any other file consumes
// it, directly or through a chain of re-exports, and assigns a confidence
// level to the exports that appear unreachable.
package deadexport

import (
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/loctree/loctree-go/pkg/types"
)

// Options configures Analyze from the project's .loctree/config.toml
// (§4.6 "optional library mode flag").
type Options struct {
	// LibraryMode suppresses every finding: the project is a library and
	// every export is a public API by definition.
	LibraryMode bool

	// ExampleGlobs are gitignore-style patterns naming example/demo files
	// whose exports are exempt from dead-export analysis, on top of the
	// built-in heuristics in this package.
	ExampleGlobs []string
}

func exampleMatcher(globs []string) *ignore.GitIgnore {
	if len(globs) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(globs...)
}

// usageIndex maps a referenced name to the set of files that reference it,
// built from every file's SymbolUsages and import-symbol names/aliases
// (§4.6 step 1).
type usageIndex map[string]map[string]bool

func buildUsageIndex(files map[string]*types.FileAnalysis) usageIndex {
	idx := make(usageIndex)
	add := func(name, file string) {
		if name == "" {
			return
		}
		if idx[name] == nil {
			idx[name] = make(map[string]bool)
		}
		idx[name][file] = true
	}
	for path, fa := range files {
		for _, u := range fa.SymbolUsages {
			add(u, path)
		}
		for _, imp := range fa.Imports {
			for _, sym := range imp.Symbols {
				add(sym.Name, path)
				add(sym.Alias, path)
			}
		}
	}
	return idx
}

// importersOf returns the set of files holding a resolved import edge
// targeting target. Reexport edges are not examined here; hasConsumer
// reaches them through reexportChain.
func importersOf(files map[string]*types.FileAnalysis, target string) map[string]bool {
	out := make(map[string]bool)
	for path, fa := range files {
		for _, imp := range fa.Imports {
			if imp.ResolvedPath == target {
				out[path] = true
			}
		}
	}
	return out
}

// reexportChain follows reexport edges outward from source, returning every
// file reachable through a Star reexport, or a Named reexport whose list
// contains symbolName (§4.6 step 2a).
func reexportChain(files map[string]*types.FileAnalysis, source, symbolName string) map[string]bool {
	visited := map[string]bool{source: true}
	queue := []string{source}
	reached := make(map[string]bool)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for path, fa := range files {
			for _, re := range fa.Reexports {
				if re.ResolvedPath != cur {
					continue
				}
				matches := re.Kind == types.ReexportStar
				if re.Kind == types.ReexportNamed {
					for _, n := range re.Names {
						if n.Name == symbolName || n.Alias == symbolName {
							matches = true
							break
						}
					}
				}
				if !matches {
					continue
				}
				reached[path] = true
				if !visited[path] {
					visited[path] = true
					queue = append(queue, path)
				}
			}
		}
	}
	return reached
}

// twinNames collects export names declared by more than one file (§4.9,
// consumed here for the Smell downgrade rule in step 4).
func twinNames(files map[string]*types.FileAnalysis) map[string]bool {
	count := make(map[string]int)
	for _, fa := range files {
		seen := make(map[string]bool)
		for _, e := range fa.Exports {
			if seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			count[e.Name]++
		}
	}
	twins := make(map[string]bool)
	for name, c := range count {
		if c > 1 {
			twins[name] = true
		}
	}
	return twins
}

// stringLiteralIndex maps a string literal's contents to every file that
// contains it verbatim, consumed by the Smell downgrade rule in step 4
// ("appears in a string literal in another file") — dynamic dispatch by
// name (e.g. a lookup table keyed by string) is common enough evidence of
// real use that a flat-out High finding would be overconfident.
func stringLiteralIndex(files map[string]*types.FileAnalysis) map[string]map[string]bool {
	idx := make(map[string]map[string]bool)
	for path, fa := range files {
		for _, s := range fa.StringLiterals {
			if idx[s] == nil {
				idx[s] = make(map[string]bool)
			}
			idx[s][path] = true
		}
	}
	return idx
}

// literalInAnotherFile reports whether name appears as a string literal in
// some file other than path.
func literalInAnotherFile(idx map[string]map[string]bool, name, path string) bool {
	holders := idx[name]
	if len(holders) == 0 {
		return false
	}
	if len(holders) == 1 && holders[path] {
		return false
	}
	return true
}

func dynamicPrefixes(fa *types.FileAnalysis) []string {
	var prefixes []string
	for _, t := range fa.DynamicExecTemplates {
		if t.Prefix != "" {
			prefixes = append(prefixes, t.Prefix)
		}
	}
	return prefixes
}

// hasConsumer reports whether e declared in fa.Path has any consumer,
// directly or via a re-export chain (§4.6 step 2).
func hasConsumer(files map[string]*types.FileAnalysis, idx usageIndex, path string, e types.ExportSymbol) bool {
	candidates := map[string]bool{path: true}
	for reached := range reexportChain(files, path, e.Name) {
		candidates[reached] = true
	}
	for from := range candidates {
		for importer := range importersOf(files, from) {
			if importer == path {
				continue
			}
			if idx[e.Name][importer] {
				return true
			}
		}
	}
	return false
}

// Analyze runs the C6 dead-export algorithm over the resolved graph,
// returning a deterministic, suppression-filtered list (§4.6 steps 1-6).
func Analyze(files map[string]*types.FileAnalysis, suppressions []types.Suppression, opts Options) []types.DeadExport {
	if opts.LibraryMode {
		return nil
	}
	matcher := exampleMatcher(opts.ExampleGlobs)

	idx := buildUsageIndex(files)
	twins := twinNames(files)
	literals := stringLiteralIndex(files)

	var results []types.DeadExport
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if matcher != nil && matcher.MatchesPath(path) {
			continue
		}
		fa := files[path]
		prefixes := dynamicPrefixes(fa)

		for _, e := range fa.Exports {
			if e.IsEntry || e.Kind == types.ExportReexport {
				continue
			}
			if unregisteredCommandHandler(fa, e.Name) {
				d := types.DeadExport{
					Symbol: e.Name, File: path, Line: e.Line, Confidence: types.ConfidenceCertain,
				}
				if !suppressed(d, suppressions) {
					results = append(results, d)
				}
				continue
			}
			if hasConsumer(files, idx, path, e) {
				continue
			}

			confidence := types.ConfidenceHigh
			if matchesAnyPrefix(e.Name, prefixes) || twins[e.Name] || literalInAnotherFile(literals, e.Name, path) {
				confidence = types.ConfidenceSmell
			}

			d := types.DeadExport{Symbol: e.Name, File: path, Line: e.Line, Confidence: confidence}
			if suppressed(d, suppressions) {
				continue
			}
			results = append(results, d)
		}
	}

	applyShadows(files, results)
	sortDeadExports(results)
	return results
}

// unregisteredCommandHandler reports whether fa declares a command handler
// named name that was never matched against a generate_handler! list
// (§4.6 step 4 "Certain").
func unregisteredCommandHandler(fa *types.FileAnalysis, name string) bool {
	for _, h := range fa.CommandHandlers {
		if h.Name == name && !h.Registered {
			return true
		}
	}
	return false
}

func matchesAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func suppressed(d types.DeadExport, suppressions []types.Suppression) bool {
	for _, s := range suppressions {
		if s.Matches(types.SuppressDeadExport, d.Symbol, d.File) {
			return true
		}
	}
	return false
}

// applyShadows marks, among candidates sharing a symbol name, every file
// whose export was found dead as a shadow of a sibling export of the same
// name that DOES have a live file elsewhere (§4.6 "Shadow exports"). Since
// results here only contains exports with no consumer, a name is a shadow
// set exactly when it was also declared (but not flagged dead) in another
// file.
func applyShadows(files map[string]*types.FileAnalysis, results []types.DeadExport) {
	deadByName := make(map[string][]int)
	for i, d := range results {
		deadByName[d.Symbol] = append(deadByName[d.Symbol], i)
	}
	declaredIn := make(map[string][]string)
	for path, fa := range files {
		for _, e := range fa.Exports {
			declaredIn[e.Name] = append(declaredIn[e.Name], path)
		}
	}
	for name, idxs := range deadByName {
		declared := declaredIn[name]
		if len(declared) <= len(idxs) {
			continue // no file with a live declaration of this name
		}
		deadFiles := make(map[string]bool, len(idxs))
		for _, i := range idxs {
			deadFiles[results[i].File] = true
		}
		var liveFile string
		for _, f := range declared {
			if !deadFiles[f] {
				liveFile = f
				break
			}
		}
		if liveFile == "" {
			continue
		}
		for _, i := range idxs {
			results[i].Shadow = true
			results[i].ShadowedBy = liveFile
		}
	}
}

func sortDeadExports(d []types.DeadExport) {
	rank := map[types.Confidence]int{
		types.ConfidenceCertain: 0, types.ConfidenceHigh: 1, types.ConfidenceSmell: 2,
	}
	sort.Slice(d, func(i, j int) bool {
		if rank[d[i].Confidence] != rank[d[j].Confidence] {
			return rank[d[i].Confidence] < rank[d[j].Confidence]
		}
		if d[i].File != d[j].File {
			return d[i].File < d[j].File
		}
		return d[i].Line < d[j].Line
	})
}
