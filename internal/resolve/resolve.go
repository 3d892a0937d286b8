// Package resolve implements the module resolver (C3, §4.3): turning an
// import specifier recorded by a lexer into a project-relative file path,
// or one of the terminal ResolutionKind values when no file can be named.
package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

// tsCandidateExts are the extensions tried, in order, when resolving a
// relative TS/JS specifier that has none of its own (§4.3 "TS/JS").
var tsCandidateExts = []string{"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".vue", ".svelte"}

// Resolver turns import specifiers into project-relative paths against a
// fixed set of files discovered by C1. It holds no mutable scan state
// beyond that set, so one Resolver serves an entire scan.
type Resolver struct {
	known    map[string]bool // discovered relative POSIX paths
	tsconfig *types.TSConfigSummary
	pyRoots  []string // relative dirs treated as Python import roots
}

// New builds a Resolver over the given discovered file set. tsconfig may be
// nil when no tsconfig.json was found; pyRoots is the ordered list of
// directories (relative to the project root) searched for absolute Python
// imports.
func New(knownFiles []string, tsconfig *types.TSConfigSummary, pyRoots []string) *Resolver {
	known := make(map[string]bool, len(knownFiles))
	for _, f := range knownFiles {
		known[path.Clean(toSlash(f))] = true
	}
	return &Resolver{known: known, tsconfig: tsconfig, pyRoots: pyRoots}
}

func toSlash(p string) string { return strings.ReplaceAll(p, `\`, "/") }

func (r *Resolver) exists(p string) bool { return r.known[path.Clean(p)] }

// Resolve fills in ResolvedPath/Resolution on every ImportEntry of fa,
// dispatching by fa.Language (§4.3). Re-exports and dynamic imports are
// resolved for TS/JS files only; for other languages they are left as the
// lexer recorded them.
func (r *Resolver) Resolve(fa *types.FileAnalysis) {
	switch fa.Language {
	case types.LangTS, types.LangJS:
		r.resolveTSJSImports(fa)
	case types.LangPython:
		r.resolvePythonImports(fa)
	default:
		// Rust, Go, Dart, CSS: recorded as-written, no resolution attempted
		// (§4.3 "Rust" / "Go, Dart, CSS").
		for i := range fa.Imports {
			fa.Imports[i].Resolution = types.ResolutionUnknown
		}
	}
}

func (r *Resolver) resolveTSJSImports(fa *types.FileAnalysis) {
	dir := path.Dir(fa.Path)
	for i := range fa.Imports {
		r.resolveOneTSJS(dir, &fa.Imports[i].Source, &fa.Imports[i].ResolvedPath, &fa.Imports[i].Resolution)
	}
	for i := range fa.Reexports {
		var kind types.ResolutionKind
		resolved := r.resolveOneTSJS(dir, &fa.Reexports[i].Source, &fa.Reexports[i].ResolvedPath, &kind)
		fa.Reexports[i].Resolved = resolved == types.ResolutionLocal
	}
	for i := range fa.DynamicImports {
		var kind types.ResolutionKind
		r.resolveOneTSJS(dir, &fa.DynamicImports[i].Source, &fa.DynamicImports[i].ResolvedPath, &kind)
		fa.DynamicImports[i].Resolution = types.ResolutionDynamic
	}
}

// resolveOneTSJS resolves a single specifier relative to dir, writing the
// result into resolvedPath/kind and returning kind for convenience.
func (r *Resolver) resolveOneTSJS(dir string, specifier, resolvedPath *string, kind *types.ResolutionKind) types.ResolutionKind {
	spec := *specifier
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		if p, ok := r.resolveTSJSRelative(dir, spec); ok {
			*resolvedPath = p
			*kind = types.ResolutionLocal
			return *kind
		}
		*kind = types.ResolutionUnknown
		return *kind
	}
	if r.tsconfig != nil {
		if p, ok := r.resolveTSJSAlias(spec); ok {
			*resolvedPath = p
			*kind = types.ResolutionLocal
			return *kind
		}
	}
	*kind = types.ResolutionUnknown
	return *kind
}

func (r *Resolver) resolveTSJSRelative(dir, spec string) (string, bool) {
	base := path.Clean(path.Join(dir, spec))
	return r.tryTSJSCandidates(base)
}

// resolveTSJSAlias applies the tsconfig `paths` map (§4.3 "path mapping"):
// aliases are tried in sorted key order, the first alias whose prefix (with
// its trailing "*" stripped) matches spec and whose mapped target names a
// known file wins, and the remainder is substituted into the mapped target.
func (r *Resolver) resolveTSJSAlias(spec string) (string, bool) {
	aliases := make([]string, 0, len(r.tsconfig.Paths))
	for alias := range r.tsconfig.Paths {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		targets := r.tsconfig.Paths[alias]
		aliasPrefix := strings.TrimSuffix(alias, "*")
		if !strings.HasPrefix(spec, aliasPrefix) {
			continue
		}
		rest := strings.TrimPrefix(spec, aliasPrefix)
		for _, target := range targets {
			targetBase := strings.TrimSuffix(target, "*")
			candidate := path.Clean(path.Join(r.tsconfig.BaseURL, targetBase+rest))
			if p, ok := r.tryTSJSCandidates(candidate); ok {
				return p, true
			}
		}
	}
	return "", false
}

func (r *Resolver) tryTSJSCandidates(base string) (string, bool) {
	for _, ext := range tsCandidateExts {
		if r.exists(base + ext) {
			return base + ext, true
		}
	}
	for _, ext := range tsCandidateExts[1:] {
		indexPath := path.Join(base, "index"+ext)
		if r.exists(indexPath) {
			return indexPath, true
		}
	}
	return "", false
}

func (r *Resolver) resolvePythonImports(fa *types.FileAnalysis) {
	for i := range fa.Imports {
		r.resolveOnePython(fa.Path, &fa.Imports[i])
	}
}

// resolveOnePython resolves one Python ImportEntry in place (§4.3
// "Python"): relative (leading-dot) specifiers walk up from the owning
// file; absolute specifiers are tried against every configured root, then
// the standard-library set, else Unknown.
func (r *Resolver) resolveOnePython(fromFile string, imp *types.ImportEntry) {
	spec := imp.Source
	if strings.HasPrefix(spec, ".") {
		dots := 0
		for dots < len(spec) && spec[dots] == '.' {
			dots++
		}
		remainder := strings.TrimPrefix(spec[dots:], ".")
		dir := path.Dir(fromFile)
		for i := 1; i < dots; i++ {
			dir = path.Dir(dir)
		}
		if remainder == "" {
			if p, ok := r.tryPythonModuleOrPackage(dir); ok {
				imp.ResolvedPath = p
				imp.Resolution = types.ResolutionLocal
				return
			}
			imp.Resolution = types.ResolutionUnknown
			return
		}
		base := path.Join(dir, strings.ReplaceAll(remainder, ".", "/"))
		if p, ok := r.tryPythonModuleOrPackage(base); ok {
			imp.ResolvedPath = p
			imp.Resolution = types.ResolutionLocal
			return
		}
		imp.Resolution = types.ResolutionUnknown
		return
	}

	head := spec
	if idx := strings.Index(spec, "."); idx >= 0 {
		head = spec[:idx]
	}
	relPath := strings.ReplaceAll(spec, ".", "/")
	for _, root := range r.pyRoots {
		base := path.Join(root, relPath)
		if p, ok := r.tryPythonModuleOrPackage(base); ok {
			imp.ResolvedPath = p
			imp.Resolution = types.ResolutionLocal
			return
		}
	}
	if IsPythonStdlib(head) {
		imp.Resolution = types.ResolutionStdlib
		return
	}
	imp.Resolution = types.ResolutionUnknown
}

func (r *Resolver) tryPythonModuleOrPackage(base string) (string, bool) {
	if r.exists(base + ".py") {
		return base + ".py", true
	}
	initPath := path.Join(base, "__init__.py")
	if r.exists(initPath) {
		return initPath, true
	}
	return "", false
}
