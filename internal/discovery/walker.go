// Package discovery walks a project tree, honors ignore rules, and
// classifies each recognized source file (C1, §4.1).
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/loctree/loctree-go/pkg/types"
)

// defaultSkipDirs lists directory names skipped regardless of stack
// detection.
var defaultSkipDirs = map[string]bool{
	".git": true,
}

// stackSkipDirs are additional directories skipped once a stack indicator
// is found in the project root (§4.1 "Stack auto-detection").
var stackSkipDirs = map[string]map[string]bool{
	"node_modules": {"node_modules": true, "dist": true},
	"target":       {"target": true},
	".venv":        {".venv": true, "__pycache__": true},
}

// Options configures a Walker. Zero value is valid and uses defaults.
type Options struct {
	Extensions map[string]bool // lowercase ext (no dot) allow-list; nil = all recognized
	IgnoreGlobs []string       // extra ignore prefixes, project-relative
	MaxDepth    int            // 0 = unlimited
	IncludeHidden bool
}

// Walker discovers and classifies source files in a directory tree (C1).
type Walker struct {
	opts Options
}

// NewWalker creates a Walker with the given options.
func NewWalker(opts Options) *Walker {
	return &Walker{opts: opts}
}

// Discover walks rootDir depth-first in lexicographic order, classifies
// every recognized file, and returns a ScanResult.
func (w *Walker) Discover(rootDir string) (*types.ScanResult, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootDir)
	}

	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		gitIgnore, err = ignore.CompileIgnoreFile(gitignorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse .gitignore: %w", err)
		}
	}

	skipDirs := w.effectiveSkipDirs(rootDir)

	result := &types.ScanResult{
		RootDir:     rootDir,
		PerLanguage: make(map[types.Language]int),
	}

	rootDepth := strings.Count(filepath.ToSlash(rootDir), "/")

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		name := d.Name()
		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == rootDir {
				return nil
			}
			if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if skipDirs[name] {
				return fs.SkipDir
			}
			if w.opts.MaxDepth > 0 {
				depth := strings.Count(filepath.ToSlash(path), "/") - rootDepth
				if depth >= w.opts.MaxDepth {
					return fs.SkipDir
				}
			}
			return nil
		}

		if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			return nil
		}

		if w.isIgnored(relPath, gitIgnore) {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		lang, supported := LanguageForExt(ext)
		if !supported {
			return nil
		}
		if w.opts.Extensions != nil && !w.opts.Extensions[strings.ToLower(ext)] {
			return nil
		}

		kind := ClassifyPath(relPath)

		result.Files = append(result.Files, types.DiscoveredFile{
			AbsPath:  path,
			RelPath:  relPath,
			Language: lang,
			Kind:     kind,
		})
		result.TotalFiles++
		switch kind {
		case types.KindCode:
			result.SourceCount++
			result.PerLanguage[lang]++
		case types.KindTest:
			result.TestCount++
		case types.KindGenerated:
			result.GeneratedCount++
		case types.KindStory:
			result.StoryCount++
		case types.KindConfig:
			result.ConfigCount++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk error: %w", err)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})

	return result, nil
}

func (w *Walker) isIgnored(relPath string, gitIgnore *ignore.GitIgnore) bool {
	for _, prefix := range w.opts.IgnoreGlobs {
		if strings.HasPrefix(relPath, prefix) {
			return true
		}
	}
	return gitIgnore != nil && gitIgnore.MatchesPath(relPath)
}

// effectiveSkipDirs merges the always-skipped directories with any enabled
// by stack auto-detection (§4.1).
func (w *Walker) effectiveSkipDirs(rootDir string) map[string]bool {
	skip := make(map[string]bool, len(defaultSkipDirs))
	for k := range defaultSkipDirs {
		skip[k] = true
	}
	for _, stack := range DetectStacks(rootDir) {
		for dir := range stackSkipDirs[stack] {
			skip[dir] = true
		}
	}
	return skip
}

// stackIndicators maps a root-level indicator file/dir to the stack-skip-dir
// bucket it should enable (§4.1 "Stack auto-detection").
var stackIndicators = []struct {
	indicator string
	bucket    string
}{
	{"Cargo.toml", "target"},
	{"package.json", "node_modules"},
	{"pyproject.toml", ".venv"},
	{"src-tauri", "target"},
}

// DetectStacks is advisory stack detection over the project root: it looks
// for indicator files and returns the matching stack-skip-dir buckets.
// vite.config.* is matched by prefix since its extension varies.
func DetectStacks(rootDir string) []string {
	var stacks []string
	for _, ind := range stackIndicators {
		if fileExists(filepath.Join(rootDir, ind.indicator)) {
			stacks = append(stacks, ind.bucket)
		}
	}
	entries, err := os.ReadDir(rootDir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), "vite.config.") {
				stacks = append(stacks, "node_modules")
				break
			}
		}
	}
	return stacks
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
