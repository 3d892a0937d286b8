// Package crowd implements the crowd/twin analyzer (C9, §4.9): clustering
// files that appear to serve the same purpose, and flagging exports with
// identical names declared in more than one file.
package crowd

import (
	"regexp"
	"sort"
	"strings"

	"github.com/loctree/loctree-go/pkg/types"
)

var wordRe = regexp.MustCompile(`[A-Z][a-z]+|[a-z]+`)

// minPatternCount is how many files must share a significant word before it
// becomes a candidate crowd pattern.
const minPatternCount = 3

// maxPatterns caps how many auto-detected patterns are expanded into crowds.
const maxPatterns = 10

// similarityThreshold is the minimum Jaccard score over import sets for two
// files to be considered meaningfully related.
const similarityThreshold = 0.3

// highSimilarityThreshold marks a pair as a likely duplicate.
const highSimilarityThreshold = 0.6

// FindTwins flags export names declared in more than one file (§4.9).
func FindTwins(files map[string]*types.FileAnalysis) []types.Twin {
	locations := make(map[string][]types.Location)

	paths := sortedPaths(files)
	for _, path := range paths {
		fa := files[path]
		for _, e := range fa.Exports {
			locations[e.Name] = append(locations[e.Name], types.Location{File: path, Line: e.Line})
		}
	}

	var twins []types.Twin
	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		locs := locations[name]
		if countDistinctFiles(locs) < 2 {
			continue
		}
		twins = append(twins, types.Twin{Name: name, Locations: locs})
	}
	return twins
}

func countDistinctFiles(locs []types.Location) int {
	seen := make(map[string]bool)
	for _, l := range locs {
		seen[l.File] = true
	}
	return len(seen)
}

// DetectAll auto-detects crowd patterns from shared significant words across
// file names and export names, then builds a crowd report for each pattern
// that clusters at least two files.
func DetectAll(files map[string]*types.FileAnalysis) []types.Crowd {
	patterns := detectNamePatterns(files)
	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}

	importSets := buildImportSets(files)

	var crowds []types.Crowd
	for _, pattern := range patterns {
		c := detectCrowd(files, pattern, importSets)
		if len(c.Members) >= 2 {
			crowds = append(crowds, c)
		}
	}
	return crowds
}

// detectNamePatterns extracts words of length > 3 from file basenames and
// export names, keeping the ones that recur across at least minPatternCount
// files, ranked by descending frequency.
func detectNamePatterns(files map[string]*types.FileAnalysis) []string {
	counts := make(map[string]int)
	paths := sortedPaths(files)
	for _, path := range paths {
		fa := files[path]
		base := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			base = path[idx+1:]
		}
		seen := make(map[string]bool)
		count := func(w string) {
			if !seen[w] {
				seen[w] = true
				counts[w]++
			}
		}
		for _, w := range extractWords(base) {
			count(w)
		}
		for _, e := range fa.Exports {
			for _, w := range extractWords(e.Name) {
				count(w)
			}
		}
	}

	type wc struct {
		word  string
		count int
	}
	var candidates []wc
	for w, c := range counts {
		if c >= minPatternCount {
			candidates = append(candidates, wc{w, c})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].word < candidates[j].word
	})

	words := make([]string, len(candidates))
	for i, c := range candidates {
		words[i] = c.word
	}
	return words
}

func extractWords(s string) []string {
	var words []string
	for _, m := range wordRe.FindAllString(s, -1) {
		lower := strings.ToLower(m)
		if len(lower) > 3 {
			words = append(words, lower)
		}
	}
	return words
}

func buildImportSets(files map[string]*types.FileAnalysis) map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(files))
	for path, fa := range files {
		set := make(map[string]bool, len(fa.Imports))
		for _, imp := range fa.Imports {
			set[imp.Source] = true
		}
		sets[path] = set
	}
	return sets
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	union := make(map[string]bool, len(a)+len(b))
	for k := range a {
		union[k] = true
		if b[k] {
			intersection++
		}
	}
	for k := range b {
		union[k] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

type pairSim struct {
	a, b  string
	score float64
}

func detectCrowd(files map[string]*types.FileAnalysis, pattern string, importSets map[string]map[string]bool) types.Crowd {
	matching := clusterByName(files, pattern)
	if len(matching) == 0 {
		return types.Crowd{Pattern: pattern}
	}

	importerCounts := countImporters(files)

	var sims []pairSim
	for i, a := range matching {
		for _, b := range matching[i+1:] {
			score := jaccard(importSets[a], importSets[b])
			if score > similarityThreshold {
				sims = append(sims, pairSim{a, b, score})
			}
		}
	}
	sort.Slice(sims, func(i, j int) bool { return sims[i].score > sims[j].score })

	members := make([]types.CrowdMember, len(matching))
	for i, path := range matching {
		members[i] = types.CrowdMember{File: path, ImporterCount: importerCounts[path]}
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].ImporterCount != members[j].ImporterCount {
			return members[i].ImporterCount > members[j].ImporterCount
		}
		return members[i].File < members[j].File
	})

	issues := detectIssues(members, sims)
	score := crowdScore(members, issues)

	return types.Crowd{Pattern: pattern, Members: members, Issues: issues, Score: score}
}

func clusterByName(files map[string]*types.FileAnalysis, pattern string) []string {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(pattern))
	}

	var matches []string
	for _, path := range sortedPaths(files) {
		fa := files[path]
		if re.MatchString(path) {
			matches = append(matches, path)
			continue
		}
		for _, e := range fa.Exports {
			if re.MatchString(e.Name) {
				matches = append(matches, path)
				break
			}
		}
	}
	return matches
}

func countImporters(files map[string]*types.FileAnalysis) map[string]int {
	counts := make(map[string]int)
	for _, fa := range files {
		for _, imp := range fa.Imports {
			if imp.ResolvedPath != "" {
				counts[imp.ResolvedPath]++
			}
		}
	}
	return counts
}

func detectIssues(members []types.CrowdMember, sims []pairSim) []types.CrowdIssue {
	var issues []types.CrowdIssue
	if len(members) < 2 {
		return issues
	}

	primary := members[0]
	var underused bool
	for _, m := range members[1:] {
		if m.ImporterCount <= primary.ImporterCount/3 {
			underused = true
			break
		}
	}
	if underused {
		issues = append(issues, types.CrowdUsageAsymmetry)
	}

	for _, s := range sims {
		if s.score > highSimilarityThreshold {
			issues = append(issues, types.CrowdHighOverlap)
			break
		}
	}

	if len(members) >= 3 {
		issues = append(issues, types.CrowdNameCollision)
	}

	return issues
}

func crowdScore(members []types.CrowdMember, issues []types.CrowdIssue) int {
	score := float64(len(members)) - 1
	if score > 3 {
		score = 3
	}
	score += float64(len(issues)) * 1.5

	if score > 10 {
		score = 10
	}
	return int(score)
}

func sortedPaths(files map[string]*types.FileAnalysis) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
