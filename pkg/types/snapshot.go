package types

// TSConfigSummary is the subset of tsconfig.json needed by the resolver and
// snapshot readers (§4.3).
type TSConfigSummary struct {
	BaseURL string
	Paths   map[string][]string // alias -> candidate targets, trailing "/*" preserved
}

// ManifestSummary aggregates the handful of facts pulled from package
// manifests (package.json, Cargo.toml, pyproject.toml, go.mod) that downstream
// analyses and reports want without re-reading the manifest (§3 supplement,
// grounded on original_source manifests.rs).
type ManifestSummary struct {
	Name         string
	Version      string
	Dependencies []string
	Workspaces   []string // Cargo/npm workspace member globs, if declared
}

// GitInfo is the optional VCS context recorded in a snapshot.
type GitInfo struct {
	Branch string
	Commit string
}

// Snapshot is the persisted representation of one scan (§3, §4.11).
type Snapshot struct {
	SchemaName    string
	SchemaVersion int
	GeneratedAt   string // RFC3339; excluded from idempotency comparisons
	Roots         []string

	FileAnalyses map[string]*FileAnalysis
	Edges        []GraphEdge

	TSConfigSummary *TSConfigSummary
	ManifestSummary *ManifestSummary
	Git             *GitInfo

	// Mtimes maps project-relative path to the file's modification time in
	// whole seconds, the unit the incremental scan compares against (§4.11).
	Mtimes map[string]int64
}

// CurrentSchemaVersion is bumped whenever the on-disk JSON shape changes in
// a way readers must branch on.
const CurrentSchemaVersion = 1

// SchemaName is the declared schema_name written into every snapshot.
const SchemaName = "loctree.snapshot"

// NewSnapshot returns an empty Snapshot with its maps initialized.
func NewSnapshot(roots []string) *Snapshot {
	return &Snapshot{
		SchemaName:    SchemaName,
		SchemaVersion: CurrentSchemaVersion,
		Roots:         roots,
		FileAnalyses:  make(map[string]*FileAnalysis),
		Mtimes:        make(map[string]int64),
	}
}

// Graph reconstructs a ModuleGraph view over the snapshot's files and edges.
func (s *Snapshot) Graph() *ModuleGraph {
	g := &ModuleGraph{Files: s.FileAnalyses, Edges: s.Edges}
	return g
}
