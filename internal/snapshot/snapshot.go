// Package snapshot persists and reloads the scan's Snapshot (C11, §4.11):
// a versioned JSON document under <project>/.loctree/, written atomically
// and able to round-trip unknown top-level keys.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/loctree/loctree-go/pkg/types"
)

const fileName = "snapshot.json"

// wireEdge is the [from, to, label] triple form mandated by §6, rather than
// the {From,To,Label} object form used internally.
type wireEdge [3]string

// wireDoc is the on-disk shape (§6 "Snapshot JSON"). Extra carries any
// top-level key this version of loctree doesn't recognize, so a newer
// writer's fields survive a round trip through an older reader.
type wireDoc struct {
	SchemaName      string                           `json:"schema_name"`
	SchemaVersion   int                               `json:"schema_version"`
	GeneratedAt     string                            `json:"generated_at"`
	Roots           []string                          `json:"roots"`
	Files           map[string]*types.FileAnalysis    `json:"files"`
	Edges           []wireEdge                        `json:"edges"`
	Mtimes          map[string]int64                  `json:"mtimes"`
	TSConfigSummary *types.TSConfigSummary             `json:"tsconfig_summary,omitempty"`
	ManifestSummary *types.ManifestSummary             `json:"manifest_summary,omitempty"`
	Git             *types.GitInfo                     `json:"git,omitempty"`
	Extra           map[string]json.RawMessage         `json:"-"`
}

const (
	keySchemaName      = "schema_name"
	keySchemaVersion   = "schema_version"
	keyGeneratedAt     = "generated_at"
	keyRoots           = "roots"
	keyFiles           = "files"
	keyEdges           = "edges"
	keyMtimes          = "mtimes"
	keyTSConfigSummary = "tsconfig_summary"
	keyManifestSummary = "manifest_summary"
	keyGit             = "git"
)

var knownKeys = map[string]bool{
	keySchemaName: true, keySchemaVersion: true, keyGeneratedAt: true, keyRoots: true,
	keyFiles: true, keyEdges: true, keyMtimes: true, keyTSConfigSummary: true,
	keyManifestSummary: true, keyGit: true,
}

func (d wireDoc) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(d.Extra)+10)
	for k, v := range d.Extra {
		raw[k] = v
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw[key] = b
		return nil
	}

	if err := set(keySchemaName, d.SchemaName); err != nil {
		return nil, err
	}
	if err := set(keySchemaVersion, d.SchemaVersion); err != nil {
		return nil, err
	}
	if err := set(keyGeneratedAt, d.GeneratedAt); err != nil {
		return nil, err
	}
	if err := set(keyRoots, d.Roots); err != nil {
		return nil, err
	}
	if err := set(keyFiles, d.Files); err != nil {
		return nil, err
	}
	if err := set(keyEdges, d.Edges); err != nil {
		return nil, err
	}
	if err := set(keyMtimes, d.Mtimes); err != nil {
		return nil, err
	}
	if d.TSConfigSummary != nil {
		if err := set(keyTSConfigSummary, d.TSConfigSummary); err != nil {
			return nil, err
		}
	}
	if d.ManifestSummary != nil {
		if err := set(keyManifestSummary, d.ManifestSummary); err != nil {
			return nil, err
		}
	}
	if d.Git != nil {
		if err := set(keyGit, d.Git); err != nil {
			return nil, err
		}
	}

	return json.Marshal(raw)
}

func (d *wireDoc) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	get := func(key string, v any) error {
		b, ok := raw[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(b, v)
	}

	if err := get(keySchemaName, &d.SchemaName); err != nil {
		return err
	}
	if err := get(keySchemaVersion, &d.SchemaVersion); err != nil {
		return err
	}
	if err := get(keyGeneratedAt, &d.GeneratedAt); err != nil {
		return err
	}
	if err := get(keyRoots, &d.Roots); err != nil {
		return err
	}
	if err := get(keyFiles, &d.Files); err != nil {
		return err
	}
	if err := get(keyEdges, &d.Edges); err != nil {
		return err
	}
	if err := get(keyMtimes, &d.Mtimes); err != nil {
		return err
	}
	if err := get(keyTSConfigSummary, &d.TSConfigSummary); err != nil {
		return err
	}
	if err := get(keyManifestSummary, &d.ManifestSummary); err != nil {
		return err
	}
	if err := get(keyGit, &d.Git); err != nil {
		return err
	}

	d.Extra = make(map[string]json.RawMessage)
	for k, v := range raw {
		if !knownKeys[k] {
			d.Extra[k] = v
		}
	}
	return nil
}

func toWire(s *types.Snapshot) wireDoc {
	edges := make([]wireEdge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = wireEdge{e.From, e.To, string(e.Label)}
	}
	return wireDoc{
		SchemaName:      s.SchemaName,
		SchemaVersion:   s.SchemaVersion,
		GeneratedAt:     s.GeneratedAt,
		Roots:           s.Roots,
		Files:           s.FileAnalyses,
		Edges:           edges,
		Mtimes:          s.Mtimes,
		TSConfigSummary: s.TSConfigSummary,
		ManifestSummary: s.ManifestSummary,
		Git:             s.Git,
	}
}

func fromWire(d wireDoc) *types.Snapshot {
	edges := make([]types.GraphEdge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = types.GraphEdge{From: e[0], To: e[1], Label: types.EdgeLabel(e[2])}
	}
	return &types.Snapshot{
		SchemaName:      d.SchemaName,
		SchemaVersion:   d.SchemaVersion,
		GeneratedAt:     d.GeneratedAt,
		Roots:           d.Roots,
		FileAnalyses:    d.Files,
		Edges:           edges,
		TSConfigSummary: d.TSConfigSummary,
		ManifestSummary: d.ManifestSummary,
		Git:             d.Git,
		Mtimes:          d.Mtimes,
	}
}

// Path returns the snapshot file's location under dir's .loctree directory.
func Path(dir string) string {
	return filepath.Join(dir, ".loctree", fileName)
}

// Save writes the snapshot atomically: encode to a temp file in the same
// directory, fsync, then rename over the final path (§4.11, §5 "Shared-
// resource policy").
func Save(dir string, s *types.Snapshot) error {
	if err := os.MkdirAll(filepath.Join(dir, ".loctree"), 0o755); err != nil {
		return fmt.Errorf("create .loctree dir: %w", err)
	}

	path := Path(dir)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(s)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	return nil
}

// Load reads and validates the persisted snapshot. A missing file returns
// (nil, nil) — callers treat that as "no prior snapshot, do a full scan".
// A corrupt file or an incompatible schema version is a fatal §7 "Snapshot
// error" — the caller should advise the user to rerun with --fresh.
func Load(dir string) (*types.Snapshot, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s (rerun with --fresh): %w", path, err)
	}
	return snap, nil
}

// Parse decodes a snapshot document from raw bytes, the shape Load reads
// from disk and `diff --since` reads from a VCS-resolved prior revision.
func Parse(data []byte) (*types.Snapshot, error) {
	var doc wireDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.SchemaName != types.SchemaName {
		return nil, fmt.Errorf("unrecognized schema %q", doc.SchemaName)
	}
	if doc.SchemaVersion > types.CurrentSchemaVersion {
		return nil, fmt.Errorf("schema_version %d is newer than supported %d", doc.SchemaVersion, types.CurrentSchemaVersion)
	}
	return fromWire(doc), nil
}

// StaleFiles compares the snapshot's recorded mtimes against the current
// filesystem state and returns every project-relative path whose mtime
// changed or which is new/removed, driving the incremental refresh
// decision (§4.11, "mtime-based incremental refresh").
func StaleFiles(root string, s *types.Snapshot) ([]string, error) {
	current := make(map[string]int64)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		current[filepath.ToSlash(rel)] = info.ModTime().Unix()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	var stale []string
	for path, mtime := range current {
		if prev, ok := s.Mtimes[path]; !ok || prev != mtime {
			stale = append(stale, path)
		}
	}
	for path := range s.Mtimes {
		if _, ok := current[path]; !ok {
			stale = append(stale, path)
		}
	}
	return stale, nil
}
