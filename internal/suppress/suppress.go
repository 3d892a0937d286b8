// Package suppress loads the user-edited suppressions.toml store (C13,
// §4.13) and filters findings against it.
package suppress

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/loctree/loctree-go/pkg/types"
)

const fileName = "suppressions.toml"

// document is the on-disk shape: a flat list under a top-level key so the
// file reads naturally as a sequence of `[[suppression]]` TOML tables.
type document struct {
	Suppression []types.Suppression `toml:"suppression"`
}

// Load reads <dir>/.loctree/suppressions.toml. A missing file yields an
// empty list, not an error — suppressions are optional (§4.13).
func Load(dir string) ([]types.Suppression, error) {
	path := filepath.Join(dir, ".loctree", fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read suppressions %s: %w", path, err)
	}

	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parse suppressions %s: %w", path, err)
	}
	return doc.Suppression, nil
}

// Save writes the suppression list back atomically (temp file + rename),
// the same discipline the snapshot store uses for its own persistence.
func Save(dir string, suppressions []types.Suppression) error {
	if err := os.MkdirAll(filepath.Join(dir, ".loctree"), 0o755); err != nil {
		return fmt.Errorf("create .loctree dir: %w", err)
	}
	path := filepath.Join(dir, ".loctree", fileName)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	enc := toml.NewEncoder(f)
	if err := enc.Encode(document{Suppression: suppressions}); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode suppressions: %w", err)
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

// Filter removes any of the given dead-export-style findings that match a
// suppression, applied as the last step before emission (§4.6 step 5,
// §4.13). The match callback extracts (type, symbol, file) from an item of
// type T so a single Filter works across every finding kind C13 covers.
func Filter[T any](items []T, suppressions []types.Suppression, match func(T) (types.SuppressionType, string, string)) []T {
	if len(suppressions) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		typ, symbol, file := match(item)
		if !anyMatches(suppressions, typ, symbol, file) {
			out = append(out, item)
		}
	}
	return out
}

func anyMatches(suppressions []types.Suppression, typ types.SuppressionType, symbol, file string) bool {
	for _, s := range suppressions {
		if s.Matches(typ, symbol, file) {
			return true
		}
	}
	return false
}
