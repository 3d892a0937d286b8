package suppress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	suppressions, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suppressions) != 0 {
		t.Fatalf("expected no suppressions, got %+v", suppressions)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	original := []types.Suppression{
		{Type: types.SuppressDeadExport, Symbol: "ghost", File: "src/lib.ts", Reason: "generated code"},
		{Type: types.SuppressCircular, Symbol: "a.ts<->b.ts"},
	}
	if err := Save(dir, original); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".loctree", "suppressions.toml.tmp")); !os.IsNotExist(err) {
		t.Errorf("expected tmp file to be gone after rename")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Symbol != "ghost" || loaded[1].Symbol != "a.ts<->b.ts" {
		t.Fatalf("unexpected round-trip: %+v", loaded)
	}
}

func TestFilterRemovesMatchingFindings(t *testing.T) {
	type finding struct {
		Symbol string
		File   string
	}
	findings := []finding{{Symbol: "ghost", File: "src/lib.ts"}, {Symbol: "used", File: "src/lib.ts"}}
	suppressions := []types.Suppression{{Type: types.SuppressDeadExport, Symbol: "ghost", File: "src/lib.ts"}}

	out := Filter(findings, suppressions, func(f finding) (types.SuppressionType, string, string) {
		return types.SuppressDeadExport, f.Symbol, f.File
	})
	if len(out) != 1 || out[0].Symbol != "used" {
		t.Fatalf("expected only 'used' to survive, got %+v", out)
	}
}

func TestFilterNoSuppressionsIsIdentity(t *testing.T) {
	type finding struct{ Symbol string }
	findings := []finding{{Symbol: "a"}, {Symbol: "b"}}
	out := Filter(findings, nil, func(f finding) (types.SuppressionType, string, string) {
		return types.SuppressDeadExport, f.Symbol, ""
	})
	if len(out) != 2 {
		t.Fatalf("expected identity pass-through, got %+v", out)
	}
}
