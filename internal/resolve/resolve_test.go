package resolve

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestResolveTSJSRelative(t *testing.T) {
	files := []string{"src/app.ts", "src/utils.ts", "src/components/button.tsx", "src/components/index.ts"}
	r := New(files, nil, nil)

	fa := types.NewFileAnalysis("src/app.ts", types.LangTS)
	fa.Imports = []types.ImportEntry{
		{Source: "./utils"},
		{Source: "./components"},
		{Source: "./missing"},
	}
	r.Resolve(fa)

	if fa.Imports[0].Resolution != types.ResolutionLocal || fa.Imports[0].ResolvedPath != "src/utils.ts" {
		t.Fatalf("expected src/utils.ts, got %+v", fa.Imports[0])
	}
	if fa.Imports[1].Resolution != types.ResolutionLocal || fa.Imports[1].ResolvedPath != "src/components/index.ts" {
		t.Fatalf("expected index resolution, got %+v", fa.Imports[1])
	}
	if fa.Imports[2].Resolution != types.ResolutionUnknown {
		t.Fatalf("expected unknown for missing path, got %+v", fa.Imports[2])
	}
}

func TestResolveTSJSAlias(t *testing.T) {
	files := []string{"src/app.ts", "src/lib/widget.ts"}
	ts := &types.TSConfigSummary{
		BaseURL: ".",
		Paths:   map[string][]string{"@lib/*": {"src/lib/*"}},
	}
	r := New(files, ts, nil)

	fa := types.NewFileAnalysis("src/app.ts", types.LangTS)
	fa.Imports = []types.ImportEntry{{Source: "@lib/widget"}}
	r.Resolve(fa)

	if fa.Imports[0].Resolution != types.ResolutionLocal || fa.Imports[0].ResolvedPath != "src/lib/widget.ts" {
		t.Fatalf("expected aliased resolution, got %+v", fa.Imports[0])
	}
}

func TestResolvePythonRelativeAndAbsolute(t *testing.T) {
	files := []string{
		"pkg/mod_a.py", "pkg/sub/__init__.py", "pkg/sub/mod_b.py", "app/main.py",
	}
	r := New(files, nil, []string{"", "pkg"})

	fa := types.NewFileAnalysis("pkg/sub/mod_b.py", types.LangPython)
	fa.Imports = []types.ImportEntry{
		{Source: "..mod_a"},
		{Source: "os"},
		{Source: "totally.unknown.thing"},
	}
	r.Resolve(fa)

	if fa.Imports[0].Resolution != types.ResolutionLocal || fa.Imports[0].ResolvedPath != "pkg/mod_a.py" {
		t.Fatalf("expected relative resolution to pkg/mod_a.py, got %+v", fa.Imports[0])
	}
	if fa.Imports[1].Resolution != types.ResolutionStdlib {
		t.Fatalf("expected os as stdlib, got %+v", fa.Imports[1])
	}
	if fa.Imports[2].Resolution != types.ResolutionUnknown {
		t.Fatalf("expected unknown for unresolvable dotted path, got %+v", fa.Imports[2])
	}
}

func TestResolveNonResolvedLanguagesAsWritten(t *testing.T) {
	r := New(nil, nil, nil)
	fa := types.NewFileAnalysis("src/lib.rs", types.LangRust)
	fa.Imports = []types.ImportEntry{{Source: "crate::utils"}}
	r.Resolve(fa)
	if fa.Imports[0].Resolution != types.ResolutionUnknown || fa.Imports[0].ResolvedPath != "" {
		t.Fatalf("expected as-written unknown resolution, got %+v", fa.Imports[0])
	}
}
