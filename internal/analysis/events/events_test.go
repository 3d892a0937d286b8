package events

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestAnalyzeFindsGhostEmit(t *testing.T) {
	fa := types.NewFileAnalysis("src/app.ts", types.LangTS)
	fa.EventEmits = []types.EventRef{{Name: "ghost-event", Line: 4, Kind: types.EventEmit}}

	findings := Analyze(map[string]*types.FileAnalysis{"src/app.ts": fa})
	if len(findings) != 1 || findings[0].Kind != types.EventGhostEmit {
		t.Fatalf("expected ghost_emit finding, got %+v", findings)
	}
}

func TestAnalyzeFindsOrphanListener(t *testing.T) {
	fa := types.NewFileAnalysis("src/app.ts", types.LangTS)
	fa.EventListens = []types.EventRef{{Name: "never-emitted", Line: 9, Kind: types.EventListen}}

	findings := Analyze(map[string]*types.FileAnalysis{"src/app.ts": fa})
	if len(findings) != 1 || findings[0].Kind != types.EventOrphanListener {
		t.Fatalf("expected orphan_listener finding, got %+v", findings)
	}
}

func TestAnalyzeMatchedPairProducesNoFinding(t *testing.T) {
	emitter := types.NewFileAnalysis("src-tauri/src/lib.rs", types.LangRust)
	emitter.EventEmits = []types.EventRef{{Name: "ready", Line: 2, Kind: types.EventEmit}}
	listener := types.NewFileAnalysis("src/app.ts", types.LangTS)
	listener.EventListens = []types.EventRef{{Name: "ready", Line: 6, Kind: types.EventListen}}

	files := map[string]*types.FileAnalysis{
		"src-tauri/src/lib.rs": emitter, "src/app.ts": listener,
	}
	findings := Analyze(files)
	if len(findings) != 0 {
		t.Fatalf("expected matched emit/listen pair to be clean, got %+v", findings)
	}
}

func TestAnalyzeFindsRaceOnDuplicateEmit(t *testing.T) {
	a := types.NewFileAnalysis("src/a.ts", types.LangTS)
	a.EventEmits = []types.EventRef{{Name: "progress", Line: 1, Kind: types.EventEmit}}
	b := types.NewFileAnalysis("src/b.ts", types.LangTS)
	b.EventEmits = []types.EventRef{{Name: "progress", Line: 1, Kind: types.EventEmit}}
	listener := types.NewFileAnalysis("src/c.ts", types.LangTS)
	listener.EventListens = []types.EventRef{{Name: "progress", Line: 1, Kind: types.EventListen}}

	files := map[string]*types.FileAnalysis{"src/a.ts": a, "src/b.ts": b, "src/c.ts": listener}
	findings := Analyze(files)

	var gotRace bool
	for _, f := range findings {
		if f.Kind == types.EventRace && f.Name == "progress" {
			gotRace = true
			if len(f.Sites) != 2 {
				t.Errorf("expected both emit sites recorded, got %+v", f.Sites)
			}
		}
	}
	if !gotRace {
		t.Fatalf("expected a race finding for duplicate emitters, got %+v", findings)
	}
}

func TestAnalyzeNoRaceWhenEveryEmitIsAwaited(t *testing.T) {
	a := types.NewFileAnalysis("src/a.ts", types.LangTS)
	a.EventEmits = []types.EventRef{{Name: "progress", Line: 1, Kind: types.EventEmit, Awaited: true}}
	b := types.NewFileAnalysis("src/b.ts", types.LangTS)
	b.EventEmits = []types.EventRef{{Name: "progress", Line: 4, Kind: types.EventEmit, Awaited: true}}
	listener := types.NewFileAnalysis("src/c.ts", types.LangTS)
	listener.EventListens = []types.EventRef{{Name: "progress", Line: 1, Kind: types.EventListen}}

	files := map[string]*types.FileAnalysis{"src/a.ts": a, "src/b.ts": b, "src/c.ts": listener}
	findings := Analyze(files)

	for _, f := range findings {
		if f.Kind == types.EventRace {
			t.Fatalf("expected no race when every emitter is awaited, got %+v", findings)
		}
	}
}

func TestAnalyzeDowngradesDynamicNameGhostEmit(t *testing.T) {
	fa := types.NewFileAnalysis("src/app.ts", types.LangTS)
	fa.EventEmits = []types.EventRef{{Name: "dyn-event", Line: 1, Kind: types.EventEmit}}
	fa.StringLiterals = []string{"dyn-event"}

	findings := Analyze(map[string]*types.FileAnalysis{"src/app.ts": fa})
	if len(findings) != 1 || findings[0].Confidence != types.ConfidenceSmell {
		t.Fatalf("expected smell-confidence ghost emit for string-literal name, got %+v", findings)
	}
}
