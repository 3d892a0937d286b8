package deadexport

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestAnalyzeFindsDeadExport(t *testing.T) {
	lib := types.NewFileAnalysis("src/lib.ts", types.LangTS)
	lib.Exports = []types.ExportSymbol{
		{Name: "used", Kind: types.ExportFunction, Line: 1},
		{Name: "unused", Kind: types.ExportFunction, Line: 5},
	}
	app := types.NewFileAnalysis("src/app.ts", types.LangTS)
	app.Imports = []types.ImportEntry{
		{ResolvedPath: "src/lib.ts", Symbols: []types.ImportedSymbol{{Name: "used"}}},
	}
	app.SymbolUsages = []string{"used"}

	files := map[string]*types.FileAnalysis{"src/lib.ts": lib, "src/app.ts": app}
	results := Analyze(files, nil, Options{})

	if len(results) != 1 || results[0].Symbol != "unused" {
		t.Fatalf("expected exactly 'unused' flagged dead, got %+v", results)
	}
	if results[0].Confidence != types.ConfidenceHigh {
		t.Errorf("expected High confidence, got %s", results[0].Confidence)
	}
}

func TestAnalyzeFollowsReexportChain(t *testing.T) {
	lib := types.NewFileAnalysis("src/lib.ts", types.LangTS)
	lib.Exports = []types.ExportSymbol{{Name: "thing", Kind: types.ExportFunction, Line: 1}}
	barrel := types.NewFileAnalysis("src/index.ts", types.LangTS)
	barrel.Reexports = []types.ReexportEntry{{Source: "./lib", ResolvedPath: "src/lib.ts", Kind: types.ReexportStar}}
	app := types.NewFileAnalysis("src/app.ts", types.LangTS)
	app.Imports = []types.ImportEntry{
		{ResolvedPath: "src/index.ts", Symbols: []types.ImportedSymbol{{Name: "thing"}}},
	}
	app.SymbolUsages = []string{"thing"}

	files := map[string]*types.FileAnalysis{
		"src/lib.ts": lib, "src/index.ts": barrel, "src/app.ts": app,
	}
	results := Analyze(files, nil, Options{})
	if len(results) != 0 {
		t.Fatalf("expected thing to be considered used via barrel reexport, got %+v", results)
	}
}

func TestAnalyzeEntryPointsAreExempt(t *testing.T) {
	fa := types.NewFileAnalysis("main.go", types.LangGo)
	fa.Exports = []types.ExportSymbol{{Name: "main", Kind: types.ExportFunction, IsEntry: true, Line: 1}}
	results := Analyze(map[string]*types.FileAnalysis{"main.go": fa}, nil, Options{})
	if len(results) != 0 {
		t.Fatalf("expected entry point exempt from dead-export, got %+v", results)
	}
}

func TestAnalyzeSuppressionFilters(t *testing.T) {
	fa := types.NewFileAnalysis("src/lib.ts", types.LangTS)
	fa.Exports = []types.ExportSymbol{{Name: "ghost", Kind: types.ExportFunction, Line: 3}}
	suppressions := []types.Suppression{{Type: types.SuppressDeadExport, Symbol: "ghost", File: "src/lib.ts"}}
	results := Analyze(map[string]*types.FileAnalysis{"src/lib.ts": fa}, suppressions, Options{})
	if len(results) != 0 {
		t.Fatalf("expected suppression to remove finding, got %+v", results)
	}
}

func TestAnalyzeLibraryModeSuppressesEverything(t *testing.T) {
	fa := types.NewFileAnalysis("src/lib.ts", types.LangTS)
	fa.Exports = []types.ExportSymbol{{Name: "unused", Kind: types.ExportFunction, Line: 5}}
	results := Analyze(map[string]*types.FileAnalysis{"src/lib.ts": fa}, nil, Options{LibraryMode: true})
	if results != nil {
		t.Fatalf("expected no findings in library mode, got %+v", results)
	}
}

func TestAnalyzeExampleGlobExemptsFile(t *testing.T) {
	fa := types.NewFileAnalysis("examples/demo.ts", types.LangTS)
	fa.Exports = []types.ExportSymbol{{Name: "unused", Kind: types.ExportFunction, Line: 5}}
	results := Analyze(map[string]*types.FileAnalysis{"examples/demo.ts": fa}, nil, Options{ExampleGlobs: []string{"examples/**"}})
	if len(results) != 0 {
		t.Fatalf("expected examples/** glob to exempt the file, got %+v", results)
	}
}

func TestAnalyzeStringLiteralDowngradesToSmell(t *testing.T) {
	lib := types.NewFileAnalysis("src/handlers.ts", types.LangTS)
	lib.Exports = []types.ExportSymbol{{Name: "doThing", Kind: types.ExportFunction, Line: 5}}
	registry := types.NewFileAnalysis("src/registry.ts", types.LangTS)
	registry.StringLiterals = []string{"doThing"}

	files := map[string]*types.FileAnalysis{"src/handlers.ts": lib, "src/registry.ts": registry}
	results := Analyze(files, nil, Options{})

	if len(results) != 1 || results[0].Symbol != "doThing" {
		t.Fatalf("expected doThing flagged dead, got %+v", results)
	}
	if results[0].Confidence != types.ConfidenceSmell {
		t.Errorf("expected Smell confidence for name appearing as a string literal elsewhere, got %s", results[0].Confidence)
	}
}

func TestAnalyzeStringLiteralInSameFileDoesNotDowngrade(t *testing.T) {
	fa := types.NewFileAnalysis("src/handlers.ts", types.LangTS)
	fa.Exports = []types.ExportSymbol{{Name: "doThing", Kind: types.ExportFunction, Line: 5}}
	fa.StringLiterals = []string{"doThing"}

	results := Analyze(map[string]*types.FileAnalysis{"src/handlers.ts": fa}, nil, Options{})
	if len(results) != 1 || results[0].Confidence != types.ConfidenceHigh {
		t.Fatalf("expected High confidence when the literal only appears in the declaring file, got %+v", results)
	}
}

func TestAnalyzeRegisteredCommandHandlerIsExempt(t *testing.T) {
	fa := types.NewFileAnalysis("src-tauri/src/commands.rs", types.LangRust)
	fa.Exports = []types.ExportSymbol{{Name: "do_thing", Kind: types.ExportFunction, Line: 10, IsEntry: true, EntryKind: "tauri_command"}}
	fa.CommandHandlers = []types.CommandRef{{Name: "do_thing", ExposedName: "do_thing", Registered: true}}
	results := Analyze(map[string]*types.FileAnalysis{"src-tauri/src/commands.rs": fa}, nil, Options{})
	if len(results) != 0 {
		t.Fatalf("expected registered, frontend-only command handler exempt from dead-export, got %+v", results)
	}
}

func TestAnalyzeUnregisteredCommandHandlerIsCertain(t *testing.T) {
	fa := types.NewFileAnalysis("src-tauri/src/commands.rs", types.LangRust)
	fa.Exports = []types.ExportSymbol{{Name: "do_thing", Kind: types.ExportFunction, Line: 10}}
	fa.CommandHandlers = []types.CommandRef{{Name: "do_thing", ExposedName: "do_thing", Registered: false}}
	results := Analyze(map[string]*types.FileAnalysis{"src-tauri/src/commands.rs": fa}, nil, Options{})
	if len(results) != 1 || results[0].Confidence != types.ConfidenceCertain {
		t.Fatalf("expected certain-confidence unregistered handler finding, got %+v", results)
	}
}
