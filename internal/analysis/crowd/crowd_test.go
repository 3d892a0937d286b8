package crowd

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestFindTwinsFlagsSharedExportName(t *testing.T) {
	a := types.NewFileAnalysis("src/hooks/useMessage.ts", types.LangTS)
	a.Exports = []types.ExportSymbol{{Name: "formatDate", Line: 3}}
	b := types.NewFileAnalysis("src/utils/date.ts", types.LangTS)
	b.Exports = []types.ExportSymbol{{Name: "formatDate", Line: 7}}

	files := map[string]*types.FileAnalysis{
		"src/hooks/useMessage.ts": a, "src/utils/date.ts": b,
	}
	twins := FindTwins(files)
	if len(twins) != 1 || twins[0].Name != "formatDate" || len(twins[0].Locations) != 2 {
		t.Fatalf("expected one twin for formatDate, got %+v", twins)
	}
}

func TestFindTwinsIgnoresUniqueExports(t *testing.T) {
	a := types.NewFileAnalysis("src/a.ts", types.LangTS)
	a.Exports = []types.ExportSymbol{{Name: "uniqueOne", Line: 1}}
	files := map[string]*types.FileAnalysis{"src/a.ts": a}
	if twins := FindTwins(files); len(twins) != 0 {
		t.Fatalf("expected no twins, got %+v", twins)
	}
}

func buildMessageCrowd() map[string]*types.FileAnalysis {
	files := make(map[string]*types.FileAnalysis)
	for i, name := range []string{"useMessageList", "useMessageForm", "useMessageDraft"} {
		fa := types.NewFileAnalysis("src/hooks/"+name+".ts", types.LangTS)
		fa.Exports = []types.ExportSymbol{{Name: name, Line: 1}}
		fa.Imports = []types.ImportEntry{
			{Source: "react", ResolvedPath: "react"},
			{Source: "./store", ResolvedPath: "src/hooks/store.ts"},
		}
		if i == 0 {
			fa.Imports = append(fa.Imports, types.ImportEntry{Source: "./extra", ResolvedPath: "src/hooks/extra.ts"})
		}
		files["src/hooks/"+name+".ts"] = fa
	}
	consumer := types.NewFileAnalysis("src/app.ts", types.LangTS)
	consumer.Imports = []types.ImportEntry{{Source: "./hooks/useMessageList", ResolvedPath: "src/hooks/useMessageList.ts"}}
	files["src/app.ts"] = consumer
	return files
}

func TestDetectAllFindsMessageCrowd(t *testing.T) {
	files := buildMessageCrowd()
	crowds := DetectAll(files)

	var found *types.Crowd
	for i := range crowds {
		if crowds[i].Pattern == "message" {
			found = &crowds[i]
		}
	}
	if found == nil {
		t.Fatalf("expected a 'message' crowd among %+v", crowds)
	}
	if len(found.Members) != 3 {
		t.Errorf("expected 3 members in message crowd, got %d", len(found.Members))
	}
	if found.Members[0].File != "src/hooks/useMessageList.ts" {
		t.Errorf("expected most-imported member first, got %+v", found.Members)
	}
}

func TestDetectAllSkipsSingleFilePatterns(t *testing.T) {
	fa := types.NewFileAnalysis("src/onlyOneThing.ts", types.LangTS)
	fa.Exports = []types.ExportSymbol{{Name: "onlyOneThing", Line: 1}}
	crowds := DetectAll(map[string]*types.FileAnalysis{"src/onlyOneThing.ts": fa})
	if len(crowds) != 0 {
		t.Fatalf("expected no crowds from a single matching file, got %+v", crowds)
	}
}
