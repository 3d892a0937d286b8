package output

import (
	"encoding/json"
	"io"

	"github.com/loctree/loctree-go/internal/pipeline"
	"github.com/loctree/loctree-go/pkg/types"
)

// JSONReport is the top-level `--json` output structure (§6 "JSON output").
type JSONReport struct {
	Version     string                 `json:"version"`
	Cycles      []JSONCycle            `json:"cycles,omitempty"`
	DeadExports []types.DeadExport     `json:"dead_exports,omitempty"`
	Commands    []types.CommandFinding `json:"commands,omitempty"`
	Events      []types.EventFinding   `json:"events,omitempty"`
	Twins       []types.Twin           `json:"twins,omitempty"`
	Crowds      []types.Crowd          `json:"crowds,omitempty"`
}

// JSONCycle is a Cycle's node list alongside its lazy flag.
type JSONCycle struct {
	Nodes []string `json:"nodes"`
	Lazy  bool     `json:"lazy"`
}

// BuildJSONReport converts a pipeline Report into the JSON output shape.
func BuildJSONReport(version string, rep *pipeline.Report) *JSONReport {
	report := &JSONReport{
		Version:     version,
		DeadExports: rep.DeadExports,
		Commands:    rep.Commands,
		Events:      rep.Events,
		Twins:       rep.Twins,
		Crowds:      rep.Crowds,
	}
	for _, c := range rep.Cycles {
		report.Cycles = append(report.Cycles, JSONCycle{Nodes: c.Nodes, Lazy: c.Lazy})
	}
	return report
}

// RenderJSON writes the JSON report to w with pretty-printed indentation.
func RenderJSON(w io.Writer, report *JSONReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
