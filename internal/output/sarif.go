package output

import (
	"encoding/json"
	"io"

	"github.com/loctree/loctree-go/internal/pipeline"
	"github.com/loctree/loctree-go/pkg/types"
)

// SARIF 2.1.0 rule ids (§6 "SARIF output").
const (
	ruleDuplicateExport = "duplicate-export"
	ruleMissingHandler  = "missing-handler"
	ruleUnusedHandler   = "unused-handler"
	ruleDeadExport      = "dead-export"
	ruleGhostEvent      = "ghost-event"
	ruleOrphanListener  = "orphan-listener"
)

// SARIFDoc is the top-level SARIF log shape.
type SARIFDoc struct {
	Schema  string      `json:"$schema"`
	Version string      `json:"version"`
	Runs    []SARIFRun  `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type SARIFResult struct {
	RuleID    string           `json:"ruleId"`
	Level     string           `json:"level"`
	Message   SARIFMessage     `json:"message"`
	Locations []SARIFLocation  `json:"locations"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifact `json:"artifactLocation"`
	Region           *SARIFRegion  `json:"region,omitempty"`
}

type SARIFArtifact struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// BuildSARIF converts a scan Report into a SARIF 2.1.0 log, covering the
// finding kinds named by §6: duplicate-export (twins), missing-handler and
// unused-handler (command coverage), dead-export, ghost-event, and
// orphan-listener (event flow).
func BuildSARIF(version string, rep *pipeline.Report) *SARIFDoc {
	doc := &SARIFDoc{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{{
			Tool: SARIFTool{Driver: SARIFDriver{Name: "loctree", Version: version}},
		}},
	}
	run := &doc.Runs[0]

	for _, d := range rep.DeadExports {
		run.Results = append(run.Results, sarifResult(ruleDeadExport, severityFor(d.Confidence), d.Symbol+" has no known consumer", d.File, d.Line))
	}
	for _, t := range rep.Twins {
		for _, loc := range t.Locations {
			run.Results = append(run.Results, sarifResult(ruleDuplicateExport, "note", t.Name+" is exported by more than one file", loc.File, loc.Line))
		}
	}
	for _, c := range rep.Commands {
		switch c.Status {
		case types.CommandMissingHandler:
			for _, s := range c.CallSites {
				run.Results = append(run.Results, sarifResult(ruleMissingHandler, "error", c.Name+" has no backend handler", s.File, s.Line))
			}
		case types.CommandUnusedHandler, types.CommandUnregisteredHandler:
			for _, s := range c.Handlers {
				run.Results = append(run.Results, sarifResult(ruleUnusedHandler, "warning", c.Name+" handler is never invoked", s.File, s.Line))
			}
		}
	}
	for _, e := range rep.Events {
		switch e.Kind {
		case types.EventGhostEmit:
			for _, s := range e.Sites {
				run.Results = append(run.Results, sarifResult(ruleGhostEvent, "warning", e.Name+" is emitted but never listened for", s.File, s.Line))
			}
		case types.EventOrphanListener:
			for _, s := range e.Sites {
				run.Results = append(run.Results, sarifResult(ruleOrphanListener, "warning", e.Name+" is listened for but never emitted", s.File, s.Line))
			}
		}
	}
	return doc
}

func severityFor(c types.Confidence) string {
	switch c {
	case types.ConfidenceCertain:
		return "error"
	case types.ConfidenceHigh:
		return "warning"
	default:
		return "note"
	}
}

func sarifResult(rule, level, message, file string, line int) SARIFResult {
	var region *SARIFRegion
	if line > 0 {
		region = &SARIFRegion{StartLine: line}
	}
	return SARIFResult{
		RuleID:  rule,
		Level:   level,
		Message: SARIFMessage{Text: message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifact{URI: file},
				Region:           region,
			},
		}},
	}
}

// RenderSARIF writes the SARIF document to w with pretty-printed indentation.
func RenderSARIF(w io.Writer, doc *SARIFDoc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
