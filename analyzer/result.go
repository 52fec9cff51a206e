package analyzer

import (
	"github.com/knitlab/knitscope/export"
	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

// Status summarizes how an analysis run ended.
type Status string

const (
	StatusSuccess Status = "SUCCESS" // clean pipeline, document produced
	StatusPartial Status = "PARTIAL" // document produced, some stages degraded
)

// Diagnostic records an internal fault a stage absorbed without aborting
// the run. Diagnostics describe the analyzer's own trouble, never the
// analyzed wiring, wiring defects are issues.
type Diagnostic struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Result is the outcome of one analysis run.
type Result struct {
	Status      Status            `json:"status"`
	Document    *export.Document  `json:"document"`
	Issues      []knit.Issue      `json:"issues"`
	Cycles      graph.CycleReport `json:"cycles"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	Accuracy    *AccuracyReport   `json:"accuracy,omitempty"`
}

// HasErrors reports whether any surviving issue carries ERROR severity.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == knit.SeverityError {
			return true
		}
	}
	return false
}
