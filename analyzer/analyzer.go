package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/knitlab/knitscope/export"
	"github.com/knitlab/knitscope/knit"
)

// Version identifies the analyzer build reported in export metadata.
const Version = "0.4.2"

// Analyzer runs the wiring analysis pipeline: graph construction, cycle
// analysis, defect detection, reconciliation, confidence validation and
// export. An Analyzer holds no state between runs and separate Analyzer
// values may run concurrently, but a single value must not serve
// overlapping Analyze calls.
type Analyzer struct {
	config    *Config
	log       zerolog.Logger
	detectors []Detector
	expected  *int
	now       func() time.Time
}

// New creates an Analyzer with the given options.
func New(options ...Option) *Analyzer {
	a := &Analyzer{
		config: DefaultConfig(),
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, option := range options {
		option(a)
	}
	if a.detectors == nil {
		a.detectors = DefaultDetectors(a.config)
	}
	return a
}

// Analyze runs the full pipeline over one immutable wiring snapshot and
// returns the result with its export document. Detector and validation
// faults degrade the run to PARTIAL with diagnostics, reconciliation and
// export faults abort it: the error is returned and no document exists.
// An empty snapshot is not an error, it yields an empty document.
func (a *Analyzer) Analyze(ctx context.Context, components []knit.Component) (*Result, error) {
	started := a.now()
	run := newRun(components)
	a.log.Debug().Int("components", len(run.components)).Msg("building dependency graph")

	run.buildGraph()
	for _, fault := range run.graph.Validate() {
		run.addDiag("graph", fault.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	run.analyzeCycles()
	a.log.Debug().Int("cycles", len(run.cycles)).Msg("cycle analysis complete")
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	var candidates []knit.Issue
	for _, detector := range a.detectors {
		candidates = append(candidates, a.detect(run, detector)...)
	}
	candidates = append(candidates, run.attachedIssues()...)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	kept, diags, err := reconcile(candidates)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	run.diags = append(run.diags, diags...)

	validated := validateIssues(run, kept, a.config)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	document, err := export.Build(run.graph, validated, run.report, a.metadata(run, started))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	result := &Result{
		Status:      StatusSuccess,
		Document:    document,
		Issues:      validated,
		Cycles:      run.report,
		Diagnostics: run.diags,
	}
	if a.expected != nil {
		accuracy := BuildAccuracyReport(validated, *a.expected)
		result.Accuracy = &accuracy
	}
	if len(result.Diagnostics) > 0 {
		result.Status = StatusPartial
	}

	a.log.Info().
		Int("issues", len(validated)).
		Int("cycles", len(run.report.Cycles)).
		Str("status", string(result.Status)).
		Msg("analysis complete")
	return result, nil
}

// detect runs a single detector, a panic inside it degrades the run instead
// of aborting it.
func (a *Analyzer) detect(run *Run, detector Detector) (issues []knit.Issue) {
	defer func() {
		if r := recover(); r != nil {
			run.addDiag(detector.Name(), fmt.Sprintf("detector panic: %v", r))
			issues = nil
		}
	}()
	issues = detector.Detect(run)
	a.log.Debug().Str("detector", detector.Name()).Int("found", len(issues)).Msg("detector finished")
	return issues
}

func (a *Analyzer) metadata(run *Run, started time.Time) export.Metadata {
	projectName := a.config.ProjectName
	if projectName == "" {
		projectName = "unknown"
	}
	totalDependencies := 0
	for i := range run.components {
		totalDependencies += len(run.components[i].Dependencies)
	}
	return export.Metadata{
		ProjectName:       projectName,
		AnalysisTimestamp: started.UTC().Format(time.RFC3339),
		TotalComponents:   len(run.components),
		TotalDependencies: totalDependencies,
		KnitVersion:       a.config.KnitVersion,
		PluginVersion:     a.config.PluginVersion,
	}
}
