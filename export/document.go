package export

import (
	"encoding/json"
)

// Document is the wire representation of one analysis run, the exact shape
// the host visualization consumes.
type Document struct {
	Graph        GraphView    `json:"graph"`
	ErrorContext ErrorContext `json:"errorContext"`
	Metadata     Metadata     `json:"metadata"`
}

// GraphView carries the renderable graph.
type GraphView struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one renderable graph element.
type Node struct {
	ID             string        `json:"id"`
	Label          string        `json:"label"`
	Type           string        `json:"type"` // COMPONENT, PROVIDER or INTERFACE
	PackageName    string        `json:"packageName"`
	ClassName      string        `json:"className"`
	Metadata       NodeMetadata  `json:"metadata"`
	ErrorHighlight NodeHighlight `json:"errorHighlight"`
}

// NodeMetadata carries per-node counters for the host UI.
type NodeMetadata struct {
	SourceFile      string `json:"sourceFile"`
	DependencyCount int    `json:"dependencyCount"`
	ProviderCount   int    `json:"providerCount"`
	IssueCount      int    `json:"issueCount"` // issues claiming this node
}

// NodeHighlight drives node-level defect rendering.
type NodeHighlight struct {
	HasErrors     bool        `json:"hasErrors"`
	ErrorSeverity string      `json:"errorSeverity,omitempty"` // highest severity among claiming issues
	ErrorTypes    []string    `json:"errorTypes,omitempty"`    // sorted distinct issue types
	IsPartOfCycle bool        `json:"isPartOfCycle"`
	CycleID       string      `json:"cycleId,omitempty"`
	VisualHints   VisualHints `json:"visualHints"`
}

// VisualHints is the node styling block.
type VisualHints struct {
	BorderColor     string   `json:"borderColor"`
	BackgroundColor string   `json:"backgroundColor"`
	BorderWidth     int      `json:"borderWidth"`
	Classes         []string `json:"classes"`
}

// Edge is one renderable wiring relation. Parallel graph edges between the
// same endpoints collapse into a single wire edge with merged metadata, the
// edge id stays unique per endpoint pair.
type Edge struct {
	ID             string        `json:"id"` // <from>_to_<to>, dots replaced
	From           string        `json:"source"`
	To             string        `json:"target"`
	Type           string        `json:"type"`
	Label          string        `json:"label"`
	Metadata       EdgeMetadata  `json:"metadata"`
	ErrorHighlight EdgeHighlight `json:"errorHighlight"`
}

// EdgeMetadata mirrors the wiring flags of the originating dependency.
type EdgeMetadata struct {
	IsNamed        bool   `json:"isNamed"`
	NamedQualifier string `json:"namedQualifier,omitempty"`
	IsSingleton    bool   `json:"isSingleton"`
	IsFactory      bool   `json:"isFactory"`
}

// EdgeHighlight drives edge-level defect rendering.
type EdgeHighlight struct {
	HasErrors     bool      `json:"hasErrors"`
	ErrorSeverity string    `json:"errorSeverity,omitempty"`
	ErrorTypes    []string  `json:"errorTypes,omitempty"`
	IsPartOfCycle bool      `json:"isPartOfCycle"`
	CycleID       string    `json:"cycleId,omitempty"`
	VisualHints   EdgeHints `json:"visualHints"`
}

// EdgeHints is the edge styling block.
type EdgeHints struct {
	BorderColor string   `json:"borderColor"`
	Color       string   `json:"color"`
	Width       int      `json:"width"`
	Style       string   `json:"style"` // solid, cycle edges render dashed
	Classes     []string `json:"classes"`
}

// ErrorContext aggregates every defect of the run for the host UI.
type ErrorContext struct {
	TotalErrors   int           `json:"totalErrors"`
	TotalWarnings int           `json:"totalWarnings"`
	Cycles        []CycleView   `json:"cycles"`
	IssueDetails  []IssueDetail `json:"issueDetails"`
}

// CycleView is one rendered dependency cycle.
type CycleView struct {
	ID       string   `json:"id"`
	Path     []string `json:"path"`
	NodeIDs  []string `json:"nodeIds"`
	EdgeIDs  []string `json:"edgeIds"`
	Severity string   `json:"severity"`
}

// IssueDetail is one rendered issue.
type IssueDetail struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Severity        string   `json:"severity"`
	Message         string   `json:"message"`
	AffectedNodes   []string `json:"affectedNodes"`
	AffectedEdges   []string `json:"affectedEdges"`
	SuggestedFix    string   `json:"suggestedFix,omitempty"`
	ConfidenceScore float64  `json:"confidenceScore"`
}

// Metadata describes the analyzed project and the analyzer build.
type Metadata struct {
	ProjectName       string `json:"projectName"`
	AnalysisTimestamp string `json:"analysisTimestamp"` // RFC3339, UTC
	TotalComponents   int    `json:"totalComponents"`
	TotalDependencies int    `json:"totalDependencies"`
	KnitVersion       string `json:"knitVersion"`
	PluginVersion     string `json:"pluginVersion"`
}

// JSON renders the document with indentation for files and stdout.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
