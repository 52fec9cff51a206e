package analyzer

import (
	"github.com/knitlab/knitscope/knit"
)

// Detector finds one category of wiring defect. Detectors run in isolation
// over the shared run context: they read the snapshot, the graph and the
// provider indexes, never each other's findings, and their combined output
// is the same regardless of execution order.
type Detector interface {
	Name() string
	Detect(run *Run) []knit.Issue
}

// DefaultDetectors returns the standard detector set.
func DefaultDetectors(config *Config) []Detector {
	return []Detector{
		&CircularDependencyDetector{Confidence: config.CircularConfidence},
		&AmbiguousProviderDetector{},
		&UnresolvedDependencyDetector{},
		&SingletonViolationDetector{},
		&NamedQualifierMismatchDetector{},
	}
}
