package analyzer

import (
	"fmt"

	"github.com/knitlab/knitscope/knit"
)

// UnresolvedDependencyDetector reports dependencies no provider can satisfy.
// A named dependency whose bare type is provided under other qualifiers is
// left to the qualifier-mismatch detector, the partition keeps the two
// findings disjoint without the detectors consulting each other.
type UnresolvedDependencyDetector struct{}

func (d *UnresolvedDependencyDetector) Name() string {
	return "unresolved-dependency"
}

func (d *UnresolvedDependencyDetector) Detect(run *Run) []knit.Issue {
	var issues []knit.Issue
	for _, id := range run.ComponentIDs() {
		component, _ := run.Component(id)
		for _, dep := range component.Dependencies {
			if len(run.Resolve(dep)) > 0 {
				continue
			}
			if dep.Named && len(run.ProvidersOfType(dep.TargetType)) > 0 {
				continue
			}
			issues = append(issues, knit.Issue{
				Type:         knit.UnresolvedDependency,
				Severity:     knit.SeverityError,
				Message:      fmt.Sprintf("no provider found for %s required by %s.%s", dep.Key(), id, dep.Property),
				Components:   []string{id},
				SuggestedFix: fmt.Sprintf("register a provider for %s", dep.Key()),
				Confidence:   0.9,
				Status:       knit.NotValidated,
			})
		}
	}
	return issues
}
