package analyzer

import (
	"fmt"
	"strings"

	"github.com/knitlab/knitscope/knit"
)

// CircularDependencyDetector reports one issue per discovered dependency
// cycle. Findings follow the cycle report order, shortest cycle first.
type CircularDependencyDetector struct {
	Confidence float64 // initial confidence assigned to findings
}

func (d *CircularDependencyDetector) Name() string {
	return "circular-dependency"
}

func (d *CircularDependencyDetector) Detect(run *Run) []knit.Issue {
	report := run.Report()
	if len(report.Cycles) == 0 {
		return nil
	}

	confidence := d.Confidence
	if confidence == 0 {
		confidence = 0.9
	}

	issues := make([]knit.Issue, 0, len(report.Cycles))
	for _, cycle := range report.Cycles {
		issues = append(issues, knit.Issue{
			Type:         knit.CircularDependency,
			Severity:     knit.SeverityError,
			Message:      fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle.Path, " -> ")),
			Components:   append([]string{}, cycle.Nodes...),
			SuggestedFix: "extract an interface or invert one of the dependencies to break the cycle",
			Confidence:   confidence,
			Status:       knit.NotValidated,
		})
	}
	return issues
}
