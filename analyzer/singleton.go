package analyzer

import (
	"fmt"

	"github.com/knitlab/knitscope/knit"
)

// SingletonViolationDetector reports types provisioned by two or more
// singleton-scoped providers. The check keys on the bare provision type,
// qualified singletons of the same type still violate the single-instance
// contract.
type SingletonViolationDetector struct{}

func (d *SingletonViolationDetector) Name() string {
	return "singleton-violation"
}

func (d *SingletonViolationDetector) Detect(run *Run) []knit.Issue {
	var issues []knit.Issue
	for _, typ := range run.SingletonTypes() {
		refs := run.SingletonProviders(typ)
		if len(refs) < 2 {
			continue
		}
		owners := distinctOwners(refs)
		issues = append(issues, knit.Issue{
			Type:         knit.SingletonViolation,
			Severity:     knit.SeverityError,
			Message:      fmt.Sprintf("%d singleton providers registered for %s", len(refs), typ),
			Components:   owners,
			SuggestedFix: fmt.Sprintf("keep a single singleton provider for %s or drop the singleton scope", typ),
			Confidence:   0.8,
			Status:       knit.NotValidated,
		})
	}
	return issues
}
