package analyzer

import (
	"fmt"
	"strings"

	"github.com/knitlab/knitscope/knit"
)

// NamedQualifierMismatchDetector reports named dependencies whose qualifier
// matches no provider while the bare type is provided, either under other
// qualifiers or only unqualified.
type NamedQualifierMismatchDetector struct{}

func (d *NamedQualifierMismatchDetector) Name() string {
	return "named-qualifier-mismatch"
}

func (d *NamedQualifierMismatchDetector) Detect(run *Run) []knit.Issue {
	var issues []knit.Issue
	for _, id := range run.ComponentIDs() {
		component, _ := run.Component(id)
		for _, dep := range component.Dependencies {
			if !dep.Named {
				continue
			}
			if len(run.Resolve(dep)) > 0 {
				continue
			}
			if len(run.ProvidersOfType(dep.TargetType)) == 0 {
				continue
			}
			available := run.Qualifiers(dep.TargetType)
			message := fmt.Sprintf("no provider of %s carries qualifier %q", dep.TargetType, dep.Qualifier)
			fix := fmt.Sprintf("register a provider of %s named %q", dep.TargetType, dep.Qualifier)
			if len(available) > 0 {
				message = fmt.Sprintf("%s, available: %s", message, strings.Join(available, ", "))
				fix = fmt.Sprintf("use one of the declared qualifiers (%s) or register a provider named %q", strings.Join(available, ", "), dep.Qualifier)
			} else {
				message = fmt.Sprintf("%s, only unqualified providers are registered", message)
			}
			issues = append(issues, knit.Issue{
				Type:         knit.NamedQualifierMismatch,
				Severity:     knit.SeverityError,
				Message:      message,
				Components:   []string{id},
				SuggestedFix: fix,
				Confidence:   0.75,
				Status:       knit.NotValidated,
			})
		}
	}
	return issues
}
