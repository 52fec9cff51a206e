package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knitlab/knitscope/knit"
)

// AmbiguousProviderDetector reports provision keys claimed by two or more
// providers. Two providers of the same type stay unambiguous as long as
// their qualifiers differ, the index key already carries the qualifier.
type AmbiguousProviderDetector struct{}

func (d *AmbiguousProviderDetector) Name() string {
	return "ambiguous-provider"
}

func (d *AmbiguousProviderDetector) Detect(run *Run) []knit.Issue {
	var issues []knit.Issue
	for _, key := range run.ProviderKeys() {
		refs := run.Providers(key)
		if len(refs) < 2 {
			continue
		}
		owners := distinctOwners(refs)
		issues = append(issues, knit.Issue{
			Type:         knit.AmbiguousProvider,
			Severity:     knit.SeverityError,
			Message:      fmt.Sprintf("%d providers compete for %s: %s", len(refs), key, strings.Join(owners, ", ")),
			Components:   owners,
			SuggestedFix: fmt.Sprintf("add distinguishing qualifiers to the providers of %s", key),
			Confidence:   0.85,
			Status:       knit.NotValidated,
		})
	}
	return issues
}

// distinctOwners returns the sorted distinct component ids behind refs.
func distinctOwners(refs []ProviderRef) []string {
	seen := make(map[string]bool, len(refs))
	owners := make([]string, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.Owner] {
			continue
		}
		seen[ref.Owner] = true
		owners = append(owners, ref.Owner)
	}
	sort.Strings(owners)
	return owners
}
