package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knitlab/knitscope/knit"
)

// reconcile merges candidate issues from every detector into a single
// consistent set. Higher-priority issue types claim their components,
// claimed components discard later findings. Cycle issues go first,
// shortest cycle ahead, so of two cycles over the same node set only the
// shorter survives. A failure here aborts the run, partial reconciliation
// must never reach the exporter.
func reconcile(candidates []knit.Issue) ([]knit.Issue, []Diagnostic, error) {
	var diags []Diagnostic
	var cycles []knit.Issue
	var rest []knit.Issue

	for _, issue := range candidates {
		if !issue.Type.Known() {
			return nil, nil, fmt.Errorf("issue of unknown type %q", issue.Type)
		}
		if len(issue.Components) == 0 {
			diags = append(diags, Diagnostic{
				Stage:   "reconcile",
				Message: fmt.Sprintf("%s issue names no components, dropped: %s", issue.Type, issue.Message),
			})
			continue
		}
		if issue.Type == knit.CircularDependency {
			cycles = append(cycles, issue)
			continue
		}
		rest = append(rest, issue)
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		if len(cycles[i].Components) != len(cycles[j].Components) {
			return len(cycles[i].Components) < len(cycles[j].Components)
		}
		return componentKey(cycles[i].Components) < componentKey(cycles[j].Components)
	})
	sort.SliceStable(rest, func(i, j int) bool {
		left, right := rest[i], rest[j]
		if left.Type.Priority() != right.Type.Priority() {
			return left.Type.Priority() < right.Type.Priority()
		}
		if left.Type != right.Type {
			return left.Type < right.Type
		}
		return componentKey(left.Components) < componentKey(right.Components)
	})

	claimed := make(map[string]bool)
	kept := make([]knit.Issue, 0, len(candidates))

	// A cycle issue survives as long as it still covers at least one
	// unclaimed component, overlapping cycles stay individually reportable.
	for _, issue := range cycles {
		fresh := false
		for _, id := range issue.Components {
			if !claimed[id] {
				fresh = true
				break
			}
		}
		if !fresh {
			continue
		}
		for _, id := range issue.Components {
			claimed[id] = true
		}
		kept = append(kept, issue)
	}

	// Everything else needs all of its components unclaimed.
	for _, issue := range rest {
		blocked := false
		for _, id := range issue.Components {
			if claimed[id] {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		for _, id := range issue.Components {
			claimed[id] = true
		}
		kept = append(kept, issue)
	}

	return kept, diags, nil
}

// componentKey builds a deterministic ordering key over a component set.
func componentKey(components []string) string {
	sorted := make([]string, len(components))
	copy(sorted, components)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
