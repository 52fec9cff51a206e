package analyzer

import (
	"errors"
	"fmt"

	"github.com/knitlab/knitscope/knit"
)

// validateIssues recomputes the confidence of every reconciled issue by
// cross-checking it against the snapshot and the graph, then assigns the
// validation status from the configured thresholds. Each issue is validated
// in isolation: a panic or error in one check marks that issue
// VALIDATION_FAILED and the pass moves on.
func validateIssues(run *Run, issues []knit.Issue, config *Config) []knit.Issue {
	out := make([]knit.Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, validateOne(run, issue, config))
	}
	return out
}

func validateOne(run *Run, issue knit.Issue, config *Config) (validated knit.Issue) {
	validated = issue.Clone()
	defer func() {
		if r := recover(); r != nil {
			validated = issue.Clone()
			validated.Status = knit.ValidationFailed
			run.addDiag("validate", fmt.Sprintf("validation panic on %s: %v", issue.ID(), r))
		}
	}()

	confidence, err := recheck(run, validated)
	if err != nil {
		validated.Status = knit.ValidationFailed
		run.addDiag("validate", fmt.Sprintf("validation of %s failed: %v", issue.ID(), err))
		return validated
	}

	validated.Confidence = clamp(confidence)
	switch {
	case validated.Confidence >= config.TruePositiveThreshold:
		validated.Status = knit.ValidatedTruePositive
	case validated.Confidence <= config.FalsePositiveThreshold:
		validated.Status = knit.ValidatedFalsePositive
	default:
		validated.Status = knit.NotValidated
	}
	return validated
}

func recheck(run *Run, issue knit.Issue) (float64, error) {
	switch issue.Type {
	case knit.CircularDependency:
		return recheckCircular(run, issue)
	case knit.AmbiguousProvider:
		return recheckAmbiguous(run, issue), nil
	case knit.UnresolvedDependency:
		return recheckUnresolved(run, issue)
	case knit.SingletonViolation:
		return recheckSingleton(run, issue), nil
	case knit.NamedQualifierMismatch:
		return recheckQualifier(run, issue)
	case knit.MissingComponentAnnotation:
		return recheckAnnotation(run, issue), nil
	}
	return 0, fmt.Errorf("no validation check for issue type %q", issue.Type)
}

// recheckCircular verifies the reported walk edge by edge, the closing edge
// included. Full presence confirms the cycle, missing edges dilute it.
func recheckCircular(run *Run, issue knit.Issue) (float64, error) {
	nodes := issue.Components
	if len(nodes) == 0 {
		return 0, errors.New("cycle issue without components")
	}
	g := run.Graph()
	present := 0
	for i := range nodes {
		if g.HasEdge(nodes[i], nodes[(i+1)%len(nodes)]) {
			present++
		}
	}
	return float64(present) / float64(len(nodes)), nil
}

// recheckAmbiguous recounts the strongest provider competition among the
// claimed components.
func recheckAmbiguous(run *Run, issue knit.Issue) float64 {
	owners := make(map[string]bool, len(issue.Components))
	for _, id := range issue.Components {
		owners[id] = true
	}
	best := 0
	for _, key := range run.ProviderKeys() {
		count := 0
		for _, ref := range run.Providers(key) {
			if owners[ref.Owner] {
				count++
			}
		}
		if count > best {
			best = count
		}
	}
	if best < 2 {
		return 0.1
	}
	confidence := 0.55 + 0.1*float64(best)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// recheckUnresolved re-resolves every dependency of the claimed consumer.
func recheckUnresolved(run *Run, issue knit.Issue) (float64, error) {
	if len(issue.Components) == 0 {
		return 0, errors.New("unresolved issue without a consumer")
	}
	component, ok := run.Component(issue.Components[0])
	if !ok {
		return 0, fmt.Errorf("unknown component %s", issue.Components[0])
	}
	for _, dep := range component.Dependencies {
		if len(run.Resolve(dep)) > 0 {
			continue
		}
		if len(run.ProvidersOfType(dep.TargetType)) > 0 {
			return 0.85, nil
		}
		return 0.95, nil
	}
	return 0.1, nil
}

// recheckSingleton recounts singleton providers owned by the claimed set.
func recheckSingleton(run *Run, issue knit.Issue) float64 {
	owners := make(map[string]bool, len(issue.Components))
	for _, id := range issue.Components {
		owners[id] = true
	}
	best := 0
	for _, typ := range run.SingletonTypes() {
		count := 0
		for _, ref := range run.SingletonProviders(typ) {
			if owners[ref.Owner] {
				count++
			}
		}
		if count > best {
			best = count
		}
	}
	if best < 2 {
		return 0.1
	}
	confidence := 0.70 + 0.05*float64(best)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// recheckQualifier confirms the consumer still has a named dependency the
// provided qualifiers cannot satisfy.
func recheckQualifier(run *Run, issue knit.Issue) (float64, error) {
	if len(issue.Components) == 0 {
		return 0, errors.New("qualifier issue without a consumer")
	}
	component, ok := run.Component(issue.Components[0])
	if !ok {
		return 0, fmt.Errorf("unknown component %s", issue.Components[0])
	}
	for _, dep := range component.Dependencies {
		if !dep.Named {
			continue
		}
		if len(run.Resolve(dep)) == 0 && len(run.ProvidersOfType(dep.TargetType)) > 0 {
			return 0.8, nil
		}
	}
	return 0.1, nil
}

// recheckAnnotation confirms the flagged component is part of the snapshot.
func recheckAnnotation(run *Run, issue knit.Issue) float64 {
	if len(issue.Components) == 0 {
		return 0.2
	}
	if _, ok := run.Component(issue.Components[0]); ok {
		return 0.75
	}
	return 0.2
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
