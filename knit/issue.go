package knit

// IssueType identifies a category of wiring defect.
type IssueType string

const (
	CircularDependency         IssueType = "CIRCULAR_DEPENDENCY"
	AmbiguousProvider          IssueType = "AMBIGUOUS_PROVIDER"
	UnresolvedDependency       IssueType = "UNRESOLVED_DEPENDENCY"
	SingletonViolation         IssueType = "SINGLETON_VIOLATION"
	NamedQualifierMismatch     IssueType = "NAMED_QUALIFIER_MISMATCH"
	MissingComponentAnnotation IssueType = "MISSING_COMPONENT_ANNOTATION"
)

// Priority returns the reconciliation rank for the issue type, lower wins.
func (t IssueType) Priority() int {
	switch t {
	case CircularDependency:
		return 0
	case UnresolvedDependency:
		return 1
	case AmbiguousProvider:
		return 2
	case SingletonViolation:
		return 3
	case NamedQualifierMismatch:
		return 4
	case MissingComponentAnnotation:
		return 5
	}
	return 100
}

// Known reports whether t is one of the declared issue types.
func (t IssueType) Known() bool {
	return t.Priority() < 100
}

// DefaultSeverity returns the severity an issue of this type carries unless
// the producer set one explicitly.
func (t IssueType) DefaultSeverity() Severity {
	if t == MissingComponentAnnotation {
		return SeverityWarning
	}
	return SeverityError
}

// Issue represents a single wiring defect reported against one or more components.
type Issue struct {
	Type         IssueType        `json:"type" yaml:"type"`
	Severity     Severity         `json:"severity" yaml:"severity"`
	Message      string           `json:"message" yaml:"message"`
	Components   []string         `json:"components,omitempty" yaml:"components,omitempty"`       // component ids the issue claims
	SuggestedFix string           `json:"suggestedFix,omitempty" yaml:"suggestedFix,omitempty"`   // remediation hint
	Confidence   float64          `json:"confidenceScore" yaml:"confidenceScore"`                 // 0..1
	Status       ValidationStatus `json:"validationStatus,omitempty" yaml:"validationStatus,omitempty"`
}

// ID returns the deterministic identifier for the issue.
func (i *Issue) ID() string {
	return IssueID(i.Type, i.Components)
}

// Names reports whether the issue claims the given component id.
func (i *Issue) Names(componentID string) bool {
	for _, id := range i.Components {
		if id == componentID {
			return true
		}
	}
	return false
}

// Clone creates a copy of the issue with its own components slice.
func (i *Issue) Clone() Issue {
	out := *i
	if i.Components != nil {
		out.Components = make([]string, len(i.Components))
		copy(out.Components, i.Components)
	}
	return out
}
