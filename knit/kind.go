package knit

// ComponentType classifies how a component participates in wiring.
type ComponentType string

const (
	TypeComponent ComponentType = "COMPONENT"
	TypeProvider  ComponentType = "PROVIDER"
	TypeConsumer  ComponentType = "CONSUMER"
	TypeComposite ComponentType = "COMPOSITE" // declares providers and consumes dependencies
)

// Known reports whether t is one of the declared component types.
func (t ComponentType) Known() bool {
	switch t {
	case TypeComponent, TypeProvider, TypeConsumer, TypeComposite:
		return true
	}
	return false
}

// Severity ranks how serious a wiring issue is.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Rank returns an ordering weight, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// ValidationStatus records the outcome of confidence validation for an issue.
type ValidationStatus string

const (
	NotValidated           ValidationStatus = "NOT_VALIDATED"
	ValidatedTruePositive  ValidationStatus = "VALIDATED_TRUE_POSITIVE"
	ValidatedFalsePositive ValidationStatus = "VALIDATED_FALSE_POSITIVE"
	ValidationFailed       ValidationStatus = "VALIDATION_FAILED"
)
