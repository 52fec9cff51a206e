package analyzer

import (
	"fmt"
	"sort"

	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

// ProviderRef ties a provider declaration to the component that owns it.
type ProviderRef struct {
	Owner    string // owning component id
	Provider knit.Provider
}

// Run holds every transient structure of a single analysis pass: the cloned
// snapshot, the dependency graph, cycle results and the provider indexes.
// A Run is built once per Analyze call and discarded afterwards, nothing in
// this package survives a run or is shared between runs.
type Run struct {
	components []knit.Component
	order      []string       // component ids in input order, duplicates removed
	byID       map[string]int // component id -> components index

	providersByKey  map[string][]ProviderRef // provision key -> providers
	providersByType map[string][]ProviderRef // bare provision type -> providers
	qualifiers      map[string][]string      // bare provision type -> sorted distinct qualifiers
	singletons      map[string][]ProviderRef // bare provision type -> singleton providers
	providerKeys    []string                 // sorted keys of providersByKey
	singletonTypes  []string                 // sorted keys of singletons

	graph  *graph.Graph
	cycles []graph.Cycle
	sccs   [][]string
	report graph.CycleReport

	diags []Diagnostic
}

// newRun clones the input snapshot and builds the provider indexes. The graph
// and cycle results are populated by the pipeline stages.
func newRun(components []knit.Component) *Run {
	run := &Run{
		byID:            make(map[string]int),
		providersByKey:  make(map[string][]ProviderRef),
		providersByType: make(map[string][]ProviderRef),
		qualifiers:      make(map[string][]string),
		singletons:      make(map[string][]ProviderRef),
	}

	for i := range components {
		clone := components[i].Clone()
		if clone.Name == "" {
			run.addDiag("input", fmt.Sprintf("component %d has no class name, skipped", i))
			continue
		}
		id := clone.ID()
		if _, ok := run.byID[id]; ok {
			run.addDiag("input", fmt.Sprintf("duplicate component %s, first declaration wins", id))
			continue
		}
		run.components = append(run.components, clone)
		run.byID[id] = len(run.components) - 1
		run.order = append(run.order, id)
	}

	run.indexProviders()
	return run
}

func (r *Run) indexProviders() {
	qualifierSet := make(map[string]map[string]bool)

	for _, id := range r.order {
		component := r.components[r.byID[id]]

		// A component is injectable by its own type without declaring a
		// provider, constructor provision is implicit. An explicit provider
		// of the same type takes its place.
		selfProvided := false
		for _, provider := range component.Providers {
			if provider.ProvisionType() == id {
				selfProvided = true
				break
			}
		}
		if !selfProvided {
			ref := ProviderRef{Owner: id, Provider: knit.Provider{Method: "<init>", ReturnType: id}}
			r.providersByKey[id] = append(r.providersByKey[id], ref)
			r.providersByType[id] = append(r.providersByType[id], ref)
		}

		for _, provider := range component.Providers {
			ref := ProviderRef{Owner: id, Provider: provider}
			key := provider.Key()
			bare := provider.ProvisionType()

			r.providersByKey[key] = append(r.providersByKey[key], ref)
			r.providersByType[bare] = append(r.providersByType[bare], ref)
			if provider.Singleton {
				r.singletons[bare] = append(r.singletons[bare], ref)
			}
			if provider.Named && provider.Qualifier != "" {
				if qualifierSet[bare] == nil {
					qualifierSet[bare] = make(map[string]bool)
				}
				qualifierSet[bare][provider.Qualifier] = true
			}
		}
	}

	for bare, set := range qualifierSet {
		quals := make([]string, 0, len(set))
		for q := range set {
			quals = append(quals, q)
		}
		sort.Strings(quals)
		r.qualifiers[bare] = quals
	}

	r.providerKeys = sortedKeys(r.providersByKey)
	r.singletonTypes = sortedKeys(r.singletons)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Components returns the cloned snapshot in input order.
func (r *Run) Components() []knit.Component {
	return r.components
}

// ComponentIDs returns the component ids in input order.
func (r *Run) ComponentIDs() []string {
	return r.order
}

// Component retrieves a snapshot component by id.
func (r *Run) Component(id string) (*knit.Component, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return &r.components[idx], true
}

// Graph returns the dependency graph, nil before the build stage ran.
func (r *Run) Graph() *graph.Graph {
	return r.graph
}

// Cycles returns the enumerated dependency cycles.
func (r *Run) Cycles() []graph.Cycle {
	return r.cycles
}

// StronglyConnected returns the non-trivial strongly connected components.
func (r *Run) StronglyConnected() [][]string {
	return r.sccs
}

// Report returns the aggregated cycle report.
func (r *Run) Report() graph.CycleReport {
	return r.report
}

// Providers returns the providers registered under a provision key.
func (r *Run) Providers(key string) []ProviderRef {
	return r.providersByKey[key]
}

// ProvidersOfType returns every provider of a bare type, any qualifier.
func (r *Run) ProvidersOfType(typ string) []ProviderRef {
	return r.providersByType[typ]
}

// ProviderKeys returns every provision key in sorted order.
func (r *Run) ProviderKeys() []string {
	return r.providerKeys
}

// Qualifiers returns the sorted distinct qualifiers declared for a type.
func (r *Run) Qualifiers(typ string) []string {
	return r.qualifiers[typ]
}

// SingletonProviders returns the singleton-scoped providers of a type.
func (r *Run) SingletonProviders(typ string) []ProviderRef {
	return r.singletons[typ]
}

// SingletonTypes returns every type with at least one singleton provider, sorted.
func (r *Run) SingletonTypes() []string {
	return r.singletonTypes
}

// Resolve returns the providers matching a dependency's provision key.
func (r *Run) Resolve(dep knit.Dependency) []ProviderRef {
	return r.providersByKey[dep.Key()]
}

// prepare runs the graph and cycle stages, used when a Run is driven outside
// the full pipeline.
func (r *Run) prepare() {
	r.buildGraph()
	r.analyzeCycles()
}

// attachedIssues collects findings the extraction side attached to incoming
// components, normalized for reconciliation. Issues of unknown type are
// dropped with a diagnostic rather than failing the run.
func (r *Run) attachedIssues() []knit.Issue {
	var out []knit.Issue
	for _, id := range r.order {
		component := r.components[r.byID[id]]
		for _, issue := range component.Issues {
			if !issue.Type.Known() {
				r.addDiag("ingest", fmt.Sprintf("component %s carries issue of unknown type %q, dropped", id, issue.Type))
				continue
			}
			clone := issue.Clone()
			if len(clone.Components) == 0 {
				clone.Components = []string{id}
			}
			if clone.Severity == "" {
				clone.Severity = clone.Type.DefaultSeverity()
			}
			if clone.Status == "" {
				clone.Status = knit.NotValidated
			}
			out = append(out, clone)
		}
	}
	return out
}

func (r *Run) addDiag(stage, message string) {
	r.diags = append(r.diags, Diagnostic{Stage: stage, Message: message})
}
