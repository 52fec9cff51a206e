package analyzer

import (
	"strings"

	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

// BuildGraph constructs the dependency graph for a wiring snapshot without
// running the rest of the pipeline.
func BuildGraph(components []knit.Component) *graph.Graph {
	run := newRun(components)
	return run.buildGraph()
}

// buildGraph materializes nodes and edges from the cloned snapshot. An
// unresolvable dependency produces no edge and no error here, detection is
// the job of the detectors.
func (r *Run) buildGraph() *graph.Graph {
	g := graph.New()

	for _, id := range r.order {
		component := r.components[r.byID[id]]
		g.AddNode(&graph.Node{
			ID:              id,
			Label:           component.Name,
			Type:            nodeTypeFor(component.Type),
			Package:         component.Package,
			SourceFile:      component.SourceFile,
			DependencyCount: len(component.Dependencies),
			ProviderCount:   len(component.Providers),
		})
	}

	// Interface nodes for declared provision overrides, with PROVIDES edges
	// from the owning component.
	for _, id := range r.order {
		component := r.components[r.byID[id]]
		for _, provider := range component.Providers {
			if provider.ProvidesType == "" {
				continue
			}
			g.AddNode(&graph.Node{
				ID:      provider.ProvidesType,
				Label:   knit.SimpleName(provider.ProvidesType),
				Type:    graph.NodeInterface,
				Package: packageOf(provider.ProvidesType),
			})
			g.AddEdge(&graph.Edge{
				From:  id,
				To:    provider.ProvidesType,
				Type:  graph.EdgeProvides,
				Label: provider.Method,
			})
		}
	}

	for _, id := range r.order {
		component := r.components[r.byID[id]]
		for _, dep := range component.Dependencies {
			for _, ref := range r.Resolve(dep) {
				edge := &graph.Edge{
					From:      id,
					To:        ref.Owner,
					Type:      edgeKind(dep, ref.Provider),
					Label:     knit.SimpleName(dep.TargetType),
					Named:     dep.Named,
					Singleton: dep.Singleton,
					Factory:   dep.Factory,
				}
				if dep.Named {
					edge.Qualifier = dep.Qualifier
				}
				g.AddEdge(edge)
			}
		}
	}

	r.graph = g
	return g
}

// edgeKind classifies how a dependency edge is satisfied. Factory and named
// injection dominate, collection contribution and singleton scope follow.
func edgeKind(dep knit.Dependency, provider knit.Provider) graph.EdgeType {
	switch {
	case dep.Factory:
		return graph.EdgeFactory
	case dep.Named:
		return graph.EdgeNamed
	case provider.Collection():
		return graph.EdgeCollection
	case dep.Singleton:
		return graph.EdgeSingleton
	}
	return graph.EdgeDependency
}

func nodeTypeFor(componentType knit.ComponentType) graph.NodeType {
	if componentType == knit.TypeProvider {
		return graph.NodeProvider
	}
	return graph.NodeComponent
}

func packageOf(typ string) string {
	if idx := strings.LastIndex(typ, "."); idx > 0 {
		return typ[:idx]
	}
	return ""
}
