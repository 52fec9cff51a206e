package graph

import (
	"fmt"
)

// NodeType indicates what kind of wiring element a node stands for.
type NodeType string

const (
	NodeComponent NodeType = "COMPONENT"
	NodeProvider  NodeType = "PROVIDER"
	NodeInterface NodeType = "INTERFACE"
)

// EdgeType indicates how a dependency edge is satisfied.
type EdgeType string

const (
	EdgeDependency EdgeType = "DEPENDENCY"
	EdgeProvides   EdgeType = "PROVIDES"
	EdgeSingleton  EdgeType = "SINGLETON"
	EdgeNamed      EdgeType = "NAMED"
	EdgeFactory    EdgeType = "FACTORY"
	EdgeCollection EdgeType = "COLLECTION"
)

// Node represents a single element of the dependency graph.
type Node struct {
	ID         string   // canonical element id
	Label      string   // display name
	Type       NodeType // element kind
	Package    string   // declaring package
	SourceFile string   // origin file, optional

	DependencyCount int // declared dependencies of the backing component
	ProviderCount   int // declared providers of the backing component
}

// Edge represents a directed wiring relation between two nodes.
type Edge struct {
	From  string   // consumer node id
	To    string   // provider owner node id
	Type  EdgeType // resolution kind
	Label string   // display name, usually the target simple type

	Named     bool   // qualifier participated in the match
	Qualifier string // matched qualifier, when named
	Singleton bool   // consumer expects singleton scope
	Factory   bool   // injected as a factory
}

// Graph is a directed dependency graph with deterministic insertion order.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	nodeMap   map[string]int   // node id -> Nodes index
	edgeMap   map[string]int   // from|type|to -> Edges index
	adjacency map[string][]int // node id -> outgoing Edges indexes
	incoming  map[string][]int // node id -> incoming Edges indexes
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodeMap:   make(map[string]int),
		edgeMap:   make(map[string]int),
		adjacency: make(map[string][]int),
		incoming:  make(map[string][]int),
	}
}

// AddNode inserts a node unless its id is already present, first insert wins.
func (g *Graph) AddNode(node *Node) bool {
	if node == nil || node.ID == "" {
		return false
	}
	if _, ok := g.nodeMap[node.ID]; ok {
		return false
	}
	g.Nodes = append(g.Nodes, node)
	g.nodeMap[node.ID] = len(g.Nodes) - 1
	return true
}

// Node retrieves a node by id.
func (g *Graph) Node(id string) *Node {
	if idx, ok := g.nodeMap[id]; ok {
		return g.Nodes[idx]
	}
	return nil
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeMap[id]
	return ok
}

// AddEdge inserts an edge, duplicate (from, type, to) triples collapse to the first.
func (g *Graph) AddEdge(edge *Edge) bool {
	if edge == nil || edge.From == "" || edge.To == "" {
		return false
	}
	key := edge.From + "|" + string(edge.Type) + "|" + edge.To
	if _, ok := g.edgeMap[key]; ok {
		return false
	}
	g.Edges = append(g.Edges, edge)
	idx := len(g.Edges) - 1
	g.edgeMap[key] = idx
	g.adjacency[edge.From] = append(g.adjacency[edge.From], idx)
	g.incoming[edge.To] = append(g.incoming[edge.To], idx)
	return true
}

// HasEdge reports whether any edge connects from to to.
func (g *Graph) HasEdge(from, to string) bool {
	for _, idx := range g.adjacency[from] {
		if g.Edges[idx].To == to {
			return true
		}
	}
	return false
}

// Adjacency returns the out-neighbor ids of a node in insertion order,
// repeated neighbors collapse to the first occurrence.
func (g *Graph) Adjacency(id string) []string {
	indexes := g.adjacency[id]
	if len(indexes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(indexes))
	out := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		to := g.Edges[idx].To
		if seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}

// OutEdges returns the outgoing edges of a node in insertion order.
func (g *Graph) OutEdges(id string) []*Edge {
	indexes := g.adjacency[id]
	if len(indexes) == 0 {
		return nil
	}
	out := make([]*Edge, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, g.Edges[idx])
	}
	return out
}

// InEdges returns the incoming edges of a node in insertion order.
func (g *Graph) InEdges(id string) []*Edge {
	indexes := g.incoming[id]
	if len(indexes) == 0 {
		return nil
	}
	out := make([]*Edge, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, g.Edges[idx])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Validate reports structural faults, dangling edge endpoints and blank ids.
// A non-empty result marks the graph as damaged, not the analyzed wiring.
func (g *Graph) Validate() []error {
	var faults []error
	for i, node := range g.Nodes {
		if node.ID == "" {
			faults = append(faults, fmt.Errorf("node %d has an empty id", i))
		}
	}
	for _, edge := range g.Edges {
		if !g.HasNode(edge.From) {
			faults = append(faults, fmt.Errorf("edge %s -> %s references unknown source node", edge.From, edge.To))
		}
		if !g.HasNode(edge.To) {
			faults = append(faults, fmt.Errorf("edge %s -> %s references unknown target node", edge.From, edge.To))
		}
	}
	return faults
}
