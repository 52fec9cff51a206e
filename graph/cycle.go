package graph

import (
	"sort"
	"strings"
)

// Cycle is a closed dependency walk, nodes are listed in discovery order and
// the first node is not repeated at the end.
type Cycle struct {
	Nodes []string
}

// Len returns the number of distinct nodes on the cycle.
func (c Cycle) Len() int {
	return len(c.Nodes)
}

// Key returns a canonical identity for the cycle, insensitive to rotation
// and discovery order.
func (c Cycle) Key() string {
	sorted := make([]string, len(c.Nodes))
	copy(sorted, c.Nodes)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// Walk returns the closed path, the first node repeated at the end.
func (c Cycle) Walk() []string {
	if len(c.Nodes) == 0 {
		return nil
	}
	walk := make([]string, 0, len(c.Nodes)+1)
	walk = append(walk, c.Nodes...)
	walk = append(walk, c.Nodes[0])
	return walk
}

// CyclePath describes one reported cycle with its graph projection.
type CyclePath struct {
	ID     string   `json:"id"`
	Path   []string `json:"path"`    // closed walk, first node repeated at the end
	Nodes  []string `json:"nodeIds"` // distinct member nodes
	Edges  []string `json:"edgeIds"` // edge ids along the walk
	Length int      `json:"length"`  // distinct node count
}

// CycleReport aggregates every discovered cycle.
type CycleReport struct {
	Cycles        []CyclePath `json:"cycles"`
	Shortest      *CyclePath  `json:"shortest,omitempty"`
	Longest       *CyclePath  `json:"longest,omitempty"`
	DistinctNodes int         `json:"distinctNodes"` // nodes on at least one cycle
}

// HasCycles reports whether the report contains at least one cycle.
func (r CycleReport) HasCycles() bool {
	return len(r.Cycles) > 0
}

// Contains reports whether the given node is part of any reported cycle.
func (r CycleReport) Contains(nodeID string) bool {
	return r.CycleOf(nodeID) != ""
}

// CycleOf returns the id of the first reported cycle containing the node,
// empty when the node is on no cycle.
func (r CycleReport) CycleOf(nodeID string) string {
	for _, cycle := range r.Cycles {
		for _, id := range cycle.Nodes {
			if id == nodeID {
				return cycle.ID
			}
		}
	}
	return ""
}

// CycleOfEdge returns the id of the first reported cycle containing the edge,
// empty when the edge is on no cycle.
func (r CycleReport) CycleOfEdge(edgeID string) string {
	for _, cycle := range r.Cycles {
		for _, id := range cycle.Edges {
			if id == edgeID {
				return cycle.ID
			}
		}
	}
	return ""
}
