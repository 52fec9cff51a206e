package analyzer

import (
	"sort"

	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

// dfsFrame is one entry of the explicit traversal stack, next points at the
// first unvisited neighbor. Recursion is never used here, adversarial
// dependency chains must not be able to exhaust the goroutine stack.
type dfsFrame struct {
	id   string
	next int
}

// HasCycles reports whether the graph contains at least one dependency cycle.
func HasCycles(g *graph.Graph) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, g.NodeCount())

	for _, root := range g.Nodes {
		if color[root.ID] != white {
			continue
		}
		stack := []dfsFrame{{id: root.ID}}
		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			if frame.next == 0 {
				color[frame.id] = gray
			}
			neighbors := g.Adjacency(frame.id)
			pushed := false
			for frame.next < len(neighbors) {
				neighbor := neighbors[frame.next]
				frame.next++
				if color[neighbor] == gray {
					return true
				}
				if color[neighbor] == white {
					stack = append(stack, dfsFrame{id: neighbor})
					pushed = true
					break
				}
			}
			if pushed {
				continue
			}
			color[frame.id] = black
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

// FindCycles enumerates dependency cycles by extracting the active path
// segment whenever a traversal meets a node already on its path. Rotations
// of the same cycle collapse through the canonical node-set key. Self-loops
// surface as single-node cycles.
func FindCycles(g *graph.Graph) []graph.Cycle {
	var cycles []graph.Cycle
	seen := make(map[string]bool)

	for _, start := range g.Nodes {
		visited := make(map[string]bool, g.NodeCount())
		onPath := make(map[string]int)
		var path []string

		stack := []dfsFrame{{id: start.ID}}
		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			if frame.next == 0 {
				onPath[frame.id] = len(path)
				path = append(path, frame.id)
				visited[frame.id] = true
			}
			neighbors := g.Adjacency(frame.id)
			pushed := false
			for frame.next < len(neighbors) {
				neighbor := neighbors[frame.next]
				frame.next++
				if pos, ok := onPath[neighbor]; ok {
					cycle := graph.Cycle{Nodes: append([]string{}, path[pos:]...)}
					if key := cycle.Key(); !seen[key] {
						seen[key] = true
						cycles = append(cycles, cycle)
					}
					continue
				}
				if visited[neighbor] {
					continue
				}
				stack = append(stack, dfsFrame{id: neighbor})
				pushed = true
				break
			}
			if pushed {
				continue
			}
			delete(onPath, frame.id)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return cycles
}

// StronglyConnected computes the strongly connected components of the graph
// with an iterative Tarjan pass and keeps only the non-trivial ones, groups
// of two or more nodes plus single nodes carrying a self-loop.
func StronglyConnected(g *graph.Graph) [][]string {
	index := 0
	indexes := make(map[string]int, g.NodeCount())
	lowlink := make(map[string]int, g.NodeCount())
	onStack := make(map[string]bool, g.NodeCount())
	var tarjanStack []string
	var components [][]string

	for _, root := range g.Nodes {
		if _, ok := indexes[root.ID]; ok {
			continue
		}
		stack := []dfsFrame{{id: root.ID}}
		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			if frame.next == 0 {
				indexes[frame.id] = index
				lowlink[frame.id] = index
				index++
				tarjanStack = append(tarjanStack, frame.id)
				onStack[frame.id] = true
			}
			neighbors := g.Adjacency(frame.id)
			pushed := false
			for frame.next < len(neighbors) {
				neighbor := neighbors[frame.next]
				frame.next++
				if _, ok := indexes[neighbor]; !ok {
					stack = append(stack, dfsFrame{id: neighbor})
					pushed = true
					break
				}
				if onStack[neighbor] && indexes[neighbor] < lowlink[frame.id] {
					lowlink[frame.id] = indexes[neighbor]
				}
			}
			if pushed {
				continue
			}
			if lowlink[frame.id] == indexes[frame.id] {
				var component []string
				for {
					top := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[top] = false
					component = append(component, top)
					if top == frame.id {
						break
					}
				}
				for left, right := 0, len(component)-1; left < right; left, right = left+1, right-1 {
					component[left], component[right] = component[right], component[left]
				}
				components = append(components, component)
			}
			finished := frame.id
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if lowlink[finished] < lowlink[parent.id] {
					lowlink[parent.id] = lowlink[finished]
				}
			}
		}
	}

	var out [][]string
	for _, component := range components {
		if len(component) > 1 || g.HasEdge(component[0], component[0]) {
			out = append(out, component)
		}
	}
	return out
}

// BuildCycleReport aggregates enumerated cycles into the report consumed by
// the detectors and the exporter. Cycles are ordered shortest first with the
// canonical key as tie-breaker, so cycle ids are stable across runs and
// insensitive to discovery order.
func BuildCycleReport(g *graph.Graph, cycles []graph.Cycle) graph.CycleReport {
	ordered := make([]graph.Cycle, len(cycles))
	copy(ordered, cycles)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Len() != ordered[j].Len() {
			return ordered[i].Len() < ordered[j].Len()
		}
		return ordered[i].Key() < ordered[j].Key()
	})

	report := graph.CycleReport{Cycles: make([]graph.CyclePath, 0, len(ordered))}
	for i, cycle := range ordered {
		walk := cycle.Walk()
		edges := make([]string, 0, len(walk))
		for k := 0; k+1 < len(walk); k++ {
			edges = append(edges, knit.EdgeID(walk[k], walk[k+1]))
		}
		report.Cycles = append(report.Cycles, graph.CyclePath{
			ID:     knit.CycleID(i),
			Path:   walk,
			Nodes:  append([]string{}, cycle.Nodes...),
			Edges:  edges,
			Length: cycle.Len(),
		})
	}

	if len(report.Cycles) > 0 {
		report.Shortest = &report.Cycles[0]
		longest := &report.Cycles[0]
		for i := range report.Cycles {
			if report.Cycles[i].Length > longest.Length {
				longest = &report.Cycles[i]
			}
		}
		report.Longest = longest
	}

	distinct := make(map[string]bool)
	for _, component := range StronglyConnected(g) {
		for _, id := range component {
			distinct[id] = true
		}
	}
	report.DistinctNodes = len(distinct)
	return report
}

// analyzeCycles runs cycle enumeration, the Tarjan pass and report
// aggregation over the built graph.
func (r *Run) analyzeCycles() {
	r.cycles = FindCycles(r.graph)
	r.sccs = StronglyConnected(r.graph)
	r.report = BuildCycleReport(r.graph, r.cycles)
}
