package export

import (
	"errors"
	"sort"
	"strings"

	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

// Build transforms an analyzed graph and its reconciled issues into the wire
// document. The transform is pure: no I/O, no clock, no logging, inputs are
// never mutated. A nil graph is a pipeline fault and aborts the run, an
// empty graph is a valid run and yields a document with empty collections.
func Build(g *graph.Graph, issues []knit.Issue, report graph.CycleReport, metadata Metadata) (*Document, error) {
	if g == nil {
		return nil, errors.New("no graph to export")
	}

	claims := make(map[string][]int) // node id -> indexes into issues
	for i := range issues {
		for _, id := range issues[i].Components {
			claims[id] = append(claims[id], i)
		}
	}

	document := &Document{
		Graph: GraphView{
			Nodes: make([]Node, 0, len(g.Nodes)),
			Edges: make([]Edge, 0, len(g.Edges)),
		},
		ErrorContext: ErrorContext{
			Cycles:       make([]CycleView, 0, len(report.Cycles)),
			IssueDetails: make([]IssueDetail, 0, len(issues)),
		},
		Metadata: metadata,
	}

	for _, node := range g.Nodes {
		claiming := claims[node.ID]
		severity := highestSeverity(issues, claiming)
		inCycle := report.Contains(node.ID)
		document.Graph.Nodes = append(document.Graph.Nodes, Node{
			ID:          node.ID,
			Label:       node.Label,
			Type:        string(node.Type),
			PackageName: node.Package,
			ClassName:   node.Label,
			Metadata: NodeMetadata{
				SourceFile:      node.SourceFile,
				DependencyCount: node.DependencyCount,
				ProviderCount:   node.ProviderCount,
				IssueCount:      len(claiming),
			},
			ErrorHighlight: NodeHighlight{
				HasErrors:     severity == knit.SeverityError,
				ErrorSeverity: string(severity),
				ErrorTypes:    issueTypes(issues, claiming),
				IsPartOfCycle: inCycle,
				CycleID:       report.CycleOf(node.ID),
				VisualHints:   nodeHints(severity, inCycle),
			},
		})
	}

	for _, pair := range mergeParallel(g.Edges) {
		edgeID := knit.EdgeID(pair.from, pair.to)
		shared := sharedIssues(issues, pair.from, pair.to)
		severity := highestSeverity(issues, shared)
		cycleID := report.CycleOfEdge(edgeID)
		document.Graph.Edges = append(document.Graph.Edges, Edge{
			ID:       edgeID,
			From:     pair.from,
			To:       pair.to,
			Type:     string(pair.kind),
			Label:    pair.label,
			Metadata: pair.metadata,
			ErrorHighlight: EdgeHighlight{
				HasErrors:     severity == knit.SeverityError,
				ErrorSeverity: string(severity),
				ErrorTypes:    issueTypes(issues, shared),
				IsPartOfCycle: cycleID != "",
				CycleID:       cycleID,
				VisualHints:   edgeHints(severity, cycleID != ""),
			},
		})
	}

	for _, issue := range issues {
		switch issue.Severity {
		case knit.SeverityError:
			document.ErrorContext.TotalErrors++
		case knit.SeverityWarning:
			document.ErrorContext.TotalWarnings++
		}
	}

	for _, cycle := range report.Cycles {
		document.ErrorContext.Cycles = append(document.ErrorContext.Cycles, CycleView{
			ID:       cycle.ID,
			Path:     append([]string{}, cycle.Path...),
			NodeIDs:  append([]string{}, cycle.Nodes...),
			EdgeIDs:  append([]string{}, cycle.Edges...),
			Severity: string(knit.SeverityError),
		})
	}

	for i := range issues {
		issue := &issues[i]
		document.ErrorContext.IssueDetails = append(document.ErrorContext.IssueDetails, IssueDetail{
			ID:              issue.ID(),
			Type:            string(issue.Type),
			Severity:        string(issue.Severity),
			Message:         issue.Message,
			AffectedNodes:   append([]string{}, issue.Components...),
			AffectedEdges:   affectedEdges(g, report, issue),
			SuggestedFix:    issue.SuggestedFix,
			ConfidenceScore: issue.Confidence,
		})
	}

	return document, nil
}

type mergedEdge struct {
	from     string
	to       string
	kind     graph.EdgeType
	label    string
	metadata EdgeMetadata
}

// mergeParallel collapses parallel graph edges into one wire edge per
// endpoint pair, kind and label come from the first edge, the wiring flags
// union over all of them.
func mergeParallel(edges []*graph.Edge) []mergedEdge {
	var order []string
	byPair := make(map[string]int)
	var merged []mergedEdge

	for _, edge := range edges {
		key := edge.From + "|" + edge.To
		idx, ok := byPair[key]
		if !ok {
			merged = append(merged, mergedEdge{
				from:  edge.From,
				to:    edge.To,
				kind:  edge.Type,
				label: edge.Label,
			})
			idx = len(merged) - 1
			byPair[key] = idx
			order = append(order, key)
		}
		m := &merged[idx]
		if edge.Named {
			m.metadata.IsNamed = true
			if m.metadata.NamedQualifier == "" {
				m.metadata.NamedQualifier = edge.Qualifier
			}
		}
		if edge.Singleton {
			m.metadata.IsSingleton = true
		}
		if edge.Factory {
			m.metadata.IsFactory = true
		}
	}

	out := make([]mergedEdge, 0, len(order))
	for _, key := range order {
		out = append(out, merged[byPair[key]])
	}
	return out
}

// highestSeverity returns the strongest severity among the given issues.
func highestSeverity(issues []knit.Issue, indexes []int) knit.Severity {
	var top knit.Severity
	for _, idx := range indexes {
		if issues[idx].Severity.Rank() > top.Rank() {
			top = issues[idx].Severity
		}
	}
	return top
}

// issueTypes returns the sorted distinct issue types among the given issues.
func issueTypes(issues []knit.Issue, indexes []int) []string {
	if len(indexes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(indexes))
	var types []string
	for _, idx := range indexes {
		t := string(issues[idx].Type)
		if seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// sharedIssues returns the indexes of issues naming both edge endpoints.
func sharedIssues(issues []knit.Issue, from, to string) []int {
	var shared []int
	for i := range issues {
		if issues[i].Names(from) && issues[i].Names(to) {
			shared = append(shared, i)
		}
	}
	return shared
}

// affectedEdges projects an issue onto graph edges. Cycle issues map to the
// edge ids of their reported cycle, everything else maps to edges whose
// endpoints are both claimed.
func affectedEdges(g *graph.Graph, report graph.CycleReport, issue *knit.Issue) []string {
	out := make([]string, 0)
	if issue.Type == knit.CircularDependency {
		wanted := nodeSetKey(issue.Components)
		for _, cycle := range report.Cycles {
			if nodeSetKey(cycle.Nodes) == wanted {
				return append(out, cycle.Edges...)
			}
		}
		return out
	}

	seen := make(map[string]bool)
	for _, edge := range g.Edges {
		if !issue.Names(edge.From) || !issue.Names(edge.To) {
			continue
		}
		id := knit.EdgeID(edge.From, edge.To)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func nodeSetKey(nodes []string) string {
	sorted := make([]string, len(nodes))
	copy(sorted, nodes)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
