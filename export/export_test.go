package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitlab/knitscope/graph"
	"github.com/knitlab/knitscope/knit"
)

func pairGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(&graph.Node{ID: "com.shop.OrderService", Label: "OrderService", Type: graph.NodeComponent, Package: "com.shop", SourceFile: "com/shop/OrderService.kt", DependencyCount: 1})
	g.AddNode(&graph.Node{ID: "com.shop.InventoryService", Label: "InventoryService", Type: graph.NodeComponent, Package: "com.shop", SourceFile: "com/shop/InventoryService.kt", DependencyCount: 1})
	g.AddEdge(&graph.Edge{From: "com.shop.OrderService", To: "com.shop.InventoryService", Type: graph.EdgeDependency, Label: "InventoryService"})
	g.AddEdge(&graph.Edge{From: "com.shop.InventoryService", To: "com.shop.OrderService", Type: graph.EdgeDependency, Label: "OrderService"})
	return g
}

func pairReport() graph.CycleReport {
	cycle := graph.CyclePath{
		ID:     "cycle_0",
		Path:   []string{"com.shop.InventoryService", "com.shop.OrderService", "com.shop.InventoryService"},
		Nodes:  []string{"com.shop.InventoryService", "com.shop.OrderService"},
		Edges:  []string{knit.EdgeID("com.shop.InventoryService", "com.shop.OrderService"), knit.EdgeID("com.shop.OrderService", "com.shop.InventoryService")},
		Length: 2,
	}
	return graph.CycleReport{Cycles: []graph.CyclePath{cycle}, Shortest: &cycle, Longest: &cycle, DistinctNodes: 2}
}

func cycleIssue() knit.Issue {
	return knit.Issue{
		Type:       knit.CircularDependency,
		Severity:   knit.SeverityError,
		Message:    "circular dependency: InventoryService -> OrderService -> InventoryService",
		Components: []string{"com.shop.InventoryService", "com.shop.OrderService"},
		Confidence: 0.9,
		Status:     knit.ValidatedTruePositive,
	}
}

func TestBuild_RequiresGraph(t *testing.T) {
	document, err := Build(nil, nil, graph.CycleReport{}, Metadata{})
	require.Error(t, err)
	assert.Nil(t, document)
}

func TestBuild_EmptyGraph(t *testing.T) {
	metadata := Metadata{ProjectName: "demo", AnalysisTimestamp: "2026-01-05T10:00:00Z", KnitVersion: "0.9.1", PluginVersion: "0.4.2"}

	document, err := Build(graph.New(), nil, graph.CycleReport{}, metadata)
	require.NoError(t, err)

	assert.NotNil(t, document.Graph.Nodes)
	assert.NotNil(t, document.Graph.Edges)
	assert.NotNil(t, document.ErrorContext.Cycles)
	assert.NotNil(t, document.ErrorContext.IssueDetails)
	assert.Empty(t, document.Graph.Nodes)
	assert.Empty(t, document.Graph.Edges)
	assert.EqualValues(t, 0, document.ErrorContext.TotalErrors)
	assert.EqualValues(t, 0, document.ErrorContext.TotalWarnings)
	assert.EqualValues(t, metadata, document.Metadata)
}

func TestBuild_NodeHighlighting(t *testing.T) {
	g := graph.New()
	g.AddNode(&graph.Node{ID: "com.app.CleanService", Label: "CleanService", Type: graph.NodeComponent, Package: "com.app"})
	g.AddNode(&graph.Node{ID: "com.app.BrokenService", Label: "BrokenService", Type: graph.NodeComponent, Package: "com.app"})
	g.AddNode(&graph.Node{ID: "com.app.SmellyService", Label: "SmellyService", Type: graph.NodeComponent, Package: "com.app"})
	issues := []knit.Issue{
		{Type: knit.UnresolvedDependency, Severity: knit.SeverityError, Components: []string{"com.app.BrokenService"}},
		{Type: knit.MissingComponentAnnotation, Severity: knit.SeverityWarning, Components: []string{"com.app.SmellyService"}},
	}

	document, err := Build(g, issues, graph.CycleReport{}, Metadata{})
	require.NoError(t, err)
	require.Len(t, document.Graph.Nodes, 3)

	clean := document.Graph.Nodes[0]
	assert.False(t, clean.ErrorHighlight.HasErrors)
	assert.Empty(t, clean.ErrorHighlight.ErrorTypes)
	assert.Equal(t, "#28a745", clean.ErrorHighlight.VisualHints.BorderColor)
	assert.Equal(t, "#f8fff9", clean.ErrorHighlight.VisualHints.BackgroundColor)
	assert.EqualValues(t, 1, clean.ErrorHighlight.VisualHints.BorderWidth)
	assert.EqualValues(t, []string{"node-healthy"}, clean.ErrorHighlight.VisualHints.Classes)

	broken := document.Graph.Nodes[1]
	assert.True(t, broken.ErrorHighlight.HasErrors)
	assert.Equal(t, "ERROR", broken.ErrorHighlight.ErrorSeverity)
	assert.EqualValues(t, []string{"UNRESOLVED_DEPENDENCY"}, broken.ErrorHighlight.ErrorTypes)
	assert.EqualValues(t, 1, broken.Metadata.IssueCount)
	assert.Equal(t, "#ff0000", broken.ErrorHighlight.VisualHints.BorderColor)
	assert.Equal(t, "#ffeeee", broken.ErrorHighlight.VisualHints.BackgroundColor)
	assert.EqualValues(t, 3, broken.ErrorHighlight.VisualHints.BorderWidth)
	assert.EqualValues(t, []string{"node-error"}, broken.ErrorHighlight.VisualHints.Classes)

	smelly := document.Graph.Nodes[2]
	assert.False(t, smelly.ErrorHighlight.HasErrors) // warnings highlight without counting as errors
	assert.Equal(t, "WARNING", smelly.ErrorHighlight.ErrorSeverity)
	assert.Equal(t, "#ff8c00", smelly.ErrorHighlight.VisualHints.BorderColor)
	assert.Equal(t, "#fff8e1", smelly.ErrorHighlight.VisualHints.BackgroundColor)
	assert.EqualValues(t, 2, smelly.ErrorHighlight.VisualHints.BorderWidth)
	assert.EqualValues(t, []string{"node-warning"}, smelly.ErrorHighlight.VisualHints.Classes)
}

func TestBuild_CycleHighlighting(t *testing.T) {
	document, err := Build(pairGraph(), []knit.Issue{cycleIssue()}, pairReport(), Metadata{})
	require.NoError(t, err)

	for _, node := range document.Graph.Nodes {
		assert.True(t, node.ErrorHighlight.IsPartOfCycle, node.ID)
		assert.Equal(t, "cycle_0", node.ErrorHighlight.CycleID, node.ID)
		assert.Contains(t, node.ErrorHighlight.VisualHints.Classes, "cycle-member", node.ID)
		assert.Equal(t, node.Label, node.ClassName)
	}

	require.Len(t, document.Graph.Edges, 2)
	for _, edge := range document.Graph.Edges {
		assert.True(t, edge.ErrorHighlight.IsPartOfCycle, edge.ID)
		assert.Equal(t, "cycle_0", edge.ErrorHighlight.CycleID, edge.ID)
		assert.Equal(t, "dashed", edge.ErrorHighlight.VisualHints.Style, edge.ID)
		assert.Equal(t, "#ff0000", edge.ErrorHighlight.VisualHints.Color, edge.ID)
		assert.EqualValues(t, 3, edge.ErrorHighlight.VisualHints.Width, edge.ID)
		assert.EqualValues(t, []string{"edge-error", "cycle-member"}, edge.ErrorHighlight.VisualHints.Classes, edge.ID)
	}

	require.Len(t, document.ErrorContext.Cycles, 1)
	view := document.ErrorContext.Cycles[0]
	assert.Equal(t, "cycle_0", view.ID)
	assert.Equal(t, "ERROR", view.Severity)
	assert.Len(t, view.Path, 3)
	assert.Len(t, view.NodeIDs, 2)
	assert.Len(t, view.EdgeIDs, 2)
}

func TestBuild_EdgeIdentifiers(t *testing.T) {
	document, err := Build(pairGraph(), nil, graph.CycleReport{}, Metadata{})
	require.NoError(t, err)

	require.Len(t, document.Graph.Edges, 2)
	first := document.Graph.Edges[0]
	assert.Equal(t, "com_shop_OrderService_to_com_shop_InventoryService", first.ID)
	assert.Equal(t, "com.shop.OrderService", first.From)
	assert.Equal(t, "com.shop.InventoryService", first.To)
	assert.Equal(t, "solid", first.ErrorHighlight.VisualHints.Style)
}

func TestBuild_ParallelEdgesCollapse(t *testing.T) {
	g := graph.New()
	g.AddNode(&graph.Node{ID: "com.db.MigrationRunner", Label: "MigrationRunner", Type: graph.NodeComponent, Package: "com.db"})
	g.AddNode(&graph.Node{ID: "com.db.DbModule", Label: "DbModule", Type: graph.NodeComponent, Package: "com.db"})
	g.AddEdge(&graph.Edge{From: "com.db.MigrationRunner", To: "com.db.DbModule", Type: graph.EdgeNamed, Label: "DataSource", Named: true, Qualifier: "primary"})
	g.AddEdge(&graph.Edge{From: "com.db.MigrationRunner", To: "com.db.DbModule", Type: graph.EdgeSingleton, Label: "TxManager", Singleton: true})

	document, err := Build(g, nil, graph.CycleReport{}, Metadata{})
	require.NoError(t, err)

	require.Len(t, document.Graph.Edges, 1)
	edge := document.Graph.Edges[0]
	assert.Equal(t, string(graph.EdgeNamed), edge.Type) // first edge decides the kind
	assert.Equal(t, "DataSource", edge.Label)
	assert.True(t, edge.Metadata.IsNamed)
	assert.Equal(t, "primary", edge.Metadata.NamedQualifier)
	assert.True(t, edge.Metadata.IsSingleton)
	assert.False(t, edge.Metadata.IsFactory)
}

func TestBuild_IssueDetails(t *testing.T) {
	g := pairGraph()
	g.AddNode(&graph.Node{ID: "com.pay.PaymentService", Label: "PaymentService", Type: graph.NodeComponent, Package: "com.pay", DependencyCount: 1})
	issues := []knit.Issue{
		cycleIssue(),
		{
			Type:         knit.UnresolvedDependency,
			Severity:     knit.SeverityError,
			Message:      "no provider for com.pay.PaymentGateway",
			Components:   []string{"com.pay.PaymentService"},
			SuggestedFix: "add a provider for com.pay.PaymentGateway",
			Confidence:   0.95,
			Status:       knit.ValidatedTruePositive,
		},
	}

	document, err := Build(g, issues, pairReport(), Metadata{})
	require.NoError(t, err)

	require.Len(t, document.ErrorContext.IssueDetails, 2)
	circular := document.ErrorContext.IssueDetails[0]
	assert.Equal(t, issues[0].ID(), circular.ID)
	assert.Equal(t, "CIRCULAR_DEPENDENCY", circular.Type)
	assert.EqualValues(t, pairReport().Cycles[0].Edges, circular.AffectedEdges) // cycle issues project onto the cycle walk
	assert.InDelta(t, 0.9, circular.ConfidenceScore, 1e-9)

	unresolved := document.ErrorContext.IssueDetails[1]
	assert.Equal(t, "UNRESOLVED_DEPENDENCY", unresolved.Type)
	assert.EqualValues(t, []string{"com.pay.PaymentService"}, unresolved.AffectedNodes)
	assert.Empty(t, unresolved.AffectedEdges) // single claimed node, no edge joins it to another claimed one
	assert.Equal(t, "add a provider for com.pay.PaymentGateway", unresolved.SuggestedFix)

	assert.EqualValues(t, 2, document.ErrorContext.TotalErrors)
	assert.EqualValues(t, 0, document.ErrorContext.TotalWarnings)
}

func TestBuild_LeavesInputsUntouched(t *testing.T) {
	g := pairGraph()
	issues := []knit.Issue{cycleIssue()}
	report := pairReport()

	before := make([]knit.Issue, 0, len(issues))
	for i := range issues {
		before = append(before, issues[i].Clone())
	}
	nodeCount, edgeCount := g.NodeCount(), g.EdgeCount()

	_, err := Build(g, issues, report, Metadata{})
	require.NoError(t, err)

	assert.EqualValues(t, before, issues)
	assert.EqualValues(t, nodeCount, g.NodeCount())
	assert.EqualValues(t, edgeCount, g.EdgeCount())
	assert.EqualValues(t, pairReport(), report)
}

func TestDocumentJSON_WireKeys(t *testing.T) {
	document, err := Build(pairGraph(), []knit.Issue{cycleIssue()}, pairReport(), Metadata{ProjectName: "shop", AnalysisTimestamp: "2026-01-05T10:00:00Z"})
	require.NoError(t, err)

	data, err := document.JSON()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "graph")
	assert.Contains(t, decoded, "errorContext")
	assert.Contains(t, decoded, "metadata")

	var view struct {
		Nodes []map[string]json.RawMessage `json:"nodes"`
		Edges []map[string]json.RawMessage `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(decoded["graph"], &view))
	require.NotEmpty(t, view.Nodes)
	for _, key := range []string{"id", "label", "type", "packageName", "className", "metadata", "errorHighlight"} {
		assert.Contains(t, view.Nodes[0], key)
	}
	require.NotEmpty(t, view.Edges)
	for _, key := range []string{"id", "source", "target", "type", "label", "metadata", "errorHighlight"} {
		assert.Contains(t, view.Edges[0], key)
	}
}
