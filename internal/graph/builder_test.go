package graph

import (
	"testing"

	"cgraph/internal/callindex"
	"cgraph/internal/lang"
)

// indexFromCalls builds a call index where every listed function is defined
// in a synthetic file and calls the named callees in order.
func indexFromCalls(t *testing.T, calls map[string][]string) *callindex.Index {
	t.Helper()

	facts := &lang.FileFacts{
		Path:     "app.js",
		Language: lang.LangJavaScript,
	}
	line := 1
	for name := range calls {
		facts.Functions = append(facts.Functions, lang.FunctionRecord{
			Name: name, File: "app.js", Line: line, Column: 1, Kind: lang.KindFunction,
		})
		line += 10
	}
	for caller, callees := range calls {
		for i, callee := range callees {
			facts.Calls = append(facts.Calls, lang.CallSite{
				Caller: caller, Callee: callee, FullExpression: callee,
				File: "app.js", Line: i + 2, Column: 3, Shape: lang.ShapeDirect,
			})
		}
	}

	return callindex.NewIndex([]*lang.FileFacts{facts})
}

func TestBuildCalleesLinearChain(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {},
	})

	g, err := NewBuilder(idx, nil).Build("a", 2, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(g.Nodes))
	}
	for _, name := range []string{"a", "b", "c"} {
		if _, ok := g.Nodes[name]; !ok {
			t.Errorf("missing node %s", name)
		}
	}

	wantEdges := [][2]string{{"a", "b"}, {"b", "c"}}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("expected %d edges, got %d", len(wantEdges), len(g.Edges))
	}
	for i, want := range wantEdges {
		if g.Edges[i].From != want[0] || g.Edges[i].To != want[1] {
			t.Errorf("edge %d: got %s->%s, want %s->%s",
				i, g.Edges[i].From, g.Edges[i].To, want[0], want[1])
		}
	}

	if len(g.Callees) != 1 || g.Callees[0] != "b" {
		t.Errorf("expected direct callees [b], got %v", g.Callees)
	}
}

func TestBuildCalleesSelfCycleTerminates(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"a"},
	})

	g, err := NewBuilder(idx, nil).Build("a", 5, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Nodes) != 1 {
		t.Errorf("expected 1 node, got %d", len(g.Nodes))
	}
}

func TestBuildCalleesMutualRecursionNoGrowth(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})

	g, err := NewBuilder(idx, nil).Build("a", 5, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Nodes) != 2 {
		t.Errorf("expected exactly 2 nodes, got %d", len(g.Nodes))
	}
}

func TestBuildCalleesDepthMonotonicity(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"d"},
		"d": {"e"},
		"e": {},
	})

	builder := NewBuilder(idx, nil)
	prev := 0
	for depth := 1; depth <= 5; depth++ {
		g, err := builder.Build("a", depth, DirectionCallees)
		if err != nil {
			t.Fatalf("Build depth=%d failed: %v", depth, err)
		}
		if len(g.Nodes) < prev {
			t.Errorf("depth %d: node count %d shrank below %d", depth, len(g.Nodes), prev)
		}
		prev = len(g.Nodes)
	}
}

func TestBuildCalleesDirectCalleeContainment(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"b", "c", "unknownFn"},
		"b": {},
		"c": {},
	})

	g, err := NewBuilder(idx, nil).Build("a", 3, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, callee := range g.Callees {
		found := false
		for _, e := range g.Edges {
			if e.From == "a" && e.To == callee {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("direct callee %s has no a->%s edge", callee, callee)
		}
	}
}

func TestBuildCalleesUnresolvableLeaf(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"externalFn"},
	})

	g, err := NewBuilder(idx, nil).Build("a", 3, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	node, ok := g.Nodes["externalFn"]
	if !ok {
		t.Fatal("unresolvable callee should still be a node")
	}
	if node.Resolved {
		t.Error("unresolvable callee should not be marked resolved")
	}
	if node.Line != 2 {
		t.Errorf("leaf node should sit at the call site, got line %d", node.Line)
	}
}

func TestBuildCalleesDenyListFilters(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"a": {"log", "b"},
		"b": {},
	})
	deny := func(callee, fullExpr string) bool { return callee == "log" }

	g, err := NewBuilder(idx, deny).Build("a", 2, DirectionCallees)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := g.Nodes["log"]; ok {
		t.Error("denied callee should not become a node")
	}
	if len(g.Callees) != 1 || g.Callees[0] != "b" {
		t.Errorf("expected direct callees [b], got %v", g.Callees)
	}
}

func TestFindCallersEdgeDedup(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"caller": {"target", "target", "target"},
		"target": {},
	})

	g, err := NewBuilder(idx, nil).Build("target", 2, DirectionCallers)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Edges) != 1 {
		t.Errorf("expected 1 deduplicated edge, got %d", len(g.Edges))
	}
	if g.Edges[0].From != "caller" || g.Edges[0].To != "target" {
		t.Errorf("edge should stay caller->callee oriented, got %s->%s",
			g.Edges[0].From, g.Edges[0].To)
	}
	if len(g.Callers) != 1 || g.Callers[0] != "caller" {
		t.Errorf("expected direct callers [caller], got %v", g.Callers)
	}
}

func TestBuildUnknownFunction(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{"a": {}})

	_, err := NewBuilder(idx, nil).Build("missing", 2, DirectionCallees)
	if err == nil {
		t.Fatal("expected error for unknown function")
	}
}

func TestBuildBothDirections(t *testing.T) {
	idx := indexFromCalls(t, map[string][]string{
		"up":   {"mid"},
		"mid":  {"down"},
		"down": {},
	})

	g, err := NewBuilder(idx, nil).Build("mid", 2, DirectionBoth)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Callers) != 1 || g.Callers[0] != "up" {
		t.Errorf("expected callers [up], got %v", g.Callers)
	}
	if len(g.Callees) != 1 || g.Callees[0] != "down" {
		t.Errorf("expected callees [down], got %v", g.Callees)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(g.Nodes))
	}
}
