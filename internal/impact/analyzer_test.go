package impact

import (
	"context"
	"io"
	"strings"
	"testing"

	"cgraph/internal/callindex"
	"cgraph/internal/lang"
	"cgraph/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: "human",
		Level:  "error",
		Output: io.Discard,
	})
}

// hotspotIndex builds 5 callers -> target -> 5 callees. The synthetic file
// does not exist on disk, so complexity falls back to 1.
func hotspotIndex() *callindex.Index {
	facts := &lang.FileFacts{
		Path:     "missing.js",
		Language: lang.LangJavaScript,
	}

	names := []string{"target", "c1", "c2", "c3", "c4", "c5", "d1", "d2", "d3", "d4", "d5"}
	for i, name := range names {
		facts.Functions = append(facts.Functions, lang.FunctionRecord{
			Name: name, File: "missing.js", Line: i*10 + 1, Column: 1, Kind: lang.KindFunction,
		})
	}
	for _, caller := range []string{"c1", "c2", "c3", "c4", "c5"} {
		facts.Calls = append(facts.Calls, lang.CallSite{
			Caller: caller, Callee: "target", FullExpression: "target",
			File: "missing.js", Line: 2, Column: 3, Shape: lang.ShapeDirect,
		})
	}
	for _, callee := range []string{"d1", "d2", "d3", "d4", "d5"} {
		facts.Calls = append(facts.Calls, lang.CallSite{
			Caller: "target", Callee: callee, FullExpression: callee,
			File: "missing.js", Line: 3, Column: 3, Shape: lang.ShapeDirect,
		})
	}

	return callindex.NewIndex([]*lang.FileFacts{facts})
}

func TestAnalyzeHotspotScenario(t *testing.T) {
	analyzer := NewAnalyzer(hotspotIndex(), nil, testLogger())

	result, err := analyzer.Analyze(context.Background(), "target", 3)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !result.Complexity.IsHotspot {
		t.Error("5 callers and 5 callees should mark a hotspot")
	}
	if result.Complexity.FanIn != 5 || result.Complexity.FanOut != 5 {
		t.Errorf("fanIn/fanOut: got %d/%d, want 5/5",
			result.Complexity.FanIn, result.Complexity.FanOut)
	}
	if len(result.DirectCallers) != 5 {
		t.Errorf("directCallers: got %d, want 5", len(result.DirectCallers))
	}
	if result.TotalAffected != 5 {
		t.Errorf("totalAffected: got %d, want 5", result.TotalAffected)
	}

	found := false
	for _, s := range result.Suggestions {
		if s.Severity == 5 && strings.Contains(s.Message, "hotspot") {
			found = true
		}
	}
	if !found {
		t.Error("expected a severity-5 suggestion mentioning hotspot")
	}

	// 5*2 + (5-5) + 15 + 0 + 1/5 = 25
	if result.RiskScore != 25 {
		t.Errorf("riskScore: got %d, want 25", result.RiskScore)
	}
	if result.RiskLevel != RiskMedium {
		t.Errorf("riskLevel: got %s, want medium", result.RiskLevel)
	}
}

func TestAnalyzeUnknownFunction(t *testing.T) {
	analyzer := NewAnalyzer(hotspotIndex(), nil, testLogger())

	if _, err := analyzer.Analyze(context.Background(), "nope", 3); err == nil {
		t.Fatal("expected error for unknown function")
	}
}

func TestAnalyzeMutualRecursionReportsCycle(t *testing.T) {
	facts := &lang.FileFacts{Path: "missing.js", Language: lang.LangJavaScript}
	facts.Functions = []lang.FunctionRecord{
		{Name: "a", File: "missing.js", Line: 1, Column: 1, Kind: lang.KindFunction},
		{Name: "b", File: "missing.js", Line: 10, Column: 1, Kind: lang.KindFunction},
	}
	facts.Calls = []lang.CallSite{
		{Caller: "a", Callee: "b", FullExpression: "b", File: "missing.js", Line: 2, Column: 3, Shape: lang.ShapeDirect},
		{Caller: "b", Callee: "a", FullExpression: "a", File: "missing.js", Line: 11, Column: 3, Shape: lang.ShapeDirect},
	}
	idx := callindex.NewIndex([]*lang.FileFacts{facts})

	analyzer := NewAnalyzer(idx, nil, testLogger())
	result, err := analyzer.Analyze(context.Background(), "a", 5)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(result.CircularDependencies) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(result.CircularDependencies))
	}

	// One cycle adds 10: 1*2 + 0 + 0 + 10 + 0 = 12.
	if result.RiskScore != 12 {
		t.Errorf("riskScore: got %d, want 12", result.RiskScore)
	}
}
