package callindex

import (
	"reflect"
	"testing"

	"cgraph/internal/lang"
)

func twoFileFacts() []*lang.FileFacts {
	return []*lang.FileFacts{
		{
			Path:     "a.js",
			Language: lang.LangJavaScript,
			Functions: []lang.FunctionRecord{
				{Name: "shared", File: "a.js", Line: 1, Column: 1, Kind: lang.KindFunction},
				{Name: "alpha", File: "a.js", Line: 10, Column: 1, Kind: lang.KindFunction},
			},
			Calls: []lang.CallSite{
				{Caller: "alpha", Callee: "shared", FullExpression: "shared", File: "a.js", Line: 11, Column: 3, Shape: lang.ShapeDirect},
				{Caller: "alpha", Callee: "shared", FullExpression: "shared", File: "a.js", Line: 12, Column: 3, Shape: lang.ShapeDirect},
				{Caller: "alpha", Callee: "console.log", FullExpression: "console.log", File: "a.js", Line: 13, Column: 3, Shape: lang.ShapeProperty},
			},
		},
		{
			Path:     "b.js",
			Language: lang.LangJavaScript,
			Functions: []lang.FunctionRecord{
				{Name: "shared", File: "b.js", Line: 5, Column: 1, Kind: lang.KindFunction},
				{Name: "beta", File: "b.js", Line: 20, Column: 1, Kind: lang.KindFunction},
			},
			Calls: []lang.CallSite{
				{Caller: "beta", Callee: "alpha", FullExpression: "alpha", File: "b.js", Line: 21, Column: 3, Shape: lang.ShapeDirect},
			},
		},
	}
}

func TestCanonicalFirstFound(t *testing.T) {
	idx := NewIndex(twoFileFacts())

	rec, ok := idx.Canonical("shared")
	if !ok {
		t.Fatal("shared should resolve")
	}
	if rec.File != "a.js" {
		t.Errorf("canonical definition should be the first found, got %s", rec.File)
	}
	if len(idx.Definitions("shared")) != 2 {
		t.Errorf("expected 2 definitions of shared, got %d", len(idx.Definitions("shared")))
	}
}

func TestFunctionNames(t *testing.T) {
	idx := NewIndex(twoFileFacts())

	want := []string{"alpha", "beta", "shared"}
	if got := idx.FunctionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FunctionNames: got %v, want %v", got, want)
	}

	if got := idx.FunctionNamesWithPrefix("al"); !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Errorf("prefix al: got %v", got)
	}
}

func TestCalleesAndCallers(t *testing.T) {
	idx := NewIndex(twoFileFacts())

	if got := len(idx.Callees("alpha")); got != 3 {
		t.Errorf("alpha call sites: got %d, want 3", got)
	}
	if got := len(idx.Callers("shared")); got != 2 {
		t.Errorf("shared incoming sites: got %d, want 2", got)
	}
	if idx.FileCount() != 2 {
		t.Errorf("fileCount: got %d, want 2", idx.FileCount())
	}
}

func TestForwardNameMapDedupAndDeny(t *testing.T) {
	idx := NewIndex(twoFileFacts())
	deny := func(callee, fullExpr string) bool { return callee == "console.log" }

	forward := idx.ForwardNameMap(deny)

	// Two call sites to shared collapse to one name; console.log is denied.
	if !reflect.DeepEqual(forward["alpha"], []string{"shared"}) {
		t.Errorf("forward[alpha]: got %v, want [shared]", forward["alpha"])
	}
}

func TestCallerNameMap(t *testing.T) {
	idx := NewIndex(twoFileFacts())

	callers := idx.CallerNameMap(nil)
	if !reflect.DeepEqual(callers["shared"], []string{"alpha"}) {
		t.Errorf("callers[shared]: got %v, want [alpha]", callers["shared"])
	}
	if !reflect.DeepEqual(callers["alpha"], []string{"beta"}) {
		t.Errorf("callers[alpha]: got %v, want [beta]", callers["alpha"])
	}
}
