package lang

import (
	"context"
	"testing"
)

const jsSample = `
function outer() {
  helper();
  obj.method();
  fetch("/api").then(handle);
}

const arrow = () => {
  outer();
};

function helper() {}
`

func TestExtractJavaScript(t *testing.T) {
	e := NewExtractor()

	facts, err := e.ExtractSource(context.Background(), "sample.js", []byte(jsSample), LangJavaScript)
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}

	byName := map[string]FunctionRecord{}
	for _, fn := range facts.Functions {
		byName[fn.Name] = fn
	}

	for _, want := range []string{"outer", "arrow", "helper"} {
		if _, ok := byName[want]; !ok {
			t.Errorf("missing function %s in %v", want, facts.Functions)
		}
	}
	if byName["arrow"].Kind != KindClosure {
		t.Errorf("arrow should be a closure, got %s", byName["arrow"].Kind)
	}
	if byName["outer"].Kind != KindFunction {
		t.Errorf("outer should be a function, got %s", byName["outer"].Kind)
	}

	type edge struct{ caller, callee string }
	edges := map[edge]CallSite{}
	for _, call := range facts.Calls {
		edges[edge{call.Caller, call.Callee}] = call
	}

	if _, ok := edges[edge{"outer", "helper"}]; !ok {
		t.Errorf("missing outer->helper call in %v", facts.Calls)
	}
	if site, ok := edges[edge{"outer", "method"}]; !ok {
		t.Error("missing outer->method property call")
	} else if site.Shape != ShapeProperty {
		t.Errorf("obj.method() should be a property call, got %s", site.Shape)
	}
	if site, ok := edges[edge{"outer", "then"}]; !ok {
		t.Error("missing outer->then chained call")
	} else if site.Shape != ShapeChained {
		t.Errorf("fetch().then() should be a chained call, got %s", site.Shape)
	}
	if _, ok := edges[edge{"arrow", "outer"}]; !ok {
		t.Error("calls inside an assigned arrow function should attribute to its name")
	}
}

const pySample = `
class Service:
    def run(self):
        self.step()

def top():
    print("x")
    work()
`

func TestExtractPython(t *testing.T) {
	e := NewExtractor()

	facts, err := e.ExtractSource(context.Background(), "sample.py", []byte(pySample), LangPython)
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}

	byName := map[string]FunctionRecord{}
	for _, fn := range facts.Functions {
		byName[fn.Name] = fn
	}

	if byName["run"].Kind != KindMethod {
		t.Errorf("run should be a method, got %s", byName["run"].Kind)
	}
	if byName["top"].Kind != KindFunction {
		t.Errorf("top should be a function, got %s", byName["top"].Kind)
	}

	var sawWork bool
	for _, call := range facts.Calls {
		if call.Caller == "top" && call.Callee == "work" {
			sawWork = true
		}
	}
	if !sawWork {
		t.Errorf("missing top->work call in %v", facts.Calls)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor()

	if _, err := e.ExtractFile(context.Background(), "README.md"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
