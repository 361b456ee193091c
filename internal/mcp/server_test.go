package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"cgraph/internal/logging"
)

func testServer() *Server {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
	return NewServer("test", nil, logger)
}

func TestHandleInitialize(t *testing.T) {
	s := testServer()

	resp := s.handleMessage(&Message{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "initialize",
	})

	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok || info["name"] != "cgraph" {
		t.Errorf("serverInfo missing or wrong: %v", result)
	}
}

func TestHandleListTools(t *testing.T) {
	s := testServer()

	resp := s.handleMessage(&Message{Jsonrpc: "2.0", Id: 2, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]Tool)

	want := map[string]bool{
		"build_call_graph": false,
		"analyze_impact":   false,
		"list_functions":   false,
		"detect_cycles":    false,
	}
	for _, tool := range tools {
		if _, ok := want[tool.Name]; ok {
			want[tool.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not listed", name)
		}
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s := testServer()

	resp := s.handleMessage(&Message{Jsonrpc: "2.0", Id: 3, Method: "bogus/method"})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != MethodNotFound {
		t.Errorf("code: got %d, want %d", resp.Error.Code, MethodNotFound)
	}
}

func TestHandleUnknownTool(t *testing.T) {
	s := testServer()

	resp := s.handleMessage(&Message{
		Jsonrpc: "2.0",
		Id:      4,
		Method:  "tools/call",
		Params:  map[string]interface{}{"name": "no_such_tool"},
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response for unknown tool")
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	s := testServer()

	resp := s.handleMessage(&Message{Jsonrpc: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notifications must not produce responses, got %+v", resp)
	}
}

func TestMessageLoopOverStdio(t *testing.T) {
	s := testServer()

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	var out bytes.Buffer
	s.SetStdin(in)
	s.SetStdout(&out)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var resp Message
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v (%q)", err, out.String())
	}
	if resp.Error != nil {
		t.Errorf("unexpected error: %+v", resp.Error)
	}
}
