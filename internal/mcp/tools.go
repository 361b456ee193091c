package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"cgraph/internal/graph"
)

// Tool describes one tool to MCP clients.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler executes one tool call.
type ToolHandler func(args map[string]interface{}) (*ToolResult, error)

// ToolResult is the MCP tools/call result shape: a list of content blocks.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one piece of tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(v interface{}) (*ToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(data)}},
	}, nil
}

func (s *Server) registerTools() {
	s.tools["build_call_graph"] = s.handleBuildCallGraph
	s.tools["analyze_impact"] = s.handleAnalyzeImpact
	s.tools["list_functions"] = s.handleListFunctions
	s.tools["detect_cycles"] = s.handleDetectCycles
}

func (s *Server) toolDefinitions() []Tool {
	depthProp := map[string]interface{}{
		"type":        "integer",
		"description": "Traversal depth, 1 to 10. Defaults to the configured depth.",
		"minimum":     1,
		"maximum":     10,
	}
	functionProp := map[string]interface{}{
		"type":        "string",
		"description": "Target function name",
	}

	return []Tool{
		{
			Name:        "build_call_graph",
			Description: "Build a depth-bounded call graph around a function: who calls it, what it calls, or both",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"function": functionProp,
					"depth":    depthProp,
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"callers", "callees", "both"},
						"description": "Traversal direction, default both",
					},
				},
				"required": []string{"function"},
			},
		},
		{
			Name:        "analyze_impact",
			Description: "Analyze the change impact of a function: transitive callers by level, complexity, circular dependencies, a 0-100 risk score and suggestions",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"function": functionProp,
					"depth":    depthProp,
				},
				"required": []string{"function"},
			},
		},
		{
			Name:        "list_functions",
			Description: "List indexed functions, optionally filtered by name prefix",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prefix": map[string]interface{}{
						"type":        "string",
						"description": "Name prefix filter",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of functions to return (0 = all)",
						"minimum":     0,
					},
				},
			},
		},
		{
			Name:        "detect_cycles",
			Description: "Report the circular call dependencies involving a function",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"function": functionProp,
				},
				"required": []string{"function"},
			},
		},
	}
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// intArg reads an integer argument; JSON numbers decode as float64.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (s *Server) handleBuildCallGraph(args map[string]interface{}) (*ToolResult, error) {
	function, ok := stringArg(args, "function")
	if !ok {
		return nil, fmt.Errorf("missing required argument: function")
	}

	direction := graph.DirectionBoth
	if raw, ok := stringArg(args, "direction"); ok {
		parsed, valid := graph.ParseDirection(raw)
		if !valid {
			return nil, fmt.Errorf("invalid direction: %s", raw)
		}
		direction = parsed
	}

	result, err := s.engine.GetCallGraph(function, intArg(args, "depth"), direction)
	if err != nil {
		return nil, err
	}
	return textResult(result)
}

func (s *Server) handleAnalyzeImpact(args map[string]interface{}) (*ToolResult, error) {
	function, ok := stringArg(args, "function")
	if !ok {
		return nil, fmt.Errorf("missing required argument: function")
	}

	report, err := s.engine.AnalyzeImpact(context.Background(), function, intArg(args, "depth"))
	if err != nil {
		return nil, err
	}
	return textResult(report)
}

func (s *Server) handleListFunctions(args map[string]interface{}) (*ToolResult, error) {
	prefix, _ := stringArg(args, "prefix")
	return textResult(s.engine.ListFunctions(prefix, intArg(args, "limit")))
}

func (s *Server) handleDetectCycles(args map[string]interface{}) (*ToolResult, error) {
	function, ok := stringArg(args, "function")
	if !ok {
		return nil, fmt.Errorf("missing required argument: function")
	}

	report, err := s.engine.DetectCycles(function)
	if err != nil {
		return nil, err
	}
	return textResult(report)
}
