// Package output renders analysis results for terminals, diagrams and
// machine consumption. Renderers deduplicate edges by (from, to) pair; the
// graph itself may carry one edge per call site.
package output

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"cgraph/internal/graph"
	"cgraph/internal/query"
)

// Format selects a rendering of a result.
type Format string

const (
	FormatJSON    Format = "json"
	FormatTree    Format = "tree"
	FormatMermaid Format = "mermaid"
	FormatYAML    Format = "yaml"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatJSON, FormatTree, FormatMermaid, FormatYAML:
		return Format(s), true
	default:
		return "", false
	}
}

// RenderGraph renders a call graph query result in the given format.
func RenderGraph(result *query.GraphResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(result)
	case FormatYAML:
		return marshalYAML(result)
	case FormatTree:
		return renderTree(result.Graph), nil
	case FormatMermaid:
		return renderMermaid(result.Graph), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// RenderImpact renders an impact report. Tree and mermaid fall back to the
// human summary since an impact report is not a graph.
func RenderImpact(report *query.ImpactReport, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(report)
	case FormatYAML:
		return marshalYAML(report)
	case FormatTree, FormatMermaid:
		return renderImpactText(report), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// RenderFunctions renders a function listing.
func RenderFunctions(list *query.FunctionList, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(list)
	case FormatYAML:
		return marshalYAML(list)
	default:
		return renderFunctionsText(list), nil
	}
}

// RenderCycles renders a cycle report.
func RenderCycles(report *query.CycleReport, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(report)
	case FormatYAML:
		return marshalYAML(report)
	default:
		return renderCyclesText(report), nil
	}
}

func marshalJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func marshalYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// dedupeEdges collapses the edge list to unique (from, to) pairs, keeping
// the first location seen.
func dedupeEdges(edges []graph.Edge) []graph.Edge {
	seen := make(map[string]struct{}, len(edges))
	out := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		key := e.From + "\x00" + e.To
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
