package output

import (
	"fmt"
	"sort"
	"strings"

	"cgraph/internal/graph"
)

// renderMermaid emits the graph as a Mermaid flowchart. Node ids are
// sanitized names; the target gets a distinct style.
func renderMermaid(g *graph.CallGraph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		node := g.Nodes[name]
		label := name
		if node.File != "" {
			label = fmt.Sprintf("%s<br/>%s:%d", name, node.File, node.Line)
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", mermaidID(name), label)
	}

	for _, e := range dedupeEdges(g.Edges) {
		fmt.Fprintf(&b, "    %s --> %s\n", mermaidID(e.From), mermaidID(e.To))
	}

	fmt.Fprintf(&b, "    style %s fill:#f96,stroke:#333\n", mermaidID(g.Target.Name))

	return b.String()
}

// mermaidID turns a function name into a safe Mermaid node id.
func mermaidID(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
