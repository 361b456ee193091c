package output

import (
	"fmt"
	"strings"

	"cgraph/internal/graph"
	"cgraph/internal/query"
)

// renderTree draws the graph as an indented tree rooted at the target.
// Callers render above the target, callees below. A name already printed on
// the current branch renders once more with a cycle marker and stops.
func renderTree(g *graph.CallGraph) string {
	var b strings.Builder

	edges := dedupeEdges(g.Edges)
	children := make(map[string][]string)
	parents := make(map[string][]string)
	for _, e := range edges {
		children[e.From] = append(children[e.From], e.To)
		parents[e.To] = append(parents[e.To], e.From)
	}

	if g.Direction == graph.DirectionCallers || g.Direction == graph.DirectionBoth {
		b.WriteString("Callers:\n")
		if len(parents[g.Target.Name]) == 0 {
			b.WriteString("  (none)\n")
		} else {
			writeBranch(&b, g.Target.Name, parents, "  ", map[string]bool{g.Target.Name: true})
		}
	}

	b.WriteString(fmt.Sprintf("%s  (%s:%d)\n", g.Target.Name, g.Target.File, g.Target.Line))

	if g.Direction == graph.DirectionCallees || g.Direction == graph.DirectionBoth {
		b.WriteString("Callees:\n")
		if len(children[g.Target.Name]) == 0 {
			b.WriteString("  (none)\n")
		} else {
			writeBranch(&b, g.Target.Name, children, "  ", map[string]bool{g.Target.Name: true})
		}
	}

	return b.String()
}

func writeBranch(b *strings.Builder, node string, adj map[string][]string, indent string, onBranch map[string]bool) {
	for _, next := range adj[node] {
		if onBranch[next] {
			fmt.Fprintf(b, "%s%s  (cycle)\n", indent, next)
			continue
		}
		fmt.Fprintf(b, "%s%s\n", indent, next)
		onBranch[next] = true
		writeBranch(b, next, adj, indent+"  ", onBranch)
		delete(onBranch, next)
	}
}

func renderImpactText(report *query.ImpactReport) string {
	r := report.Impact
	var b strings.Builder

	fmt.Fprintf(&b, "Impact analysis: %s (%s:%d)\n", r.FunctionName, r.Location.File, r.Location.Line)
	fmt.Fprintf(&b, "  Risk: %d/100 (%s)\n", r.RiskScore, r.RiskLevel)
	fmt.Fprintf(&b, "  Direct callers: %d, total affected: %d\n", len(r.DirectCallers), r.TotalAffected)
	fmt.Fprintf(&b, "  Fan-in %d, fan-out %d, cyclomatic %d",
		r.Complexity.FanIn, r.Complexity.FanOut, r.Complexity.CyclomaticComplexity)
	if r.Complexity.IsHotspot {
		fmt.Fprintf(&b, " [hotspot %d]", r.Complexity.HotspotScore)
	}
	b.WriteString("\n")

	if len(r.CircularDependencies) > 0 {
		b.WriteString("  Circular dependencies:\n")
		for _, cycle := range r.CircularDependencies {
			fmt.Fprintf(&b, "    %s\n", strings.Join(cycle, " -> "))
		}
	}

	maxLevel := 0
	for level := range r.TransitiveCallers {
		if level > maxLevel {
			maxLevel = level
		}
	}
	for level := 1; level <= maxLevel; level++ {
		names := r.TransitiveCallers[level]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  Level %d: %s\n", level, strings.Join(names, ", "))
	}

	if len(r.Suggestions) > 0 {
		b.WriteString("  Suggestions:\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "    [%d/%s] %s\n", s.Severity, s.Type, s.Message)
		}
	}

	return b.String()
}

func renderFunctionsText(list *query.FunctionList) string {
	var b strings.Builder
	for _, fn := range list.Functions {
		fmt.Fprintf(&b, "%s  %s:%d (%s, in %d, out %d", fn.Name, fn.File, fn.Line, fn.Kind, fn.FanIn, fn.FanOut)
		if fn.Definitions > 1 {
			fmt.Fprintf(&b, ", %d definitions", fn.Definitions)
		}
		b.WriteString(")\n")
	}
	fmt.Fprintf(&b, "%d functions in %d files", len(list.Functions), list.Meta.Files)
	if list.Truncated {
		b.WriteString(" (truncated)")
	}
	b.WriteString("\n")
	return b.String()
}

func renderCyclesText(report *query.CycleReport) string {
	if len(report.Cycles) == 0 {
		return fmt.Sprintf("no circular dependencies involving %s\n", report.Target)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d circular dependencies involving %s:\n", len(report.Cycles), report.Target)
	for _, cycle := range report.Cycles {
		fmt.Fprintf(&b, "  %s\n", strings.Join(cycle, " -> "))
	}
	return b.String()
}
