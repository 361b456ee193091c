package graph

import (
	"cgraph/internal/callindex"
	cgerrors "cgraph/internal/errors"
	"cgraph/internal/lang"
)

// Builder expands call graphs against a call index. One builder serves one
// analysis session; per-query state lives in the traversal, not here.
type Builder struct {
	index *callindex.Index
	deny  lang.DenyFunc
}

// NewBuilder creates a graph builder. deny filters built-ins and global
// intrinsics out of the graph; nil means nothing is filtered.
func NewBuilder(index *callindex.Index, deny lang.DenyFunc) *Builder {
	if deny == nil {
		deny = func(string, string) bool { return false }
	}
	return &Builder{index: index, deny: deny}
}

// Build expands a call graph from target in the given direction. maxDepth
// must already be clamped to [1,10] by the caller.
func (b *Builder) Build(target string, maxDepth int, direction Direction) (*CallGraph, error) {
	rec, ok := b.index.Canonical(target)
	if !ok {
		return nil, cgerrors.NewFunctionNotFound(target, "call index", b.index.FileCount())
	}

	g := &CallGraph{
		Target:    Node{Name: rec.Name, File: rec.File, Line: rec.Line, Resolved: true},
		Direction: direction,
		Depth:     maxDepth,
		Nodes:     make(map[string]Node),
		Edges:     make([]Edge, 0),
		Callers:   make([]string, 0),
		Callees:   make([]string, 0),
	}
	g.Nodes[rec.Name] = g.Target

	if direction == DirectionCallees || direction == DirectionBoth {
		visited := map[string]bool{target: true}
		b.buildCallees(g, target, 0, maxDepth, visited)
	}
	if direction == DirectionCallers || direction == DirectionBoth {
		visited := map[string]bool{target: true}
		b.findCallers(g, target, 0, maxDepth, visited)
	}

	return g, nil
}

// buildCallees expands forward from current. Nodes are marked visited before
// recursing so self-calls and mutual recursion terminate.
func (b *Builder) buildCallees(g *CallGraph, current string, depth, maxDepth int, visited map[string]bool) {
	for _, site := range b.index.Callees(current) {
		if b.deny(site.Callee, site.FullExpression) {
			continue
		}

		g.Edges = append(g.Edges, Edge{
			From: current,
			To:   site.Callee,
			File: site.File,
			Line: site.Line,
		})
		if depth == 0 {
			g.Callees = appendUnique(g.Callees, site.Callee)
		}

		rec, resolved := b.index.Canonical(site.Callee)
		if resolved {
			if _, ok := g.Nodes[site.Callee]; !ok {
				g.Nodes[site.Callee] = Node{Name: rec.Name, File: rec.File, Line: rec.Line, Resolved: true}
			}
		} else {
			// Unresolvable callee: leaf node located at the call site.
			if _, ok := g.Nodes[site.Callee]; !ok {
				g.Nodes[site.Callee] = Node{Name: site.Callee, File: site.File, Line: site.Line}
			}
			continue
		}

		if !visited[site.Callee] {
			visited[site.Callee] = true
			if depth+1 < maxDepth {
				b.buildCallees(g, site.Callee, depth+1, maxDepth, visited)
			}
		}
	}
}

// findCallers expands backward from current by inverting the index. Edges
// stay caller-to-callee oriented and are deduplicated by (from, to) since
// multiple call sites between the same pair add no information here.
func (b *Builder) findCallers(g *CallGraph, current string, depth, maxDepth int, visited map[string]bool) {
	for _, site := range b.index.Callers(current) {
		if b.deny(site.Callee, site.FullExpression) {
			continue
		}
		caller := site.Caller

		if !g.hasEdge(caller, current) {
			g.Edges = append(g.Edges, Edge{
				From: caller,
				To:   current,
				File: site.File,
				Line: site.Line,
			})
		}
		if depth == 0 {
			g.Callers = appendUnique(g.Callers, caller)
		}

		if _, ok := g.Nodes[caller]; !ok {
			if rec, resolved := b.index.Canonical(caller); resolved {
				g.Nodes[caller] = Node{Name: rec.Name, File: rec.File, Line: rec.Line, Resolved: true}
			} else {
				g.Nodes[caller] = Node{Name: caller, File: site.File, Line: site.Line}
			}
		}

		if !visited[caller] {
			visited[caller] = true
			if depth+1 < maxDepth {
				b.findCallers(g, caller, depth+1, maxDepth, visited)
			}
		}
	}
}

func (g *CallGraph) hasEdge(from, to string) bool {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
