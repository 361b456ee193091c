// Package graph builds depth-bounded call graphs from the call index and
// detects circular dependencies.
package graph

// Direction selects which way a call graph is expanded from the target.
type Direction string

const (
	// DirectionCallees expands forward: what does the target call.
	DirectionCallees Direction = "callees"
	// DirectionCallers expands backward: who calls the target.
	DirectionCallers Direction = "callers"
	// DirectionBoth expands in both directions.
	DirectionBoth Direction = "both"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionCallees, DirectionCallers, DirectionBoth:
		return Direction(s), true
	default:
		return "", false
	}
}

// Node is one function in the graph. For functions without a known
// definition the location is the call site that referenced them, which is
// approximate.
type Node struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Resolved bool   `json:"resolved"`
}

// Edge is a directed call relation. Edges are always oriented caller to
// callee regardless of traversal direction.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	File string `json:"file"`
	Line int    `json:"line"`
}

// CallGraph is the result of one graph query. Nodes are unique by name;
// edges may repeat a (from, to) pair when multiple call sites exist, and
// renderers dedupe at display time.
type CallGraph struct {
	Target    Node            `json:"target"`
	Direction Direction       `json:"direction"`
	Depth     int             `json:"depth"`
	Nodes     map[string]Node `json:"nodes"`
	Edges     []Edge          `json:"edges"`
	Callers   []string        `json:"callers"`
	Callees   []string        `json:"callees"`
}
