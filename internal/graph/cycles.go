package graph

import (
	"sort"
	"strings"
)

// DetectCycles finds simple cycles containing target in the forward call
// relation. Search starts from the target and from each of its direct
// callers, so cycles reachable only one hop upstream are still found. Cycles
// that are rotations of each other collapse to one entry; a self call yields
// the trivial cycle [A, A].
//
// The DFS uses an explicit frame stack instead of recursion so pathological
// call chains cannot exhaust the goroutine stack.
func DetectCycles(target string, forward map[string][]string) [][]string {
	starts := []string{target}
	var callers []string
	for caller, callees := range forward {
		for _, callee := range callees {
			if callee == target && caller != target {
				callers = append(callers, caller)
				break
			}
		}
	}
	sort.Strings(callers)
	starts = append(starts, callers...)

	var cycles [][]string
	reported := make(map[string]struct{})

	for _, start := range starts {
		walkCyclesFrom(start, target, forward, reported, &cycles)
	}

	return cycles
}

type cycleFrame struct {
	node string
	next int // index of the next child to examine
}

// walkCyclesFrom runs one DFS with its own visited set. Each start gets a
// fresh traversal so a cycle is never hidden by exploration from an earlier
// start point.
func walkCyclesFrom(start, target string, forward map[string][]string, reported map[string]struct{}, cycles *[][]string) {
	stack := []cycleFrame{{node: start}}
	path := []string{start}
	onPath := map[string]int{start: 0}
	visited := map[string]bool{start: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := forward[top.node]

		if top.next >= len(children) {
			delete(onPath, top.node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		child := children[top.next]
		top.next++

		if idx, ok := onPath[child]; ok {
			cycle := make([]string, 0, len(path)-idx+1)
			cycle = append(cycle, path[idx:]...)
			cycle = append(cycle, child)
			recordCycle(cycle, target, reported, cycles)
			continue
		}
		if visited[child] {
			continue
		}

		visited[child] = true
		stack = append(stack, cycleFrame{node: child})
		path = append(path, child)
		onPath[child] = len(path) - 1
	}
}

// recordCycle keeps a cycle if it contains the target and its member set has
// not been reported yet. Rotations share a member set, so keying the dedup
// on the sorted unique names suppresses them.
func recordCycle(cycle []string, target string, reported map[string]struct{}, cycles *[][]string) {
	containsTarget := false
	for _, name := range cycle {
		if name == target {
			containsTarget = true
			break
		}
	}
	if !containsTarget {
		return
	}

	key := cycleKey(cycle)
	if _, ok := reported[key]; ok {
		return
	}
	reported[key] = struct{}{}
	*cycles = append(*cycles, cycle)
}

func cycleKey(cycle []string) string {
	unique := make(map[string]struct{}, len(cycle))
	for _, name := range cycle {
		unique[name] = struct{}{}
	}
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\x00")
}
