package graph

import (
	"reflect"
	"sort"
	"testing"
)

func TestDetectCyclesRotationDedup(t *testing.T) {
	forward := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}

	cycles := DetectCycles("a", forward)
	if len(cycles) != 1 {
		t.Fatalf("rotations must collapse to one cycle, got %d: %v", len(cycles), cycles)
	}

	members := map[string]bool{}
	for _, name := range cycles[0] {
		members[name] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !members[want] {
			t.Errorf("cycle missing %s: %v", want, cycles[0])
		}
	}

	first, last := cycles[0][0], cycles[0][len(cycles[0])-1]
	if first != last {
		t.Errorf("cycle should close on its start node, got %v", cycles[0])
	}
}

func TestDetectCyclesSelfCycle(t *testing.T) {
	forward := map[string][]string{
		"a": {"a"},
	}

	cycles := DetectCycles("a", forward)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 self cycle, got %d", len(cycles))
	}
	if !reflect.DeepEqual(cycles[0], []string{"a", "a"}) {
		t.Errorf("expected trivial cycle [a a], got %v", cycles[0])
	}
}

func TestDetectCyclesMutualRecursion(t *testing.T) {
	forward := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}

	cycles := DetectCycles("a", forward)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}

	got := append([]string{}, cycles[0]...)
	sort.Strings(got)
	if got[0] != "a" || got[len(got)-1] != "b" {
		t.Errorf("cycle should contain a and b, got %v", cycles[0])
	}
}

func TestDetectCyclesIgnoresUnrelated(t *testing.T) {
	// x/y cycle does not involve the target.
	forward := map[string][]string{
		"target": {"x"},
		"x":      {"y"},
		"y":      {"x"},
	}

	cycles := DetectCycles("target", forward)
	if len(cycles) != 0 {
		t.Errorf("cycles not containing the target must not be reported, got %v", cycles)
	}
}

func TestDetectCyclesStartsFromDirectCallers(t *testing.T) {
	// The cycle caller->target->caller is reachable immediately from the
	// caller start even in dense graphs.
	forward := map[string][]string{
		"caller": {"target"},
		"target": {"caller"},
		"other":  {"target"},
	}

	cycles := DetectCycles("target", forward)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
}

func TestDetectCyclesNone(t *testing.T) {
	forward := map[string][]string{
		"a": {"b"},
		"b": {"c"},
	}

	if cycles := DetectCycles("a", forward); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}
