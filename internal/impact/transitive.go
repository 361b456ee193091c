package impact

import "sort"

// TransitiveCallers computes which functions reach target backward, grouped
// by hop level. Level 1 holds the direct callers; level n the callers of
// level n-1 not seen at any earlier level. A name is assigned to the first
// level that discovers it, and the target never appears in any level.
func TransitiveCallers(target string, callerMap map[string][]string, maxDepth int) map[int][]string {
	levels := make(map[int][]string)
	seen := map[string]struct{}{target: {}}

	current := make([]string, 0)
	for _, caller := range callerMap[target] {
		if _, ok := seen[caller]; ok {
			continue
		}
		seen[caller] = struct{}{}
		current = append(current, caller)
	}
	if len(current) == 0 {
		return levels
	}
	sort.Strings(current)
	levels[1] = current

	for level := 2; level <= maxDepth; level++ {
		var next []string
		for _, name := range current {
			for _, caller := range callerMap[name] {
				if _, ok := seen[caller]; ok {
					continue
				}
				seen[caller] = struct{}{}
				next = append(next, caller)
			}
		}
		if len(next) == 0 {
			break
		}
		sort.Strings(next)
		levels[level] = next
		current = next
	}

	return levels
}

// TotalAffected counts the union of all levels. Levels are disjoint by
// construction, so this is a plain sum.
func TotalAffected(levels map[int][]string) int {
	total := 0
	for _, names := range levels {
		total += len(names)
	}
	return total
}
