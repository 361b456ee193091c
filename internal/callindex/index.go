// Package callindex aggregates per-file facts into the project-wide call
// index that graph traversal queries.
package callindex

import (
	"sort"
	"strings"

	"cgraph/internal/lang"
)

// Index is the immutable lookup structure built from one project scan.
// Functions are keyed by bare name; same-named functions in different files
// share a key, with the first definition found treated as canonical.
type Index struct {
	defs    map[string][]lang.FunctionRecord
	forward map[string][]lang.CallSite // caller name -> call sites in its body
	callers map[string][]lang.CallSite // callee name -> call sites targeting it

	fileCount int
	files     []string
}

// NewIndex builds an Index from extracted file facts.
func NewIndex(facts []*lang.FileFacts) *Index {
	idx := &Index{
		defs:    make(map[string][]lang.FunctionRecord),
		forward: make(map[string][]lang.CallSite),
		callers: make(map[string][]lang.CallSite),
	}

	for _, f := range facts {
		idx.fileCount++
		idx.files = append(idx.files, f.Path)
		for _, fn := range f.Functions {
			idx.defs[fn.Name] = append(idx.defs[fn.Name], fn)
		}
		for _, call := range f.Calls {
			idx.forward[call.Caller] = append(idx.forward[call.Caller], call)
			idx.callers[call.Callee] = append(idx.callers[call.Callee], call)
		}
	}

	return idx
}

// Canonical returns the canonical (first found) definition of a function.
func (idx *Index) Canonical(name string) (lang.FunctionRecord, bool) {
	defs := idx.defs[name]
	if len(defs) == 0 {
		return lang.FunctionRecord{}, false
	}
	return defs[0], true
}

// Definitions returns every definition sharing a name.
func (idx *Index) Definitions(name string) []lang.FunctionRecord {
	return idx.defs[name]
}

// HasFunction reports whether any definition with the name exists.
func (idx *Index) HasFunction(name string) bool {
	return len(idx.defs[name]) > 0
}

// Callees returns the call sites inside the named function's body.
func (idx *Index) Callees(name string) []lang.CallSite {
	return idx.forward[name]
}

// Callers returns the call sites that target the named function.
func (idx *Index) Callers(name string) []lang.CallSite {
	return idx.callers[name]
}

// FunctionNames returns all defined function names, sorted.
func (idx *Index) FunctionNames() []string {
	names := make([]string, 0, len(idx.defs))
	for name := range idx.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionNamesWithPrefix returns sorted defined names with a given prefix.
func (idx *Index) FunctionNamesWithPrefix(prefix string) []string {
	var names []string
	for name := range idx.defs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ForwardNameMap returns caller name to distinct callee names, filtered by
// the deny predicate. This is the adjacency used for cycle detection.
func (idx *Index) ForwardNameMap(deny lang.DenyFunc) map[string][]string {
	out := make(map[string][]string, len(idx.forward))
	for caller, sites := range idx.forward {
		seen := make(map[string]struct{}, len(sites))
		var callees []string
		for _, site := range sites {
			if deny != nil && deny(site.Callee, site.FullExpression) {
				continue
			}
			if _, ok := seen[site.Callee]; ok {
				continue
			}
			seen[site.Callee] = struct{}{}
			callees = append(callees, site.Callee)
		}
		if len(callees) > 0 {
			out[caller] = callees
		}
	}
	return out
}

// CallerNameMap returns callee name to distinct caller names, the inversion
// used for transitive impact.
func (idx *Index) CallerNameMap(deny lang.DenyFunc) map[string][]string {
	out := make(map[string][]string, len(idx.callers))
	for callee, sites := range idx.callers {
		seen := make(map[string]struct{}, len(sites))
		var callerNames []string
		for _, site := range sites {
			if deny != nil && deny(site.Callee, site.FullExpression) {
				continue
			}
			if _, ok := seen[site.Caller]; ok {
				continue
			}
			seen[site.Caller] = struct{}{}
			callerNames = append(callerNames, site.Caller)
		}
		if len(callerNames) > 0 {
			out[callee] = callerNames
		}
	}
	return out
}

// FileCount returns the number of source files in the index.
func (idx *Index) FileCount() int {
	return idx.fileCount
}

// Files returns the scanned file paths in scan order.
func (idx *Index) Files() []string {
	return idx.files
}

// FunctionCount returns the number of distinct function names.
func (idx *Index) FunctionCount() int {
	return len(idx.defs)
}
