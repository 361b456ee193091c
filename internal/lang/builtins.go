package lang

import "strings"

// DenyFunc decides whether a callee name refers to a language builtin or
// global intrinsic that should not become a graph node. The full expression
// text (e.g. "console.log") is provided for prefix matching.
type DenyFunc func(callee, fullExpression string) bool

// DenyList is the injectable non-trackable filter used by the graph builder.
// The defaults cover the builtins and global namespaces of the supported
// languages; config can extend it from a user deny-list file.
type DenyList struct {
	names    map[string]struct{}
	prefixes []string
}

// NewDenyList creates a deny list preloaded with the default builtin tables.
func NewDenyList() *DenyList {
	d := &DenyList{
		names: make(map[string]struct{}),
	}
	d.Add(defaultBuiltins...)
	d.AddPrefix(defaultPrefixes...)
	return d
}

// Add registers callee names to filter.
func (d *DenyList) Add(names ...string) {
	for _, name := range names {
		d.names[name] = struct{}{}
	}
}

// AddPrefix registers full-expression prefixes to filter (e.g. "console.").
func (d *DenyList) AddPrefix(prefixes ...string) {
	d.prefixes = append(d.prefixes, prefixes...)
}

// IsNonTrackable reports whether a call site should be skipped entirely.
func (d *DenyList) IsNonTrackable(callee, fullExpression string) bool {
	if _, ok := d.names[callee]; ok {
		return true
	}
	for _, prefix := range d.prefixes {
		if strings.HasPrefix(fullExpression, prefix) {
			return true
		}
	}
	return false
}

// Func returns the deny list as an injectable predicate.
func (d *DenyList) Func() DenyFunc {
	return d.IsNonTrackable
}

// defaultBuiltins lists intrinsic callee names across the supported languages.
var defaultBuiltins = []string{
	// JavaScript / TypeScript globals
	"require", "setTimeout", "setInterval", "clearTimeout", "clearInterval",
	"parseInt", "parseFloat", "isNaN", "isFinite", "fetch", "alert",
	"encodeURIComponent", "decodeURIComponent", "structuredClone",
	"String", "Number", "Boolean", "Array", "Object", "Symbol", "BigInt",
	"Error", "TypeError", "RangeError", "Promise", "Map", "Set", "WeakMap",
	"WeakSet", "Date", "RegExp", "Proxy",

	// Python builtins
	"print", "len", "range", "str", "int", "float", "list", "dict", "set",
	"tuple", "isinstance", "issubclass", "getattr", "setattr", "hasattr",
	"super", "type", "enumerate", "zip", "map", "filter", "sorted", "reversed",
	"open", "repr", "abs", "min", "max", "sum", "any", "all", "iter", "next",
	"vars", "id", "hash", "callable", "format",

	// Go builtins
	"append", "cap", "close", "copy", "delete", "make", "new", "panic",
	"recover", "println", "clear",
}

// defaultPrefixes lists global-namespace prefixes whose members are never
// project functions.
var defaultPrefixes = []string{
	"console.", "Math.", "JSON.", "Object.", "Array.", "Promise.", "Number.",
	"String.", "Reflect.", "process.", "Date.", "Symbol.",
	"os.", "sys.", "json.", "math.", "re.", "logging.",
}
