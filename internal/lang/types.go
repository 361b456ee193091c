// Package lang is the language front end: it parses source files with
// tree-sitter and extracts the raw call facts (function definitions and call
// sites) that the call index is built from.
package lang

// Language represents a supported programming language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangGo         Language = "go"
)

// FunctionKind classifies how a function is defined.
type FunctionKind string

const (
	// KindFunction is a plain named function declaration.
	KindFunction FunctionKind = "function"
	// KindMethod is a function defined on a class or receiver.
	KindMethod FunctionKind = "method"
	// KindClosure is an anonymous function assigned to a name.
	KindClosure FunctionKind = "closure"
)

// CallShape classifies the syntactic form of a call site.
type CallShape string

const (
	// ShapeDirect is a plain identifier call: foo()
	ShapeDirect CallShape = "direct"
	// ShapeProperty is a property access call: obj.foo()
	ShapeProperty CallShape = "property"
	// ShapeChained is a call whose receiver is itself a call: a().foo()
	ShapeChained CallShape = "chained"
)

// FunctionRecord is one function definition found in a source file.
// Names are not unique project-wide; the call index keeps all definitions and
// treats the first one found as canonical.
type FunctionRecord struct {
	Name   string       `json:"name"`
	File   string       `json:"file"`
	Line   int          `json:"line"`
	Column int          `json:"column"`
	Kind   FunctionKind `json:"kind"`
}

// CallSite is one call found inside a function body. Callee is the name as
// written, best-effort resolved; it is a string label and may not correspond
// to any FunctionRecord (builtins, externals).
type CallSite struct {
	Caller         string    `json:"caller"`
	Callee         string    `json:"callee"`
	FullExpression string    `json:"fullExpression,omitempty"`
	File           string    `json:"file"`
	Line           int       `json:"line"`
	Column         int       `json:"column"`
	Shape          CallShape `json:"shape"`
}

// FileFacts holds everything extracted from a single source file.
type FileFacts struct {
	Path      string           `json:"path"`
	Language  Language         `json:"language"`
	Functions []FunctionRecord `json:"functions"`
	Calls     []CallSite       `json:"calls"`
}

// LanguageFromExtension returns the Language for a file extension.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".py", ".pyw":
		return LangPython, true
	case ".go":
		return LangGo, true
	default:
		return "", false
	}
}
