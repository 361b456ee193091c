package lang

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor produces FileFacts (function definitions and call sites) from
// source files.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates a new fact extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		parser: NewParser(),
	}
}

// ExtractFile reads and extracts facts from a single source file.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*FileFacts, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := LanguageFromExtension(ext)
	if !ok {
		return nil, &UnsupportedExtensionError{Path: path, Ext: ext}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return e.ExtractSource(ctx, path, source, lang)
}

// ExtractSource extracts facts from in-memory source code.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte, lang Language) (*FileFacts, error) {
	root, err := e.parser.Parse(ctx, source, lang)
	if err != nil {
		return nil, err
	}

	facts := &FileFacts{
		Path:      path,
		Language:  lang,
		Functions: make([]FunctionRecord, 0),
		Calls:     make([]CallSite, 0),
	}

	w := &factWalker{
		facts:     facts,
		source:    source,
		lang:      lang,
		named:     toSet(namedFunctionNodeTypes(lang)),
		anonymous: toSet(anonymousFunctionNodeTypes(lang)),
		callType:  callNodeType(lang),
	}
	w.walk(root, "")

	return facts, nil
}

// UnsupportedExtensionError is returned for files with no registered grammar.
type UnsupportedExtensionError struct {
	Path string
	Ext  string
}

func (e *UnsupportedExtensionError) Error() string {
	return "unsupported file extension " + e.Ext + ": " + e.Path
}

// factWalker walks one parsed file, tracking the enclosing function so call
// sites can be attributed to their caller.
type factWalker struct {
	facts     *FileFacts
	source    []byte
	lang      Language
	named     map[string]struct{}
	anonymous map[string]struct{}
	callType  string
}

func (w *factWalker) walk(node *sitter.Node, enclosing string) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	next := enclosing

	if _, ok := w.named[nodeType]; ok {
		name := w.functionName(node)
		if name != "" {
			w.facts.Functions = append(w.facts.Functions, FunctionRecord{
				Name:   name,
				File:   w.facts.Path,
				Line:   int(node.StartPoint().Row) + 1,
				Column: int(node.StartPoint().Column) + 1,
				Kind:   w.functionKind(node),
			})
			next = name
		}
	} else if _, ok := w.anonymous[nodeType]; ok {
		// Anonymous functions are trackable only when assigned to a name:
		// const f = () => {...}, f = function() {...}, f := func() {...}
		if name := assignedName(node, w.source, w.lang); name != "" {
			w.facts.Functions = append(w.facts.Functions, FunctionRecord{
				Name:   name,
				File:   w.facts.Path,
				Line:   int(node.StartPoint().Row) + 1,
				Column: int(node.StartPoint().Column) + 1,
				Kind:   KindClosure,
			})
			next = name
		}
	} else if nodeType == w.callType && enclosing != "" {
		if site, ok := w.callSite(node, enclosing); ok {
			w.facts.Calls = append(w.facts.Calls, site)
		}
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(int(i)), next)
	}
}

// functionName extracts the declared name of a named function node.
func (w *factWalker) functionName(node *sitter.Node) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return w.text(nameNode)
}

// functionKind classifies a named function node.
func (w *factWalker) functionKind(node *sitter.Node) FunctionKind {
	switch node.Type() {
	case "method_definition", "method_declaration":
		return KindMethod
	case "function_definition":
		// Python functions nested directly in a class body are methods.
		if isPythonMethod(node) {
			return KindMethod
		}
	}
	return KindFunction
}

// callSite builds a CallSite from a call expression node. Returns false for
// callee shapes that have no usable name (computed access, immediate
// invocation of an anonymous function).
func (w *factWalker) callSite(node *sitter.Node, caller string) (CallSite, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return CallSite{}, false
	}

	callee, shape := w.calleeName(fn)
	if callee == "" {
		return CallSite{}, false
	}

	return CallSite{
		Caller:         caller,
		Callee:         callee,
		FullExpression: w.text(fn),
		File:           w.facts.Path,
		Line:           int(node.StartPoint().Row) + 1,
		Column:         int(node.StartPoint().Column) + 1,
		Shape:          shape,
	}, true
}

// calleeName resolves the best-effort callee name and shape from the function
// part of a call expression.
func (w *factWalker) calleeName(fn *sitter.Node) (string, CallShape) {
	switch fn.Type() {
	case "identifier":
		return w.text(fn), ShapeDirect

	case "member_expression":
		prop := fn.ChildByFieldName("property")
		if prop == nil {
			return "", ShapeDirect
		}
		shape := ShapeProperty
		if obj := fn.ChildByFieldName("object"); obj != nil && containsCall(obj, w.callType) {
			shape = ShapeChained
		}
		return w.text(prop), shape

	case "attribute": // Python obj.method
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return "", ShapeDirect
		}
		shape := ShapeProperty
		if obj := fn.ChildByFieldName("object"); obj != nil && containsCall(obj, w.callType) {
			shape = ShapeChained
		}
		return w.text(attr), shape

	case "selector_expression": // Go pkg.Func / recv.Method
		field := fn.ChildByFieldName("field")
		if field == nil {
			return "", ShapeDirect
		}
		shape := ShapeProperty
		if op := fn.ChildByFieldName("operand"); op != nil && containsCall(op, w.callType) {
			shape = ShapeChained
		}
		return w.text(field), shape
	}

	return "", ShapeDirect
}

func (w *factWalker) text(node *sitter.Node) string {
	return string(w.source[node.StartByte():node.EndByte()])
}

// containsCall reports whether a subtree contains a call expression, used to
// detect chained calls like a().b().
func containsCall(node *sitter.Node, callType string) bool {
	if node.Type() == callType {
		return true
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && containsCall(child, callType) {
			return true
		}
	}
	return false
}

// assignedName returns the name an anonymous function is bound to, or "".
func assignedName(node *sitter.Node, source []byte, lang Language) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}

	text := func(n *sitter.Node) string {
		return string(source[n.StartByte():n.EndByte()])
	}

	switch parent.Type() {
	case "variable_declarator": // JS/TS: const f = () => {}
		if name := parent.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			return text(name)
		}
	case "assignment_expression": // JS/TS: f = function() {}
		if left := parent.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			return text(left)
		}
	case "assignment": // Python: f = lambda x: ...
		if left := parent.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			return text(left)
		}
	case "pair": // JS object literal: {handler: () => {}}
		if key := parent.ChildByFieldName("key"); key != nil && key.Type() == "property_identifier" {
			return text(key)
		}
	case "expression_list": // Go: f := func() {}
		if lang != LangGo {
			return ""
		}
		decl := parent.Parent()
		if decl == nil || decl.Type() != "short_var_declaration" {
			return ""
		}
		left := decl.ChildByFieldName("left")
		if left == nil || left.NamedChildCount() == 0 {
			return ""
		}
		first := left.NamedChild(0)
		if first != nil && first.Type() == "identifier" {
			return text(first)
		}
	}

	return ""
}

// isPythonMethod reports whether a function_definition sits directly inside a
// class body.
func isPythonMethod(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if parent.Type() == "block" {
		grand := parent.Parent()
		return grand != nil && grand.Type() == "class_definition"
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
