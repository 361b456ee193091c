// Package complexity computes an approximate cyclomatic complexity for
// indexed functions: 1 plus the number of decision points in the body.
package complexity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cgraph/internal/lang"
)

// Analyzer computes cyclomatic complexity for functions located by the call
// index. Parsed files are memoized so scoring many functions in the same file
// parses it once.
type Analyzer struct {
	parser *lang.Parser
	cache  map[string]*parsedFile
}

type parsedFile struct {
	source []byte
	root   *sitter.Node
	lang   lang.Language
}

// NewAnalyzer creates a complexity analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		parser: lang.NewParser(),
		cache:  make(map[string]*parsedFile),
	}
}

// ForFunction computes the complexity of the function a record points at.
// Returns 1 (straight-line) when the function node cannot be located.
func (a *Analyzer) ForFunction(ctx context.Context, rec lang.FunctionRecord) (int, error) {
	pf, err := a.parseFile(ctx, rec.File)
	if err != nil {
		return 0, err
	}

	node := findFunctionAtLine(pf.root, pf.lang, rec.Line)
	if node == nil {
		return 1, nil
	}

	return a.countComplexity(node, pf), nil
}

func (a *Analyzer) parseFile(ctx context.Context, path string) (*parsedFile, error) {
	if pf, ok := a.cache[path]; ok {
		return pf, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	language, ok := lang.LanguageFromExtension(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	root, err := a.parser.Parse(ctx, source, language)
	if err != nil {
		return nil, err
	}

	pf := &parsedFile{source: source, root: root, lang: language}
	a.cache[path] = pf
	return pf, nil
}

// countComplexity counts decision points in the function subtree. Short
// circuit operators (&&, ||, ??, and, or) each add a branch; other decision
// node types add one per occurrence.
func (a *Analyzer) countComplexity(fn *sitter.Node, pf *parsedFile) int {
	decisions := make(map[string]struct{})
	for _, t := range lang.GetDecisionNodeTypes(pf.lang) {
		decisions[t] = struct{}{}
	}

	count := 1
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		nodeType := node.Type()
		if _, ok := decisions[nodeType]; ok {
			if nodeType == "binary_expression" || nodeType == "boolean_operator" {
				if lang.IsBranchOperator(node, pf.source, pf.lang) {
					count++
				}
			} else {
				count++
			}
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	for i := uint32(0); i < fn.ChildCount(); i++ {
		walk(fn.Child(int(i)))
	}

	return count
}

// findFunctionAtLine locates the function node starting on the given line.
func findFunctionAtLine(root *sitter.Node, language lang.Language, line int) *sitter.Node {
	types := make(map[string]struct{})
	for _, t := range lang.FunctionNodeTypes(language) {
		types[t] = struct{}{}
	}

	var found *sitter.Node
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil || found != nil {
			return
		}
		if _, ok := types[node.Type()]; ok && int(node.StartPoint().Row)+1 == line {
			found = node
			return
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)

	return found
}
