package lang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser wraps tree-sitter for multi-language parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses source code and returns the AST root node.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*sitter.Node, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return tree.RootNode(), nil
}

// GetLanguage returns the tree-sitter Language for a given language identifier.
func GetLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangGo:
		return golang.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// namedFunctionNodeTypes returns the node types that declare a named function
// for a language, excluding anonymous forms.
func namedFunctionNodeTypes(lang Language) []string {
	switch lang {
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "generator_function_declaration", "method_definition"}
	case LangPython:
		return []string{"function_definition"}
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	default:
		return nil
	}
}

// anonymousFunctionNodeTypes returns the node types for anonymous functions
// that become trackable only when assigned to a name.
func anonymousFunctionNodeTypes(lang Language) []string {
	switch lang {
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"arrow_function", "function_expression", "generator_function"}
	case LangPython:
		return []string{"lambda"}
	case LangGo:
		return []string{"func_literal"}
	default:
		return nil
	}
}

// FunctionNodeTypes returns every node type that introduces a function body,
// named or anonymous.
func FunctionNodeTypes(lang Language) []string {
	return append(namedFunctionNodeTypes(lang), anonymousFunctionNodeTypes(lang)...)
}

// callNodeType returns the node type of a call expression for a language.
func callNodeType(lang Language) string {
	if lang == LangPython {
		return "call"
	}
	return "call_expression"
}

// GetDecisionNodeTypes returns the node types that contribute to the
// cyclomatic complexity approximation.
func GetDecisionNodeTypes(lang Language) []string {
	switch lang {
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_case",
			"catch_clause",
			"ternary_expression",
			"binary_expression", // for &&, || and ??
		}
	case LangPython:
		return []string{
			"if_statement",
			"elif_clause",
			"for_statement",
			"while_statement",
			"except_clause",
			"boolean_operator",       // and, or
			"conditional_expression", // ternary
			"list_comprehension",
			"dictionary_comprehension",
			"set_comprehension",
			"generator_expression",
		}
	case LangGo:
		return []string{
			"if_statement",
			"for_statement",
			"expression_case",
			"type_case",
			"communication_case",
			"binary_expression", // for && and ||
		}
	default:
		return nil
	}
}

// IsBranchOperator checks if a binary expression node is a short-circuit or
// nullish-coalescing operator (&&, ||, ??).
func IsBranchOperator(node *sitter.Node, source []byte, lang Language) bool {
	if node.Type() != "binary_expression" && node.Type() != "boolean_operator" {
		return false
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}

		if lang == LangPython {
			// Python uses 'and' and 'or' keywords
			if child.Type() == "and" || child.Type() == "or" {
				return true
			}
			continue
		}

		content := string(source[child.StartByte():child.EndByte()])
		if content == "&&" || content == "||" || content == "??" {
			return true
		}
	}

	return false
}
