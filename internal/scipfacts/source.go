// Package scipfacts derives call facts from a precomputed SCIP index, as an
// alternative to parsing sources with tree-sitter. Indexer-produced facts
// resolve imports and receivers better than syntax alone, at the cost of
// requiring the index to exist and be current.
package scipfacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	cgerrors "cgraph/internal/errors"
	"cgraph/internal/lang"
)

// defaultMaxFunctionLines bounds a function body when the index carries no
// enclosing range. scip-go in particular does not populate EnclosingRange,
// so body extents are inferred from consecutive definition lines.
const defaultMaxFunctionLines = 500

// Load reads and parses a SCIP index file.
func Load(path string) (*scippb.Index, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, cgerrors.New(cgerrors.IndexMissing,
			fmt.Sprintf("SCIP index not found at %s", path), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SCIP index %s: %w", path, err)
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse SCIP index %s: %w", path, err)
	}

	return &index, nil
}

// Facts converts a SCIP index into per-file call facts. Call sites are
// attributed to the function whose inferred line range contains them.
func Facts(index *scippb.Index) []*lang.FileFacts {
	var all []*lang.FileFacts

	for _, doc := range index.Documents {
		facts := documentFacts(doc)
		if facts != nil {
			all = append(all, facts)
		}
	}

	return all
}

// LoadFacts is the convenience composition of Load and Facts.
func LoadFacts(path string) ([]*lang.FileFacts, error) {
	index, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Facts(index), nil
}

type funcSpan struct {
	symbol    string
	name      string
	kind      lang.FunctionKind
	startLine int // 0-based
	endLine   int
	column    int
}

func documentFacts(doc *scippb.Document) *lang.FileFacts {
	language, _ := lang.LanguageFromExtension(strings.ToLower(filepath.Ext(doc.RelativePath)))

	spans := functionSpans(doc)
	if len(spans) == 0 {
		return nil
	}

	facts := &lang.FileFacts{
		Path:      doc.RelativePath,
		Language:  language,
		Functions: make([]lang.FunctionRecord, 0, len(spans)),
		Calls:     make([]lang.CallSite, 0),
	}

	for _, span := range spans {
		facts.Functions = append(facts.Functions, lang.FunctionRecord{
			Name:   span.name,
			File:   doc.RelativePath,
			Line:   span.startLine + 1,
			Column: span.column + 1,
			Kind:   span.kind,
		})
	}

	for _, occ := range doc.Occurrences {
		if len(occ.Range) < 3 {
			continue
		}
		if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) != 0 {
			continue
		}
		if !isFunctionSymbol(occ.Symbol) {
			continue
		}

		line := int(occ.Range[0])
		caller := enclosingSpan(spans, line)
		if caller == nil || caller.symbol == occ.Symbol {
			continue
		}

		callee := symbolName(occ.Symbol)
		facts.Calls = append(facts.Calls, lang.CallSite{
			Caller:         caller.name,
			Callee:         callee,
			FullExpression: callee,
			File:           doc.RelativePath,
			Line:           line + 1,
			Column:         int(occ.Range[1]) + 1,
			Shape:          lang.ShapeDirect,
		})
	}

	return facts
}

// functionSpans infers the line range of every function defined in a
// document: a body runs from its definition line to the line before the next
// definition, capped at defaultMaxFunctionLines.
func functionSpans(doc *scippb.Document) []funcSpan {
	var spans []funcSpan

	for _, occ := range doc.Occurrences {
		if len(occ.Range) < 3 {
			continue
		}
		if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) == 0 {
			continue
		}
		if !isFunctionSymbol(occ.Symbol) {
			continue
		}

		kind := lang.KindFunction
		if strings.Contains(occ.Symbol, "#") {
			kind = lang.KindMethod
		}
		spans = append(spans, funcSpan{
			symbol:    occ.Symbol,
			name:      symbolName(occ.Symbol),
			kind:      kind,
			startLine: int(occ.Range[0]),
			column:    int(occ.Range[1]),
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].startLine < spans[j].startLine })

	for i := range spans {
		end := spans[i].startLine + defaultMaxFunctionLines
		if i+1 < len(spans) && spans[i+1].startLine-1 < end {
			end = spans[i+1].startLine - 1
		}
		spans[i].endLine = end
	}

	return spans
}

func enclosingSpan(spans []funcSpan, line int) *funcSpan {
	for i := range spans {
		if line >= spans[i].startLine && line <= spans[i].endLine {
			return &spans[i]
		}
	}
	return nil
}

// isFunctionSymbol detects callables from the symbol ID format. Function
// descriptors end with "().", e.g. "... `pkg`/FuncName().".
func isFunctionSymbol(symbolID string) bool {
	return strings.Contains(symbolID, "().")
}

// symbolName extracts the bare function name from a SCIP symbol ID.
func symbolName(symbolID string) string {
	parts := strings.Split(symbolID, " ")
	last := parts[len(parts)-1]

	if idx := strings.LastIndex(last, "("); idx >= 0 {
		last = last[:idx]
	}
	last = strings.TrimSuffix(last, ".")
	for _, sep := range []string{"/", "#", "."} {
		if i := strings.LastIndex(last, sep); i >= 0 {
			last = last[i+1:]
		}
	}
	if last == "" {
		return symbolID
	}
	return last
}
