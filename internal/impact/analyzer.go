package impact

import (
	"context"
	"fmt"

	"cgraph/internal/callindex"
	"cgraph/internal/complexity"
	cgerrors "cgraph/internal/errors"
	"cgraph/internal/graph"
	"cgraph/internal/lang"
	"cgraph/internal/logging"
)

// Analyzer runs the full impact pipeline for one analysis session. It is not
// safe for concurrent use; concurrent callers must each own an Analyzer.
type Analyzer struct {
	index      *callindex.Index
	deny       lang.DenyFunc
	complexity *complexity.Analyzer
	logger     *logging.Logger
}

// NewAnalyzer creates an impact analyzer over a built call index.
func NewAnalyzer(index *callindex.Index, deny lang.DenyFunc, logger *logging.Logger) *Analyzer {
	if deny == nil {
		deny = func(string, string) bool { return false }
	}
	return &Analyzer{
		index:      index,
		deny:       deny,
		complexity: complexity.NewAnalyzer(),
		logger:     logger,
	}
}

// Analyze computes the impact of changing target, looking maxDepth hops
// backward for affected callers. maxDepth must already be clamped to [1,10].
func (a *Analyzer) Analyze(ctx context.Context, target string, maxDepth int) (*ImpactResult, error) {
	rec, ok := a.index.Canonical(target)
	if !ok {
		return nil, cgerrors.NewFunctionNotFound(target, "call index", a.index.FileCount())
	}

	forward := a.index.ForwardNameMap(a.deny)
	callerMap := a.index.CallerNameMap(a.deny)

	levels := TransitiveCallers(target, callerMap, maxDepth)
	directCallers := levels[1]
	if directCallers == nil {
		directCallers = []string{}
	}
	totalAffected := TotalAffected(levels)

	fanIn := len(directCallers)
	fanOut := len(forward[target])

	cyclomatic, err := a.complexity.ForFunction(ctx, rec)
	if err != nil {
		a.logger.Warn("complexity analysis failed, assuming straight-line body", map[string]interface{}{
			"function": target,
			"file":     rec.File,
			"error":    err.Error(),
		})
		cyclomatic = 1
	}

	cycles := graph.DetectCycles(target, forward)
	if cycles == nil {
		cycles = [][]string{}
	}

	metrics := ScoreComplexity(fanIn, fanOut, cyclomatic)
	riskScore := ScoreRisk(fanIn, totalAffected, metrics.IsHotspot, len(cycles), cyclomatic)

	suggestions := GenerateSuggestions(target, fanIn, fanOut, cyclomatic, metrics.IsHotspot, cycles)

	var limitations []string
	if defs := len(a.index.Definitions(target)); defs > 1 {
		limitations = append(limitations, fmt.Sprintf(
			"%d definitions share the name %q; calls are attributed to the name, not to a specific definition", defs, target))
	}

	return &ImpactResult{
		FunctionName:         target,
		Location:             Location{File: rec.File, Line: rec.Line},
		DirectCallers:        directCallers,
		TransitiveCallers:    levels,
		TotalAffected:        totalAffected,
		Complexity:           metrics,
		CircularDependencies: cycles,
		RiskScore:            riskScore,
		RiskLevel:            ClassifyRisk(riskScore),
		Suggestions:          suggestions,
		Limitations:          limitations,
	}, nil
}
