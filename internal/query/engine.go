// Package query wires the front end, call index and analyzers into the
// operations exposed to the CLI and MCP surfaces.
package query

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cgraph/internal/callindex"
	"cgraph/internal/config"
	cgerrors "cgraph/internal/errors"
	"cgraph/internal/graph"
	"cgraph/internal/impact"
	"cgraph/internal/lang"
	"cgraph/internal/logging"
	"cgraph/internal/scipfacts"
	"cgraph/internal/storage"
)

// Options tunes engine construction.
type Options struct {
	// NoCache disables the fact cache even when config enables it.
	NoCache bool
}

// Engine owns one analysis session: a built call index plus the analyzers
// over it. Engines are single-threaded; concurrent callers must create one
// engine each.
type Engine struct {
	root   string
	cfg    *config.Config
	logger *logging.Logger
	index  *callindex.Index
	deny   lang.DenyFunc
	source string
	cache  *storage.DB
}

// NewEngine builds the call index for projectRoot and returns an engine
// ready to serve queries.
func NewEngine(ctx context.Context, projectRoot string, cfg *config.Config, logger *logging.Logger, opts Options) (*Engine, error) {
	denyList, err := config.LoadDenyList(cfg.Analysis.DenyListPath)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		root:   projectRoot,
		cfg:    cfg,
		logger: logger,
		deny:   denyList.Func(),
	}

	if cfg.Cache.Enabled && !opts.NoCache {
		cache, err := storage.Open(projectRoot, logger)
		if err != nil {
			logger.Warn("fact cache unavailable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			e.cache = cache
		}
	}

	if err := e.buildIndex(ctx); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// Close releases the fact cache.
func (e *Engine) Close() error {
	if e.cache != nil {
		return e.cache.Close()
	}
	return nil
}

// Index exposes the built call index.
func (e *Engine) Index() *callindex.Index {
	return e.index
}

func (e *Engine) buildIndex(ctx context.Context) error {
	mode := e.cfg.Source.Mode
	scipPath := filepath.Join(e.root, e.cfg.Source.ScipIndexPath)

	if mode == "auto" {
		if _, err := os.Stat(scipPath); err == nil {
			mode = "scip"
		} else {
			mode = "treesitter"
		}
	}

	start := time.Now()
	switch mode {
	case "scip":
		facts, err := scipfacts.LoadFacts(scipPath)
		if err != nil {
			return err
		}
		if len(facts) == 0 {
			return cgerrors.New(cgerrors.NoSourceFiles,
				fmt.Sprintf("SCIP index %s contains no function definitions", scipPath), nil)
		}
		e.index = callindex.NewIndex(facts)

	case "treesitter":
		builder := callindex.NewBuilder(e.logger, e.cache, e.cfg.ScanOptions())
		index, err := builder.Build(ctx, e.root)
		if err != nil {
			return err
		}
		e.index = index

	default:
		return cgerrors.New(cgerrors.InvalidParameter,
			fmt.Sprintf("unknown source mode %q", mode), nil)
	}

	e.source = mode
	e.logger.Debug("index ready", map[string]interface{}{
		"source":      mode,
		"files":       e.index.FileCount(),
		"functions":   e.index.FunctionCount(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Meta identifies one query and the index it ran against.
type Meta struct {
	QueryID    string `json:"queryId"`
	Source     string `json:"source"`
	Files      int    `json:"files"`
	Functions  int    `json:"functions"`
	DurationMs int64  `json:"durationMs"`
}

func (e *Engine) meta(start time.Time) Meta {
	return Meta{
		QueryID:    uuid.NewString(),
		Source:     e.source,
		Files:      e.index.FileCount(),
		Functions:  e.index.FunctionCount(),
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// ClampDepth enforces the documented depth bounds at the query boundary.
// Zero falls back to the configured default.
func (e *Engine) ClampDepth(depth int) int {
	if depth == 0 {
		depth = e.cfg.Analysis.DefaultDepth
	}
	if depth < 1 {
		depth = 1
	}
	max := e.cfg.Analysis.MaxDepth
	if max < 1 || max > 10 {
		max = 10
	}
	if depth > max {
		depth = max
	}
	return depth
}

// GraphResult is a call graph with query metadata.
type GraphResult struct {
	Meta  Meta             `json:"meta"`
	Graph *graph.CallGraph `json:"graph"`
}

// GetCallGraph expands a call graph around target.
func (e *Engine) GetCallGraph(target string, depth int, direction graph.Direction) (*GraphResult, error) {
	start := time.Now()
	depth = e.ClampDepth(depth)

	builder := graph.NewBuilder(e.index, e.deny)
	g, err := builder.Build(target, depth, direction)
	if err != nil {
		return nil, err
	}

	return &GraphResult{Meta: e.meta(start), Graph: g}, nil
}

// ImpactReport is an impact analysis with query metadata.
type ImpactReport struct {
	Meta   Meta                 `json:"meta"`
	Impact *impact.ImpactResult `json:"impact"`
}

// AnalyzeImpact runs the full impact pipeline for target.
func (e *Engine) AnalyzeImpact(ctx context.Context, target string, depth int) (*ImpactReport, error) {
	start := time.Now()
	depth = e.ClampDepth(depth)

	analyzer := impact.NewAnalyzer(e.index, e.deny, e.logger)
	result, err := analyzer.Analyze(ctx, target, depth)
	if err != nil {
		return nil, err
	}

	return &ImpactReport{Meta: e.meta(start), Impact: result}, nil
}

// FunctionInfo is one row in a function listing.
type FunctionInfo struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Kind        string `json:"kind"`
	Definitions int    `json:"definitions"`
	FanIn       int    `json:"fanIn"`
	FanOut      int    `json:"fanOut"`
}

// FunctionList is the result of a function listing query.
type FunctionList struct {
	Meta      Meta           `json:"meta"`
	Functions []FunctionInfo `json:"functions"`
	Truncated bool           `json:"truncated,omitempty"`
}

// ListFunctions lists indexed functions, optionally filtered by prefix and
// capped at limit rows (0 means unlimited). Same-named definitions collapse
// to their canonical record with a count.
func (e *Engine) ListFunctions(prefix string, limit int) *FunctionList {
	start := time.Now()

	var names []string
	if prefix == "" {
		names = e.index.FunctionNames()
	} else {
		names = e.index.FunctionNamesWithPrefix(prefix)
	}

	truncated := false
	if limit > 0 && len(names) > limit {
		names = names[:limit]
		truncated = true
	}

	forward := e.index.ForwardNameMap(e.deny)
	callerMap := e.index.CallerNameMap(e.deny)

	functions := make([]FunctionInfo, 0, len(names))
	for _, name := range names {
		rec, _ := e.index.Canonical(name)
		functions = append(functions, FunctionInfo{
			Name:        name,
			File:        rec.File,
			Line:        rec.Line,
			Kind:        string(rec.Kind),
			Definitions: len(e.index.Definitions(name)),
			FanIn:       len(callerMap[name]),
			FanOut:      len(forward[name]),
		})
	}

	return &FunctionList{Meta: e.meta(start), Functions: functions, Truncated: truncated}
}

// CycleReport lists the circular dependencies involving target.
type CycleReport struct {
	Meta   Meta       `json:"meta"`
	Target string     `json:"target"`
	Cycles [][]string `json:"cycles"`
}

// DetectCycles reports the cycles containing target.
func (e *Engine) DetectCycles(target string) (*CycleReport, error) {
	start := time.Now()

	if !e.index.HasFunction(target) {
		return nil, cgerrors.NewFunctionNotFound(target, "call index", e.index.FileCount())
	}

	cycles := graph.DetectCycles(target, e.index.ForwardNameMap(e.deny))
	if cycles == nil {
		cycles = [][]string{}
	}

	return &CycleReport{Meta: e.meta(start), Target: target, Cycles: cycles}, nil
}
