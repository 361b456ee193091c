package callindex

import (
	"context"
	"fmt"

	cgerrors "cgraph/internal/errors"
	"cgraph/internal/lang"
	"cgraph/internal/logging"
	"cgraph/internal/storage"
)

// Builder scans a project and produces a call index, optionally consulting
// the fact cache so unchanged files are not re-parsed.
type Builder struct {
	extractor *lang.Extractor
	logger    *logging.Logger
	cache     *storage.DB // nil disables caching
	scanOpts  lang.ScanOptions
}

// NewBuilder creates a builder. cache may be nil to force full extraction.
func NewBuilder(logger *logging.Logger, cache *storage.DB, opts lang.ScanOptions) *Builder {
	return &Builder{
		extractor: lang.NewExtractor(),
		logger:    logger,
		cache:     cache,
		scanOpts:  opts,
	}
}

// Build scans root and returns the call index. Files that fail to parse are
// logged and skipped; the build fails only when nothing parseable remains.
func (b *Builder) Build(ctx context.Context, root string) (*Index, error) {
	files, err := lang.ListSourceFiles(root, b.scanOpts)
	if err != nil {
		return nil, fmt.Errorf("project scan failed: %w", err)
	}
	if len(files) == 0 {
		return nil, cgerrors.New(cgerrors.NoSourceFiles,
			fmt.Sprintf("no source files found under %s", root), nil)
	}

	var (
		allFacts []*lang.FileFacts
		hits     int
		parsed   int
		failed   int
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		facts, fromCache, err := b.extractOne(ctx, path)
		if err != nil {
			failed++
			b.logger.Warn("skipping unparseable file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		if fromCache {
			hits++
		} else {
			parsed++
		}
		allFacts = append(allFacts, facts)
	}

	if len(allFacts) == 0 {
		return nil, cgerrors.New(cgerrors.NoSourceFiles,
			fmt.Sprintf("all %d source files under %s failed to parse", len(files), root), nil)
	}

	if b.cache != nil {
		if err := b.cache.PruneExcept(files); err != nil {
			b.logger.Warn("cache prune failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	b.logger.Info("call index built", map[string]interface{}{
		"files":      len(allFacts),
		"cache_hits": hits,
		"parsed":     parsed,
		"failed":     failed,
	})

	return NewIndex(allFacts), nil
}

// extractOne returns facts for a single file, preferring the cache.
func (b *Builder) extractOne(ctx context.Context, path string) (*lang.FileFacts, bool, error) {
	if b.cache == nil {
		facts, err := b.extractor.ExtractFile(ctx, path)
		return facts, false, err
	}

	fingerprint, err := storage.FingerprintFile(path)
	if err != nil {
		return nil, false, err
	}

	if facts, ok, err := b.cache.GetFacts(path, fingerprint); err != nil {
		b.logger.Warn("cache read failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	} else if ok {
		return facts, true, nil
	}

	facts, err := b.extractor.ExtractFile(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if err := b.cache.PutFacts(path, fingerprint, facts); err != nil {
		b.logger.Warn("cache write failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	return facts, false, nil
}
