package lang

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the largest source file the scanner will parse.
// Bigger files are almost always generated or vendored bundles.
const DefaultMaxFileSize = 2 * 1024 * 1024

// defaultIgnoreDirs are directory names skipped during project scans.
var defaultIgnoreDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"venv":         {},
	".venv":        {},
}

// ScanOptions controls project file discovery.
type ScanOptions struct {
	// Languages restricts the scan to the given languages. Empty means all
	// supported languages.
	Languages []Language
	// IgnoreDirs adds directory names to skip on top of the defaults.
	IgnoreDirs []string
	// MaxFileSize overrides DefaultMaxFileSize when positive.
	MaxFileSize int64
}

// ListSourceFiles walks root and returns all parseable source files, honoring
// ignore directories and the file size limit. Hidden directories are always
// skipped.
func ListSourceFiles(root string, opts ScanOptions) ([]string, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	ignore := make(map[string]struct{}, len(defaultIgnoreDirs)+len(opts.IgnoreDirs))
	for name := range defaultIgnoreDirs {
		ignore[name] = struct{}{}
	}
	for _, name := range opts.IgnoreDirs {
		ignore[name] = struct{}{}
	}

	var wanted map[Language]struct{}
	if len(opts.Languages) > 0 {
		wanted = make(map[Language]struct{}, len(opts.Languages))
		for _, l := range opts.Languages {
			wanted[l] = struct{}{}
		}
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := ignore[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		lang, ok := LanguageFromExtension(ext)
		if !ok {
			return nil
		}
		if wanted != nil {
			if _, ok := wanted[lang]; !ok {
				return nil
			}
		}
		if info.Size() > maxSize {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
