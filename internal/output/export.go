package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WriteExport writes a result as JSON to path. Paths ending in .zst are
// zstd-compressed, which matters for whole-project graph dumps.
func WriteExport(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		w, err := zstd.NewWriter(f)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			w.Close()
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return w.Close()
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// ReadExport reads a JSON export back, transparently decompressing .zst
// files. Used by tooling that post-processes exports.
func ReadExport(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		r, err := zstd.NewReader(f)
		if err != nil {
			return err
		}
		defer r.Close()
		return json.NewDecoder(r).Decode(v)
	}

	return json.NewDecoder(f).Decode(v)
}
