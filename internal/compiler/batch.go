package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Batch holds the results of compiling a set of contract files. Each
// file is an independent compilation unit; there is no import mechanism
// and no cross-file symbol resolution, so units can be processed in any
// order. Paths are reported sorted for deterministic output.
type Batch struct {
	results map[string]*Result // absolute file path -> result
	paths   []string           // sorted absolute paths
}

// CompileFiles compiles each named file as its own compilation unit.
// Duplicate paths collapse to one unit. A file that cannot be read is a
// fatal error; source-level faults land in the per-file diagnostics.
func CompileFiles(paths []string, opts Options) (*Batch, error) {
	b := &Batch{results: make(map[string]*Result)}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		if _, seen := b.results[abs]; seen {
			continue
		}

		source, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}

		b.results[abs] = CompileWithOptions(string(source), opts)
		b.paths = append(b.paths, abs)
	}

	sort.Strings(b.paths)
	return b, nil
}

// Paths returns the compiled file paths in sorted order
func (b *Batch) Paths() []string {
	return b.paths
}

// Result returns the result for a previously compiled absolute path,
// or nil if the path is not part of the batch.
func (b *Batch) Result(path string) *Result {
	return b.results[path]
}

// HasErrors reports whether any unit in the batch failed
func (b *Batch) HasErrors() bool {
	for _, res := range b.results {
		if res.Diagnostics.HasErrors() {
			return true
		}
	}
	return false
}

// Format renders every unit's diagnostics, prefixed with its file name.
// Clean units produce no output.
func (b *Batch) Format() string {
	var parts []string
	for _, path := range b.paths {
		res := b.results[path]
		if res.Diagnostics.Count() == 0 {
			continue
		}
		parts = append(parts, res.Diagnostics.Format(filepath.Base(path)))
	}
	return strings.Join(parts, "\n")
}
