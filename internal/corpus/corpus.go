// Package corpus discovers input files for a run: it yields paths
// matching the book-corpus naming convention "**/*-0.txt" under a root, or
// validates a single such file (spec.md §6, "Input file selection").
// Only existence and filename-pattern filtering happen here; the files'
// contents are never inspected.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const pattern = "-0.txt"

// Matches reports whether name (a base filename, not a full path) follows
// the expected "*-0.txt" convention.
func Matches(name string) bool {
	return strings.HasSuffix(name, pattern) && len(name) > len(pattern)
}

// Discover resolves root to the list of source files to process. If root
// names a single file, it must match the naming convention and is
// returned alone. If root names a directory, it is walked recursively and
// every matching file is returned, sorted for deterministic ordering
// (spec.md leaves cross-file ordering unspecified; a stable producer
// still makes runs reproducible to compare).
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}

	if !info.IsDir() {
		if !Matches(filepath.Base(root)) {
			return nil, fmt.Errorf("corpus: %s does not match the %s naming convention", root, pattern)
		}
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if Matches(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: walking %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
