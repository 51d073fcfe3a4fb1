// Package restartlog implements the append-only record of source paths
// whose aux file is known complete, used to make re-runs idempotent
// (spec.md §4.8).
package restartlog

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Log is a single-writer sink: every worker task appends through the same
// Log, and appends are serialized so the underlying file is never
// interleaved mid-line (spec.md §4.8 invariant, §5 "single-writer
// discipline").
type Log struct {
	mu sync.Mutex
	f  *os.File
}

// Open opens (creating if necessary) the restart log at path for
// appending. Writers must eventually Close it.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("restartlog: opening %s: %w", path, err)
	}
	return &Log{f: f}, nil
}

// Append records path as complete. Safe for concurrent use.
func (l *Log) Append(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.WriteString(path + "\n"); err != nil {
		return fmt.Errorf("restartlog: appending %s: %w", path, err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// ReadCompleted reads every path recorded as complete at path into a set.
// A missing file is treated as an empty log, not an error (a fresh corpus
// has no restart log yet). Duplicate entries are tolerated and folded
// into one set membership, per spec.md §6.
func ReadCompleted(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restartlog: reading %s: %w", path, err)
	}
	defer f.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("restartlog: reading %s: %w", path, err)
	}
	return set, nil
}

// Clear removes the restart log file, the explicit "start over" operation
// (spec.md §4.8, "Clearing the log is an explicit operation").
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("restartlog: clearing %s: %w", path, err)
	}
	return nil
}
