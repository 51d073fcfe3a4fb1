// Package auxfile writes the sibling sentence-and-span file that sits next
// to each processed source file (spec.md §4.6).
package auxfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seamscan/seamscan/internal/seam"
	"github.com/seamscan/seamscan/internal/seam/normalize"
)

const suffix = "_seams.txt"

// DestPath returns the aux file path for a given source path:
// "<source_stem>_seams.txt" alongside the source.
func DestPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + suffix
}

// IsComplete reports whether the aux file at path exists and ends with the
// trailing newline that marks a fully written file. A missing file, an
// empty file, or one without a trailing "\n" is considered incomplete and
// will be overwritten on the next run.
func IsComplete(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return false
	}
	return buf[0] == '\n'
}

// Writer accumulates records for one source file and commits them
// atomically: records are buffered into a temporary sibling file and
// promoted to the final name only on Commit, so a crash mid-run never
// leaves a partial file under the real name (spec.md §4.6, §7).
type Writer struct {
	finalPath string
	tmp       *os.File
	buf       *bufio.Writer
	next      int
}

// Create opens a new Writer for sourcePath's aux file. The temporary file
// is created in the same directory as the destination so the final rename
// is always same-filesystem.
func Create(sourcePath string) (*Writer, error) {
	finalPath := DestPath(sourcePath)
	dir := filepath.Dir(finalPath)

	tmp, err := os.CreateTemp(dir, ".seamscan-aux-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("auxfile: creating temp file for %s: %w", finalPath, err)
	}
	return &Writer{
		finalPath: finalPath,
		tmp:       tmp,
		buf:       bufio.NewWriter(tmp),
	}, nil
}

// WriteRecord appends one record. index is expected to equal the number of
// records already written (0-based, gapless); callers drive this by
// passing r.Index from a Detector's output in order.
func (w *Writer) WriteRecord(r seam.Record) error {
	if r.Index != w.next {
		return fmt.Errorf("auxfile: out-of-order record index %d, expected %d", r.Index, w.next)
	}
	normalized := normalize.String(r.Raw)
	if _, err := fmt.Fprintf(w.buf, "%d\t%s\t%s\n", r.Index, normalized, r.Span.String()); err != nil {
		return fmt.Errorf("auxfile: writing record %d: %w", r.Index, err)
	}
	w.next++
	return nil
}

// Commit flushes buffered output, closes the temp file, and renames it
// onto the final path. After Commit the Writer must not be reused.
func (w *Writer) Commit() error {
	if err := w.buf.Flush(); err != nil {
		w.abortQuiet()
		return fmt.Errorf("auxfile: flushing %s: %w", w.finalPath, err)
	}
	name := w.tmp.Name()
	if err := w.tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("auxfile: closing temp file for %s: %w", w.finalPath, err)
	}
	if err := os.Rename(name, w.finalPath); err != nil {
		os.Remove(name)
		return fmt.Errorf("auxfile: renaming into place %s: %w", w.finalPath, err)
	}
	return nil
}

// Abort discards whatever has been buffered and removes the temp file. It
// is the caller's responsibility to call Abort instead of Commit on any
// error path between Create and a successful Commit.
func (w *Writer) Abort() error {
	return w.abortQuiet()
}

func (w *Writer) abortQuiet() error {
	name := w.tmp.Name()
	w.tmp.Close()
	return os.Remove(name)
}
