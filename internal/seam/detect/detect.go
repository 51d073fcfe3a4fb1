// Package detect implements the Dialog State Machine: it drives the
// pattern lattice across one file's bytes, maintains the current dialog
// state, consults the abbreviation oracle on '.'-triggered candidates, and
// emits sentence records in file order (spec.md §4.4).
package detect

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/seamscan/seamscan/internal/seam"
	"github.com/seamscan/seamscan/internal/seam/abbrev"
	"github.com/seamscan/seamscan/internal/seam/lattice"
)

// ErrInvalidUTF8 is returned when src is not well-formed UTF-8. Per
// spec.md §4.4 this is fatal for the file: the caller should count it as a
// failed file and move on rather than attempt partial recovery.
var ErrInvalidUTF8 = errors.New("detect: input is not valid UTF-8")

// Detector drives one run of the Dialog State Machine over a single file's
// bytes. It holds no state of its own beyond a reference to the
// process-wide Lattice, so one Detector may be reused across files, or a
// fresh one constructed per file; both are cheap (spec.md §3, "Lifecycles"
// treats the Dialog State Machine itself as per-file, but nothing here is
// file-specific until Detect is called).
type Detector struct {
	lattice *lattice.Lattice
}

// New constructs a Detector bound to the given Lattice.
func New(l *lattice.Lattice) *Detector {
	return &Detector{lattice: l}
}

// Detect runs the operation loop of spec.md §4.4 over src and returns the
// sentence records it produced, in index order. The returned Records
// borrow directly from src; callers must not mutate or discard src while
// the records are in use.
func (d *Detector) Detect(src []byte) ([]seam.Record, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}

	var (
		state         = seam.Narrative
		sentenceStart = 0
		bytePos       = 0
		index         = 0
		tracker       = seam.NewTracker(src)
		records       []seam.Record
	)

	emit := func(end int) {
		if end <= sentenceStart {
			return
		}
		startPos := tracker.AdvanceTo(sentenceStart)
		endPos := tracker.AdvanceTo(end)
		records = append(records, seam.Record{
			Index: index,
			Raw:   src[sentenceStart:end],
			Span:  seam.Span{Start: startPos, End: endPos},
		})
		index++
	}

	for {
		m, ok := d.lattice.Next(state, src, bytePos)
		if !ok {
			emit(trimmedEnd(src))
			return records, nil
		}

		if m.RequiresAbbrevCheck && abbrev.Is(src[sentenceStart:m.AbbrevCheckEnd]) {
			if m.SkipTo <= bytePos {
				return nil, fmt.Errorf("detect: abbreviation skip did not advance past byte %d", bytePos)
			}
			bytePos = m.SkipTo
			continue
		}

		if m.EmitsBoundary {
			emit(m.SentenceEnd)
			sentenceStart = m.Resume
			bytePos = m.Resume
		} else {
			if m.Resume < bytePos {
				return nil, fmt.Errorf("detect: non-emitting transition moved backward from byte %d to %d", bytePos, m.Resume)
			}
			bytePos = m.Resume
		}
		state = m.NextState
	}
}

// trimmedEnd returns the offset of the trimmed end of src: the position
// just past the last byte that is not part of a trailing whitespace run
// (spec.md §4.4 step 3, "the trimmed end of S").
func trimmedEnd(src []byte) int {
	end := len(src)
	for end > 0 && isTrailingSpace(src[end-1]) {
		end--
	}
	return end
}

func isTrailingSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
