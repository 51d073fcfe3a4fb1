package seam

import "unicode/utf8"

// Tracker incrementally translates byte offsets into one-based (line, col)
// coordinates. It is forward-only: AdvanceTo must never be called with a
// target byte less than the current position. One Tracker is created per
// file and dropped when the file is closed (spec.md §3, "Lifecycles").
type Tracker struct {
	src []byte

	bytePos int
	line    int
	col     int
}

// NewTracker creates a Tracker positioned at the start of src (line 1, col 1).
func NewTracker(src []byte) *Tracker {
	return &Tracker{src: src, line: 1, col: 1}
}

// BytePos returns the current byte offset, matching the last AdvanceTo call.
func (t *Tracker) BytePos() int { return t.bytePos }

// Position returns the (line, col) coordinate of the current byte offset.
func (t *Tracker) Position() Position {
	return Position{Line: t.line, Col: t.col}
}

// AdvanceTo decodes src[BytePos():target] and updates line/col accordingly.
// It panics if target is less than the current byte position: per spec.md
// §4.2, a backward call is a programming error and fatal for the file.
func (t *Tracker) AdvanceTo(target int) Position {
	if target < t.bytePos {
		panic("seam: Tracker.AdvanceTo called with a backward target")
	}
	for t.bytePos < target {
		r, size := utf8.DecodeRune(t.src[t.bytePos:])
		if size == 0 {
			break
		}
		t.advanceOne(r, size)
	}
	return t.Position()
}

func (t *Tracker) advanceOne(r rune, size int) {
	switch {
	case r == '\r':
		// Never a line boundary by itself (spec.md §3 names '\n' and
		// '\r\n' only). A following '\n' still advances the line via the
		// case below, so "\r\n" counts as exactly one boundary.
	case r == '\n':
		t.line++
		t.col = 1
	default:
		t.col++
	}
	t.bytePos += size
}
