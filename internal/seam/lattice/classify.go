package lattice

import (
	"unicode/utf8"

	"github.com/seamscan/seamscan/internal/seam"
)

// softSeparatorEnd consumes a run of one-or-more soft_separator bytes
// ([ \t]) starting at pos and returns the offset just past the run. ok is
// false if pos does not start with at least one such byte.
func softSeparatorEnd(src []byte, pos int) (end int, ok bool) {
	end = pos
	for end < len(src) && isSoftSeparator(src[end]) {
		end++
	}
	return end, end > pos
}

// precededByWhitespaceOrStart reports whether the byte immediately before
// pos is a dialog_prefix_whitespace character, or pos is the start of the
// file (spec.md's "virtual pre-file position" rule).
func precededByWhitespaceOrStart(src []byte, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRune(src[:pos])
	return r == ' ' || r == '\t' || r == '\n'
}

// lastContentEnd scans backward from pos, skipping soft_separator bytes,
// and returns the rune immediately before the skipped whitespace and the
// offset just past it (the trimmed end of the content preceding pos).
func lastContentEnd(src []byte, pos int) (r rune, end int, found bool) {
	i := pos
	for i > 0 && isSoftSeparator(src[i-1]) {
		i--
	}
	if i == 0 {
		return 0, 0, false
	}
	r, size := utf8.DecodeLastRune(src[:i])
	return r, i, size > 0
}

// classifyHardSeparator handles the paragraph-break template, which is
// shared verbatim by Narrative and every InDialog(k) state (spec.md §4.3:
// "Hard separator: highest priority in every dialog state").
func classifyHardSeparator(src []byte, nlPos int, state seam.State) (SeamMatch, bool) {
	start := nlPos
	if start > 0 && src[start-1] == '\r' {
		start--
	}
	p := nlPos + 1
	if p < len(src) && src[p] == '\r' {
		p++
	}
	if !(p < len(src) && src[p] == '\n') {
		// A lone line break, not a paragraph break: not a recognized SEAM.
		return SeamMatch{}, false
	}
	end := p + 1

	lastRune, contentEnd, found := lastContentEnd(src, start)
	suppress := found && (isContinuationPunct(lastRune) || lastRune == emDash)

	if suppress {
		next := state
		if end < len(src) {
			r, _ := utf8.DecodeRune(src[end:])
			if kind, isOpener := seam.KindForOpener(r); isOpener {
				next = seam.InDialogState(kind)
			}
		}
		return SeamMatch{
			Kind:          HardSeparator,
			EmitsBoundary: false,
			NextState:     next,
			Resume:        end,
		}, true
	}

	sentenceEnd := contentEnd
	if !found {
		sentenceEnd = start
	}
	return SeamMatch{
		Kind:          HardSeparator,
		EmitsBoundary: true,
		NextState:     seam.Narrative,
		SentenceEnd:   sentenceEnd,
		Resume:        end,
	}, true
}

// classifyNarrative classifies an anchor found while in the Narrative
// state. start:end is the anchor's own byte span.
func classifyNarrative(src []byte, start, end int) (SeamMatch, bool) {
	r, _ := utf8.DecodeRune(src[start:end])

	switch {
	case isSentenceEndPunct(r):
		sepEnd, hasSep := softSeparatorEnd(src, end)
		if !hasSep || sepEnd >= len(src) {
			return SeamMatch{}, false
		}
		nr, _ := utf8.DecodeRune(src[sepEnd:])
		if isDigitOrUpper(nr) {
			return SeamMatch{
				Kind: NNSplit, EmitsBoundary: true, NextState: seam.Narrative,
				SentenceEnd: end, Resume: sepEnd,
				RequiresAbbrevCheck: r == '.', AbbrevCheckEnd: end, SkipTo: end,
			}, true
		}
		if kind, isOpener := seam.KindForOpener(nr); isOpener {
			return SeamMatch{
				Kind: NDSplit, EmitsBoundary: true, NextState: seam.InDialogState(kind),
				SentenceEnd: end, Resume: sepEnd,
				RequiresAbbrevCheck: r == '.', AbbrevCheckEnd: end, SkipTo: end,
			}, true
		}
		return SeamMatch{}, false

	case isContinuationPunct(r):
		sepEnd, hasSep := softSeparatorEnd(src, end)
		if !hasSep {
			return SeamMatch{}, false
		}
		if sepEnd < len(src) {
			nr, _ := utf8.DecodeRune(src[sepEnd:])
			if kind, isOpener := seam.KindForOpener(nr); isOpener {
				return SeamMatch{Kind: NDContinue, EmitsBoundary: false, NextState: seam.InDialogState(kind), Resume: sepEnd}, true
			}
		}
		return SeamMatch{Kind: NNContinue, EmitsBoundary: false, NextState: seam.Narrative, Resume: sepEnd}, true

	default:
		if kind, isOpener := seam.KindForOpener(r); isOpener {
			if !precededByWhitespaceOrStart(src, start) {
				return SeamMatch{}, false
			}
			return SeamMatch{Kind: DialogOpenIndependent, EmitsBoundary: false, NextState: seam.InDialogState(kind), Resume: end}, true
		}
		return SeamMatch{}, false
	}
}

// classifyDialog classifies an anchor found while in InDialog(kind). The
// anchor is always the state's closing delimiter; start:end is its span.
func classifyDialog(src []byte, start, end int) (SeamMatch, bool) {
	var prevR rune
	prevOk := start > 0
	if prevOk {
		var size int
		prevR, size = utf8.DecodeLastRune(src[:start])
		prevOk = size > 0
	}

	var afterR rune
	afterOk := end < len(src)
	var afterSize int
	if afterOk {
		afterR, afterSize = utf8.DecodeRune(src[end:])
	}

	// External family: close char immediately followed by punctuation,
	// with no separator between them ("c sentence_end_punct ..." / "c
	// continuation_punct ...").
	if afterOk && (isSentenceEndPunct(afterR) || isContinuationPunct(afterR)) {
		punctEnd := end + afterSize
		sepEnd, hasSep := softSeparatorEnd(src, punctEnd)

		if isSentenceEndPunct(afterR) {
			if !hasSep || sepEnd >= len(src) {
				return SeamMatch{}, false
			}
			nr, _ := utf8.DecodeRune(src[sepEnd:])
			if isDigitOrUpper(nr) {
				return SeamMatch{
					Kind: ExternalDefinitiveSplit, EmitsBoundary: true, NextState: seam.Narrative,
					SentenceEnd: punctEnd, Resume: sepEnd,
					RequiresAbbrevCheck: afterR == '.', AbbrevCheckEnd: punctEnd, SkipTo: punctEnd,
				}, true
			}
			if k2, isOpener := seam.KindForOpener(nr); isOpener {
				return SeamMatch{
					Kind: ExternalToDialog, EmitsBoundary: true, NextState: seam.InDialogState(k2),
					SentenceEnd: punctEnd, Resume: sepEnd,
					RequiresAbbrevCheck: afterR == '.', AbbrevCheckEnd: punctEnd, SkipTo: punctEnd,
				}, true
			}
			// Lowercase (or other non-start) text overrides the punctuation.
			return SeamMatch{Kind: ExternalDefinitiveContinue, EmitsBoundary: false, NextState: seam.Narrative, Resume: sepEnd}, true
		}

		if !hasSep {
			return SeamMatch{}, false
		}
		return SeamMatch{Kind: ExternalContinuation, EmitsBoundary: false, NextState: seam.Narrative, Resume: sepEnd}, true
	}

	// Internal family: sentence-ending punctuation immediately precedes
	// the close char ("sentence_end_punct c soft_separator ...").
	if prevOk && isSentenceEndPunct(prevR) {
		sepEnd, hasSep := softSeparatorEnd(src, end)
		if !hasSep || sepEnd >= len(src) {
			return SeamMatch{}, false
		}
		nr, _ := utf8.DecodeRune(src[sepEnd:])
		if isDigitOrUpper(nr) {
			return SeamMatch{
				Kind: InternalHardEnd, EmitsBoundary: true, NextState: seam.Narrative,
				SentenceEnd: end, Resume: sepEnd,
				RequiresAbbrevCheck: prevR == '.', AbbrevCheckEnd: start, SkipTo: start,
			}, true
		}
		return SeamMatch{Kind: InternalSoftEndPunct, EmitsBoundary: false, NextState: seam.Narrative, Resume: sepEnd}, true
	}

	// Neither side carries adjacent punctuation: dialog-to-dialog or an
	// unpunctuated soft exit, keyed only on what follows the separator.
	// Unlike the other templates, the separator here may be empty: two
	// delimiters can sit flush against each other ("(Whatever)(and more)")
	// without forcing a sentence break.
	sepEnd, _ := softSeparatorEnd(src, end)
	if sepEnd < len(src) {
		nr, _ := utf8.DecodeRune(src[sepEnd:])
		if k2, isOpener := seam.KindForOpener(nr); isOpener {
			return SeamMatch{Kind: DialogToDialog, EmitsBoundary: false, NextState: seam.InDialogState(k2), Resume: sepEnd}, true
		}
	}
	return SeamMatch{Kind: InternalSoftEndUnpunct, EmitsBoundary: false, NextState: seam.Narrative, Resume: sepEnd}, true
}
