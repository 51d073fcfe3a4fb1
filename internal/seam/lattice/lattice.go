// Package lattice implements the pattern lattice / DFA set: a family of
// multi-pattern matchers, one per dialog state, that locate the next
// boundary-candidate SEAM in the input and classify it into a transition
// (spec.md §4.3).
//
// Each state's matcher is a small Aho-Corasick automaton
// (github.com/coregx/ahocorasick) built once over that state's anchor
// bytes — the fixed delimiter and punctuation characters a SEAM can start
// on. The automaton does the "skip quickly across narrative runs" work
// spec.md's design notes call for; once it reports a candidate anchor, a
// hand-written classifier inspects the surrounding bytes to decide which
// template matched, if any, and what transition it implies. Patterns never
// match "normal text" — only the anchor bytes listed below are ever
// searched for.
package lattice

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/seamscan/seamscan/internal/seam"
)

// MatchKind names which template in spec.md §4.3 produced a SeamMatch.
type MatchKind uint8

const (
	HardSeparator MatchKind = iota
	NNSplit
	NNContinue
	NDSplit
	NDContinue
	DialogOpenIndependent
	InternalHardEnd
	InternalSoftEndPunct
	DialogToDialog
	InternalSoftEndUnpunct
	ExternalDefinitiveSplit
	ExternalDefinitiveContinue
	ExternalToDialog
	ExternalContinuation
)

// String names a match kind for debug dumps (spec.md §6, "transition_type").
func (k MatchKind) String() string {
	switch k {
	case HardSeparator:
		return "HardSeparator"
	case NNSplit:
		return "N->N Split"
	case NNContinue:
		return "N->N Continue"
	case NDSplit:
		return "N->D Split"
	case NDContinue:
		return "N->D Continue"
	case DialogOpenIndependent:
		return "DialogOpenIndependent"
	case InternalHardEnd:
		return "InternalHardEnd"
	case InternalSoftEndPunct:
		return "InternalSoftEndPunct"
	case DialogToDialog:
		return "DialogToDialog"
	case InternalSoftEndUnpunct:
		return "InternalSoftEndUnpunct"
	case ExternalDefinitiveSplit:
		return "ExternalDefinitiveSplit"
	case ExternalDefinitiveContinue:
		return "ExternalDefinitiveContinue"
	case ExternalToDialog:
		return "ExternalToDialog"
	case ExternalContinuation:
		return "ExternalContinuation"
	default:
		return fmt.Sprintf("MatchKind(%d)", uint8(k))
	}
}

// SeamMatch describes one classified SEAM: where the current sentence ends
// (if a boundary is emitted), where scanning resumes, and the resulting
// dialog state.
type SeamMatch struct {
	Kind          MatchKind
	EmitsBoundary bool
	NextState     seam.State

	// SentenceEnd is the exclusive end of the sentence being closed. Only
	// meaningful when EmitsBoundary is true.
	SentenceEnd int

	// Resume is the byte offset the detector should continue scanning
	// from: the next sentence's start byte when EmitsBoundary is true, or
	// match_end for non-emitting transitions (spec.md §4.4 step 7/9).
	Resume int

	// AbbrevCheckEnd is non-zero (and RequiresAbbrevCheck true) when Kind
	// was triggered by a '.' and the abbreviation oracle must be
	// consulted against src[sentenceStart:AbbrevCheckEnd] before the
	// boundary is accepted.
	RequiresAbbrevCheck bool
	AbbrevCheckEnd      int

	// SkipTo is where the detector should resume searching (without
	// emitting anything, and without changing state) if the abbreviation
	// oracle rejects this candidate as a real boundary.
	SkipTo int
}

const emDash = '—'

func isSentenceEndPunct(r rune) bool  { return r == '.' || r == '!' || r == '?' }
func isContinuationPunct(r rune) bool { return r == ',' || r == ';' || r == ':' }
func isSoftSeparator(b byte) bool     { return b == ' ' || b == '\t' }
func isDigitOrUpper(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Lattice holds the process-wide, immutable per-state matchers. It is
// built once at startup (New) and shared by every worker (spec.md §3,
// §5: "DFA Set: immutable after initialization; freely shared").
type Lattice struct {
	narrative *stateMatcher
	dialog    [7]*stateMatcher
}

type stateMatcher struct {
	automaton *ahocorasick.Automaton
}

// New builds the Lattice: one Aho-Corasick automaton for Narrative and one
// per supported dialog kind.
func New() (*Lattice, error) {
	narrativeAnchors := []string{
		"\n",
		".", "!", "?",
		",", ";", ":",
		"\"", "'", "“", "‘", "(", "[", "{",
	}
	nm, err := buildMatcher(narrativeAnchors)
	if err != nil {
		return nil, fmt.Errorf("lattice: building narrative automaton: %w", err)
	}

	l := &Lattice{narrative: nm}
	for k := 0; k < seam.NumDialogKinds(); k++ {
		kind := seam.DialogKind(k)
		anchors := []string{"\n", string(kind.Close())}
		m, err := buildMatcher(anchors)
		if err != nil {
			return nil, fmt.Errorf("lattice: building automaton for %s: %w", kind, err)
		}
		l.dialog[k] = m
	}
	return l, nil
}

func buildMatcher(anchors []string) (*stateMatcher, error) {
	b := ahocorasick.NewBuilder()
	for _, a := range anchors {
		b.AddPattern([]byte(a))
	}
	auto, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &stateMatcher{automaton: auto}, nil
}

// Next finds and classifies the next SEAM at or after `from` in src for the
// given dialog state. It returns ok=false when no further SEAM exists,
// meaning the remainder of src is one final sentence (spec.md §4.4 step 3).
func (l *Lattice) Next(state seam.State, src []byte, from int) (SeamMatch, bool) {
	m := l.narrative
	if state.InDialog {
		m = l.dialog[state.Kind]
	}

	pos := from
	for pos < len(src) {
		anchor := m.automaton.Find(src, pos)
		if anchor == nil {
			return SeamMatch{}, false
		}
		var sm SeamMatch
		var ok bool
		if isHardSeparatorAnchor(src, anchor.Start) {
			sm, ok = classifyHardSeparator(src, anchor.Start, state)
		} else if state.InDialog {
			sm, ok = classifyDialog(src, anchor.Start, anchor.End)
		} else {
			sm, ok = classifyNarrative(src, anchor.Start, anchor.End)
		}
		if ok {
			return sm, true
		}
		// Zero-width or rejected candidate: advance by exactly one scalar
		// value past the anchor byte to guarantee forward progress
		// (spec.md §4.4, "Failure modes").
		_, size := utf8.DecodeRune(src[anchor.Start:])
		if size == 0 {
			size = 1
		}
		pos = anchor.Start + size
	}
	return SeamMatch{}, false
}

func isHardSeparatorAnchor(src []byte, pos int) bool {
	return pos < len(src) && src[pos] == '\n'
}
