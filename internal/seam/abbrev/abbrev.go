// Package abbrev implements the abbreviation oracle: a constant-time test
// for whether the period ending a trailing token belongs to a known
// abbreviation rather than a sentence end (spec.md §4.1).
package abbrev

// maxTokenLen bounds how far back Is looks for the trailing token: the
// longest entry in the abbreviation tables below, inclusive of the
// terminating period.
const maxTokenLen = 6

// known is the closed enumeration of abbreviations the oracle recognizes,
// case-preserving, each including its trailing period.
var known = buildSet(
	titles, singleCapitals, geographic, measurement,
)

var titles = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Jr.", "St.", "Rev.",
	"Capt.", "Col.", "Gen.", "Lt.", "Sgt.", "Maj.", "Cmdr.", "Adm.",
	"Hon.", "Fr.", "Msgr.", "Mx.",
}

var geographic = []string{
	"U.S.A.", "U.S.", "U.K.", "N.Y.", "D.C.", "U.N.", "E.U.",
}

var measurement = []string{
	"ft.", "in.", "lbs.", "oz.", "mi.", "km.", "cm.", "mm.", "yd.", "kg.", "lb.",
}

// singleCapitals covers initials and compass directions: "A." through "Z.".
var singleCapitals = func() []string {
	out := make([]string, 26)
	for i := 0; i < 26; i++ {
		out[i] = string(rune('A'+i)) + "."
	}
	return out
}()

func buildSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, tok := range list {
			set[tok] = struct{}{}
			if len(tok) > maxTokenLen {
				maxTokenLenPanic(tok)
			}
		}
	}
	return set
}

// maxTokenLenPanic documents the invariant that every table entry fits the
// declared window; it is only reachable if a future edit to the tables
// above grows an entry past maxTokenLen.
func maxTokenLenPanic(tok string) {
	panic("abbrev: table entry exceeds maxTokenLen: " + tok)
}

// Is reports whether the byte slice ending at a candidate period is a known
// abbreviation. text must end with the period itself (e.g. "Dr." or
// "Mr."); the oracle looks backward from the end to find the trailing
// token, stopping at the first byte that is not a letter or period, and
// giving up once the token would exceed maxTokenLen.
//
// Is never fails: an unrecognized trailing token simply returns false.
func Is(text []byte) bool {
	if len(text) == 0 || text[len(text)-1] != '.' {
		return false
	}

	start := len(text)
	for start > 0 {
		c := text[start-1]
		if !isLetter(c) && c != '.' {
			break
		}
		if len(text)-start == maxTokenLen {
			// Longer than every table entry: cannot be a known abbreviation.
			return false
		}
		start--
	}
	token := string(text[start:])
	if token == "" {
		return false
	}

	_, ok := known[token]
	return ok
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
