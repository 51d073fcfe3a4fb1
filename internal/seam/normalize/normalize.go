// Package normalize folds internal whitespace runs in a raw sentence slice
// into single ASCII spaces (spec.md §4.5).
package normalize

// isSpace reports whether b is one of the four whitespace bytes the
// normalizer collapses: space, tab, '\n', '\r'.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// String returns raw with every interior maximal whitespace run collapsed
// to a single ASCII space; leading and trailing whitespace is dropped. All
// non-whitespace bytes are preserved byte-exactly. Empty and all-whitespace
// input yield an empty string.
func String(raw []byte) string {
	var buf []byte
	buf = AppendTo(buf[:0], raw)
	return string(buf)
}

// AppendTo normalizes raw and appends the result to dst, returning the
// extended slice. This lets batch callers reuse a single growable buffer
// across many sentences instead of allocating a new string each time
// (spec.md §4.5, "Buffer-reusing" variant).
func AppendTo(dst []byte, raw []byte) []byte {
	start := len(dst)
	inSpace := false
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if isSpace(b) {
			inSpace = true
			continue
		}
		if inSpace {
			if len(dst) > start {
				dst = append(dst, ' ')
			}
			inSpace = false
		}
		dst = append(dst, b)
	}
	return dst
}
