package normalize

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "hello world", "hello world"},
		{"internal newline", "He said:\n\n\"Hello.\"", "He said: \"Hello.\""},
		{"tabs and newlines collapse", "a\t\tb\n\nc", "a b c"},
		{"leading/trailing not present", "word", "word"},
		{"empty", "", ""},
		{"all whitespace", " \t\n\r ", ""},
		{"crlf", "a\r\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String([]byte(tt.in)); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{"a  b", "a\n\nb\t\tc", "", "   ", "x"}
	for _, in := range inputs {
		once := String([]byte(in))
		twice := String([]byte(once))
		if once != twice {
			t.Errorf("normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestStringNoForbiddenBytes(t *testing.T) {
	in := "a\tb\nc\rd  e\n\n\nf"
	got := String([]byte(in))
	if strings.ContainsAny(got, "\t\n\r") {
		t.Errorf("normalized output contains forbidden whitespace byte: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("normalized output contains a run of >=2 spaces: %q", got)
	}
}

func TestAppendToReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = AppendTo(buf, []byte("a\n\nb"))
	if string(buf) != "a b" {
		t.Fatalf("got %q", buf)
	}
	buf = AppendTo(buf[:0], []byte("c\td"))
	if string(buf) != "c d" {
		t.Fatalf("got %q", buf)
	}
}
