package detect

import (
	"testing"

	"github.com/seamscan/seamscan/internal/seam"
	"github.com/seamscan/seamscan/internal/seam/lattice"
)

func mustDetector(t *testing.T) *Detector {
	t.Helper()
	l, err := lattice.New()
	if err != nil {
		t.Fatalf("lattice.New() error: %v", err)
	}
	return New(l)
}

func rawStrings(records []seam.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = string(r.Raw)
	}
	return out
}

func TestDetectTwoSentences(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("This is one. This is two.\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	want := []string{"This is one.", "This is two."}
	got := rawStrings(records)
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
	for i, r := range records {
		if r.Index != i {
			t.Errorf("record %d has Index %d", i, r.Index)
		}
	}
}

func TestDetectAbbreviationDoesNotSplit(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("Mr. Smith left."))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(records), rawStrings(records))
	}
	if string(records[0].Raw) != "Mr. Smith left." {
		t.Errorf("got %q", records[0].Raw)
	}
}

func TestDetectAbbreviationAtEndOfSentence(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("He lives in the U.S. Now he is home.\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	want := []string{"He lives in the U.S. Now he is home."}
	got := rawStrings(records)
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDetectHardSeparatorSplitsParagraphs(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("Alpha.\n\nBeta.\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	want := []string{"Alpha.", "Beta."}
	got := rawStrings(records)
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectColonParagraphDialogCoalesces(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("He said:\n\n\"Hello.\"\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(records), rawStrings(records))
	}
	want := "He said:\n\n\"Hello.\""
	if string(records[0].Raw) != want {
		t.Errorf("got %q, want %q", records[0].Raw, want)
	}
}

func TestDetectClosingQuoteParagraphSplits(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("\"Hello.\"\n\n\"World.\"\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	want := []string{"\"Hello.\"", "\"World.\""}
	got := rawStrings(records)
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectDialogToDialogContinuation(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("She read (Whatever)(and more) aloud.\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(records), rawStrings(records))
	}
}

func TestDetectSpansAreMonotonic(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect([]byte("One.\nTwo is here.\n\nThree follows.\n"))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if !records[i-1].Span.End.LessEqual(records[i].Span.Start) {
			t.Errorf("record %d span %v does not precede record %d span %v",
				i-1, records[i-1].Span, i, records[i].Span)
		}
	}
}

func TestDetectInvalidUTF8(t *testing.T) {
	d := mustDetector(t)
	_, err := d.Detect([]byte{'A', 'B', 0xff, 0xfe, '.'})
	if err != ErrInvalidUTF8 {
		t.Fatalf("got err=%v, want ErrInvalidUTF8", err)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	d := mustDetector(t)
	records, err := d.Detect(nil)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records for empty input, want 0", len(records))
	}
}
