package seam

import "testing"

func TestTrackerAdvanceToBasic(t *testing.T) {
	tr := NewTracker([]byte("ab\ncd"))
	pos := tr.AdvanceTo(2)
	if pos != (Position{Line: 1, Col: 3}) {
		t.Fatalf("AdvanceTo(2) = %+v, want {1 3}", pos)
	}
	pos = tr.AdvanceTo(5)
	if pos != (Position{Line: 2, Col: 3}) {
		t.Fatalf("AdvanceTo(5) = %+v, want {2 3}", pos)
	}
}

func TestTrackerCRLFCountsAsOneLineBoundary(t *testing.T) {
	tr := NewTracker([]byte("ab\r\ncd"))
	pos := tr.AdvanceTo(6)
	if pos.Line != 2 {
		t.Fatalf("Line = %d, want 2 (one boundary for \\r\\n)", pos.Line)
	}
	if pos.Col != 3 {
		t.Fatalf("Col = %d, want 3", pos.Col)
	}
}

func TestTrackerLoneCRIsNotALineBoundary(t *testing.T) {
	tr := NewTracker([]byte("ab\rcd"))
	pos := tr.AdvanceTo(5)
	if pos.Line != 1 {
		t.Fatalf("Line = %d, want 1: a lone '\\r' must not advance the line", pos.Line)
	}
}

func TestTrackerAdvanceToIsIncremental(t *testing.T) {
	src := []byte("one\ntwo\nthree")
	tr := NewTracker(src)
	first := tr.AdvanceTo(4)
	if first.Line != 2 || first.Col != 1 {
		t.Fatalf("first AdvanceTo = %+v, want {2 1}", first)
	}
	second := tr.AdvanceTo(8)
	if second.Line != 3 || second.Col != 1 {
		t.Fatalf("second AdvanceTo = %+v, want {3 1}", second)
	}
	if tr.BytePos() != 8 {
		t.Fatalf("BytePos() = %d, want 8", tr.BytePos())
	}
}

func TestTrackerAdvanceToBackwardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on a backward AdvanceTo call")
		}
	}()
	tr := NewTracker([]byte("hello"))
	tr.AdvanceTo(3)
	tr.AdvanceTo(1)
}
