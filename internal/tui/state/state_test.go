package state

import (
	"math"
	"testing"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestCardHeight(t *testing.T) {
	if got := CardHeight(0, false); got != 12 {
		t.Fatalf("expected default height 12, got %d", got)
	}
	if got := CardHeight(30, false); got != 26 {
		t.Fatalf("expected height 26, got %d", got)
	}
	if got := CardHeight(30, true); got != 24 {
		t.Fatalf("expected height 24 with status, got %d", got)
	}
	if got := CardHeight(5, true); got != 6 {
		t.Fatalf("expected minimum height 6, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	cases := []struct {
		total, cursor, height int
		start, end            int
	}{
		{total: 0, cursor: 0, height: 5, start: 0, end: 0},
		{total: 3, cursor: 1, height: 5, start: 0, end: 3},
		{total: 10, cursor: 0, height: 4, start: 0, end: 4},
		{total: 10, cursor: 5, height: 4, start: 3, end: 7},
		{total: 10, cursor: 9, height: 4, start: 6, end: 10},
	}
	for _, tc := range cases {
		start, end := CenteredWindow(tc.total, tc.cursor, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("CenteredWindow(%d, %d, %d) = (%d, %d), want (%d, %d)", tc.total, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestScroll_EasesToTarget(t *testing.T) {
	s := NewScroll(0, 10, 4)
	if s.Offset() != 0 {
		t.Fatalf("expected start offset 0, got %v", s.Offset())
	}
	prev := s.Offset()
	for !s.Done() {
		s = s.Advance()
		if s.Offset() < prev {
			t.Fatalf("offset must be monotonic, got %v after %v", s.Offset(), prev)
		}
		prev = s.Offset()
	}
	if s.Offset() != 10 {
		t.Fatalf("expected final offset 10, got %v", s.Offset())
	}
	if got := NewScroll(0, 10, 4).Advance().Advance().Offset(); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected midpoint 5, got %v", got)
	}
}

func TestScroll_Retarget(t *testing.T) {
	s := NewScroll(0, 10, 4).Advance().Advance()
	r := s.Retarget(20)
	if r.From != 5 || r.To != 20 || r.Frame != 0 {
		t.Fatalf("unexpected retarget: %+v", r)
	}
	if NewScroll(3, 3, 0).Frames != 1 {
		t.Fatal("expected at least one frame")
	}
}
