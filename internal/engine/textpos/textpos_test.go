package textpos

import "testing"

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{NewPosition(1, 1), NewPosition(1, 1), 0},
		{NewPosition(1, 1), NewPosition(1, 2), -1},
		{NewPosition(2, 1), NewPosition(1, 9), 1},
		{NewPosition(3, 4), NewPosition(4, 1), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewRangeNormalizes(t *testing.T) {
	r := NewRange(3, 5, 1, 2)
	if r.Start() != NewPosition(1, 2) || r.End() != NewPosition(3, 5) {
		t.Errorf("NewRange did not normalize: %v", r)
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(1, 3, 1, 8)

	if !r.ContainsPosition(NewPosition(1, 3)) {
		t.Error("edge should be contained")
	}
	if r.StrictContainsPosition(NewPosition(1, 3)) {
		t.Error("edge should not be strictly contained")
	}
	if !r.StrictContainsRange(NewRange(1, 4, 1, 7)) {
		t.Error("inner range should be strictly contained")
	}
	if r.StrictContainsRange(NewRange(1, 4, 1, 8)) {
		t.Error("range touching the end should not be strictly contained")
	}
}

func TestRangeIntersect(t *testing.T) {
	a := NewRange(1, 1, 1, 5)

	got, ok := a.Intersect(NewRange(1, 3, 2, 1))
	if !ok || got != NewRange(1, 3, 1, 5) {
		t.Errorf("Intersect = %v %v", got, ok)
	}

	got, ok = a.Intersect(NewRange(1, 5, 1, 9))
	if !ok || !got.IsEmpty() {
		t.Errorf("touching ranges should intersect empty, got %v %v", got, ok)
	}

	if _, ok := a.Intersect(NewRange(1, 6, 1, 9)); ok {
		t.Error("disjoint ranges should not intersect")
	}
}

func TestSelectionDirection(t *testing.T) {
	ltr := NewSelection(1, 1, 2, 3)
	rtl := NewSelection(2, 3, 1, 1)

	if ltr.Direction() != LTR || rtl.Direction() != RTL {
		t.Fatal("unexpected directions")
	}
	if ltr.Range() != rtl.Range() {
		t.Error("both selections should cover the same range")
	}
	if got := SelectionFromRange(rtl.Range(), RTL); got != rtl {
		t.Errorf("SelectionFromRange RTL = %v, want %v", got, rtl)
	}
	if got := rtl.SetEndPosition(4, 1); got != NewSelection(4, 1, 1, 1) {
		t.Errorf("SetEndPosition = %v", got)
	}
}

func TestSelectionsEqual(t *testing.T) {
	a := []Selection{NewSelection(1, 1, 1, 1)}
	if !SelectionsEqual(a, []Selection{NewSelection(1, 1, 1, 1)}) {
		t.Error("equal slices reported different")
	}
	if SelectionsEqual(a, nil) {
		t.Error("different lengths reported equal")
	}
	if !SelectionsEqual(nil, []Selection{}) {
		t.Error("nil and empty should be equal")
	}
}
