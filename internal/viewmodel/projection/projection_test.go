package projection

import (
	"testing"

	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
)

type lines []string

func (l lines) LineContent(n int) string { return l[n-1] }

// "hello world foo" wrapped as "hello " / "  world " / "  foo"
func wrapped() (*Projection, lines) {
	return New(&linebreaks.BreakData{
		BreakOffsets:              []int{6, 12},
		BreakOffsetsVisibleColumn: []int{6, 12},
		WrappedTextIndentLength:   2,
	}, true), lines{"hello world foo"}
}

func TestViewLineCount(t *testing.T) {
	p, _ := wrapped()
	if p.ViewLineCount() != 3 {
		t.Errorf("ViewLineCount() = %d, want 3", p.ViewLineCount())
	}
	if New(nil, true).ViewLineCount() != 1 {
		t.Error("identity projection should have one view line")
	}
	hidden := p.SetVisible(false)
	if hidden.ViewLineCount() != 0 || p.ViewLineCount() != 3 {
		t.Error("SetVisible must return a new projection")
	}
	if hidden.BreakData() != p.BreakData() {
		t.Error("SetVisible should keep the break data")
	}
}

func TestViewLineContent(t *testing.T) {
	p, src := wrapped()

	want := []string{"hello ", "  world ", "  foo"}
	for i, w := range want {
		if got := p.ViewLineContent(src, 1, i); got != w {
			t.Errorf("ViewLineContent(%d) = %q, want %q", i, got, w)
		}
	}
	if got := p.ViewLineMinColumn(1); got != 3 {
		t.Errorf("ViewLineMinColumn(1) = %d, want 3", got)
	}
	if got := p.ViewLineMaxColumn(src, 1, 2); got != 6 {
		t.Errorf("ViewLineMaxColumn(2) = %d, want 6", got)
	}
	if !p.ContinuesWithWrappedLine(1) || p.ContinuesWithWrappedLine(2) {
		t.Error("ContinuesWithWrappedLine mismatch")
	}
	if got := p.SegmentStartColumn(2); got != 13 {
		t.Errorf("SegmentStartColumn(2) = %d, want 13", got)
	}
}

func TestModelColumnOfViewPosition(t *testing.T) {
	p, _ := wrapped()

	tests := []struct {
		index, column, want int
	}{
		{0, 1, 1},
		{0, 7, 7},
		{0, 30, 7}, // clamped to the segment end
		{1, 1, 7},  // inside the indent
		{1, 3, 7},
		{1, 9, 13},
		{2, 4, 14},
	}
	for _, tt := range tests {
		if got := p.ModelColumnOfViewPosition(tt.index, tt.column); got != tt.want {
			t.Errorf("ModelColumnOfViewPosition(%d, %d) = %d, want %d", tt.index, tt.column, got, tt.want)
		}
	}
}

func TestViewPositionOfModelPosition(t *testing.T) {
	p, _ := wrapped()

	tests := []struct {
		column   int
		affinity Affinity
		want     textpos.Position
	}{
		{1, AffinityNone, textpos.NewPosition(10, 1)},
		{6, AffinityNone, textpos.NewPosition(10, 6)},
		{7, AffinityNone, textpos.NewPosition(11, 3)},
		{7, AffinityLeft, textpos.NewPosition(10, 7)},
		{7, AffinityRight, textpos.NewPosition(11, 3)},
		{16, AffinityNone, textpos.NewPosition(12, 6)},
	}
	for _, tt := range tests {
		if got := p.ViewPositionOfModelPosition(10, tt.column, tt.affinity); got != tt.want {
			t.Errorf("ViewPositionOfModelPosition(%d, %v) = %v, want %v", tt.column, tt.affinity, got, tt.want)
		}
	}
	if got := p.ViewLineNumberOfModelPosition(10, 14); got != 12 {
		t.Errorf("ViewLineNumberOfModelPosition = %d, want 12", got)
	}
}

func TestRoundTrip(t *testing.T) {
	p, src := wrapped()
	length := len([]rune(src[0]))
	for col := 1; col <= length+1; col++ {
		view := p.ViewPositionOfModelPosition(1, col, AffinityNone)
		back := p.ModelColumnOfViewPosition(view.LineNumber-1, view.Column)
		if back != col {
			t.Errorf("column %d -> %v -> %d", col, view, back)
		}
	}
}

func TestNormalizePosition(t *testing.T) {
	p, _ := wrapped()

	got := p.NormalizePosition(1, textpos.NewPosition(2, 3), AffinityLeft)
	if got != textpos.NewPosition(1, 7) {
		t.Errorf("NormalizePosition left = %v", got)
	}
	got = p.NormalizePosition(0, textpos.NewPosition(1, 7), AffinityRight)
	if got != textpos.NewPosition(2, 3) {
		t.Errorf("NormalizePosition right = %v", got)
	}
	got = p.NormalizePosition(2, textpos.NewPosition(3, 6), AffinityRight)
	if got != textpos.NewPosition(3, 6) {
		t.Errorf("last line should not move, got %v", got)
	}
}
