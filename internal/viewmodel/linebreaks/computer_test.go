package linebreaks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		text    string
		breaks  []int
		cols    []int
		indent  int
		noBreak bool
	}{
		{
			name:    "wrapping disabled",
			opts:    Options{WrappingColumn: 0, TabSize: 4},
			text:    "a very long line that would otherwise wrap",
			noBreak: true,
		},
		{
			name:    "fits",
			opts:    Options{WrappingColumn: 10, TabSize: 4},
			text:    "short",
			noBreak: true,
		},
		{
			name:   "breaks after space",
			opts:   Options{WrappingColumn: 5, TabSize: 4},
			text:   "hello world",
			breaks: []int{6},
			cols:   []int{6},
		},
		{
			name:   "several words",
			opts:   Options{WrappingColumn: 6, TabSize: 4},
			text:   "aaa bbb ccc",
			breaks: []int{4, 8},
			cols:   []int{4, 8},
		},
		{
			name:   "no opportunity breaks mid word",
			opts:   Options{WrappingColumn: 4, TabSize: 4},
			text:   "abcdefghij",
			breaks: []int{4, 8},
			cols:   []int{4, 8},
		},
		{
			name:   "wide characters",
			opts:   Options{WrappingColumn: 4, TabSize: 4},
			text:   "日本語",
			breaks: []int{2},
			cols:   []int{4},
		},
		{
			name:   "same indent",
			opts:   Options{WrappingColumn: 10, TabSize: 4, WrappingIndent: IndentSame},
			text:   "  aaaa bbbb cccc",
			breaks: []int{7, 12},
			cols:   []int{7, 12},
			indent: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewComputer(tt.opts).Compute(tt.text)
			if tt.noBreak {
				if got != nil {
					t.Fatalf("Compute() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Compute() = nil, want breaks")
			}
			if diff := cmp.Diff(tt.breaks, got.BreakOffsets); diff != "" {
				t.Errorf("BreakOffsets mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.cols, got.BreakOffsetsVisibleColumn); diff != "" {
				t.Errorf("BreakOffsetsVisibleColumn mismatch (-want +got):\n%s", diff)
			}
			if got.WrappedTextIndentLength != tt.indent {
				t.Errorf("WrappedTextIndentLength = %d, want %d", got.WrappedTextIndentLength, tt.indent)
			}
			if got.OutputLineCount() != len(tt.breaks)+1 {
				t.Errorf("OutputLineCount() = %d", got.OutputLineCount())
			}
		})
	}
}

func TestBreakOffsetsAreIncreasingAndInside(t *testing.T) {
	c := NewComputer(Options{WrappingColumn: 7, TabSize: 4, WrappingIndent: IndentIndent})
	text := "\tthe quick brown fox jumps over the lazy dog, again and again"
	got := c.Compute(text)
	if got == nil {
		t.Fatal("expected breaks")
	}
	length := len([]rune(text))
	prev := 0
	for _, off := range got.BreakOffsets {
		if off <= prev || off >= length {
			t.Fatalf("bad break offsets %v for length %d", got.BreakOffsets, length)
		}
		prev = off
	}
}

func TestFinalizeBatches(t *testing.T) {
	c := NewComputer(Options{WrappingColumn: 3, TabSize: 4})
	c.AddRequest("ab")
	c.AddRequest("abcdef")

	got := c.Finalize()
	if len(got) != 2 {
		t.Fatalf("Finalize() returned %d results", len(got))
	}
	if got[0] != nil {
		t.Error("short line should not break")
	}
	if got[1].OutputLineCount() != 2 {
		t.Errorf("OutputLineCount() = %d, want 2", got[1].OutputLineCount())
	}
	if len(c.Finalize()) != 0 {
		t.Error("Finalize should clear the queue")
	}
}

func TestWrappedIndentDroppedWhenTooDeep(t *testing.T) {
	c := NewComputer(Options{WrappingColumn: 8, TabSize: 4, WrappingIndent: IndentDeep})
	got := c.Compute("  aaaa bbbb")
	if got == nil {
		t.Fatal("expected breaks")
	}
	if got.WrappedTextIndentLength != 0 {
		t.Errorf("WrappedTextIndentLength = %d, want 0", got.WrappedTextIndentLength)
	}
}

func TestParseWrappingIndent(t *testing.T) {
	for _, w := range []WrappingIndent{IndentNone, IndentSame, IndentIndent, IndentDeep} {
		got, err := ParseWrappingIndent(w.String())
		if err != nil || got != w {
			t.Errorf("ParseWrappingIndent(%q) = %v, %v", w.String(), got, err)
		}
	}
	if _, err := ParseWrappingIndent("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestTabExpanderColumns(t *testing.T) {
	tabs := NewTabExpander(4)

	tests := []struct {
		line    string
		column  int
		visible int
	}{
		{"\tab", 1, 0},
		{"\tab", 2, 4},
		{"\tab", 3, 5},
		{"a\tb", 3, 4},
		{"日本", 2, 2},
		{"ab", 5, 4},
	}
	for _, tt := range tests {
		if got := tabs.VisibleColumnFromColumn(tt.line, tt.column); got != tt.visible {
			t.Errorf("VisibleColumnFromColumn(%q, %d) = %d, want %d", tt.line, tt.column, got, tt.visible)
		}
	}

	back := []struct {
		line    string
		visible int
		column  int
	}{
		{"\tab", 0, 1},
		{"\tab", 1, 1},
		{"\tab", 3, 2},
		{"\tab", 4, 2},
		{"\tab", 5, 3},
		{"\tab", 40, 4},
		{"日本", 1, 2},
	}
	for _, tt := range back {
		if got := tabs.ColumnFromVisibleColumn(tt.line, tt.visible); got != tt.column {
			t.Errorf("ColumnFromVisibleColumn(%q, %d) = %d, want %d", tt.line, tt.visible, got, tt.column)
		}
	}
}

func TestTabStops(t *testing.T) {
	tabs := NewTabExpander(4)
	if tabs.NextTabStop(5) != 8 || tabs.NextTabStop(8) != 12 {
		t.Error("NextTabStop mismatch")
	}
	if NewTabExpander(0).TabWidth() != 4 {
		t.Error("non-positive tab width should default to 4")
	}
}
