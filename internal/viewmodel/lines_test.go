package viewmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

func wrapAt(col int) linebreaks.Options {
	return linebreaks.Options{WrappingColumn: col, TabSize: 4, WrappingIndent: linebreaks.IndentNone}
}

// "aaa bbb ccc" wraps to three view lines at column 6.
func fiveLines() *textmodel.Model {
	return textmodel.New("one\naaa bbb ccc\nx\ny\nz")
}

func checkInvariant(t *testing.T, l *Lines) {
	t.Helper()
	sum := 0
	for line := 1; line <= len(l.projections); line++ {
		sum += l.ModelLineViewLineCount(line)
	}
	if sum != l.ViewLineCount() || l.counts.PrefixSum(l.counts.Len()) != sum {
		t.Fatalf("view line count %d, projections %d, prefix %d", l.ViewLineCount(), sum, l.counts.PrefixSum(l.counts.Len()))
	}
	if len(l.projections) != l.model.LineCount() {
		t.Fatalf("%d projections for %d model lines", len(l.projections), l.model.LineCount())
	}
}

func TestLinesConstruct(t *testing.T) {
	l := NewLines(fiveLines(), wrapAt(6))

	require.Equal(t, 7, l.ViewLineCount())
	want := []string{"one", "aaa ", "bbb ", "ccc", "x", "y", "z"}
	for i, w := range want {
		if got := l.ViewLineContent(i + 1); got != w {
			t.Errorf("ViewLineContent(%d) = %q, want %q", i+1, got, w)
		}
	}
	checkInvariant(t, l)
}

func TestLinesQueriesClamp(t *testing.T) {
	l := NewLines(fiveLines(), wrapAt(6))

	if got := l.ViewLineContent(0); got != "one" {
		t.Errorf("ViewLineContent(0) = %q", got)
	}
	if got := l.ViewLineContent(100); got != "z" {
		t.Errorf("ViewLineContent(100) = %q", got)
	}
	if got := l.ViewLineMaxColumn(-3); got != 4 {
		t.Errorf("ViewLineMaxColumn(-3) = %d", got)
	}
}

func TestDeleteWrappedLines(t *testing.T) {
	l := NewLines(fiveLines(), wrapAt(6))
	before := l.ViewLineCount()

	ev := l.OnModelLinesDeleted(l.ValidVersionID()+1, 2, 3)
	require.NotNil(t, ev)
	if diff := cmp.Diff(ViewLinesDeletedEvent{FromLineNumber: 2, ToLineNumber: 5}, *ev); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
	if got := before - l.ViewLineCount(); got != 4 {
		t.Errorf("view line count decreased by %d, want 4", got)
	}
}

func TestStaleVersionIgnored(t *testing.T) {
	m := fiveLines()
	l := NewLines(m, wrapAt(6))
	old := l.projections[1]

	changed, ch, ins, del := l.OnModelLineChanged(l.ValidVersionID(), 2, nil)
	if changed || ch != nil || ins != nil || del != nil {
		t.Fatalf("stale change produced events: %v %v %v %v", changed, ch, ins, del)
	}
	if l.projections[1] != old {
		t.Error("stale change replaced the projection")
	}
	if ev := l.OnModelLinesDeleted(l.ValidVersionID()-1, 1, 1); ev != nil {
		t.Error("older version deleted lines")
	}
	if ev := l.OnModelLinesInserted(l.ValidVersionID(), 1, 1, nil); ev != nil {
		t.Error("stale version inserted lines")
	}
	require.Equal(t, 7, l.ViewLineCount())
}

func TestLineChangedSplitsEvents(t *testing.T) {
	l := NewLines(fiveLines(), wrapAt(6))
	v := l.ValidVersionID() + 1

	// Three view lines shrink to one.
	changed, ch, ins, del := l.OnModelLineChanged(v, 2, nil)
	require.True(t, changed)
	require.Nil(t, ins)
	if diff := cmp.Diff(&ViewLinesChangedEvent{FromLineNumber: 2, Count: 1}, ch); diff != "" {
		t.Errorf("changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&ViewLinesDeletedEvent{FromLineNumber: 3, ToLineNumber: 4}, del); diff != "" {
		t.Errorf("deleted (-want +got):\n%s", diff)
	}

	// One view line grows to two.
	data := &linebreaks.BreakData{BreakOffsets: []int{2}, BreakOffsetsVisibleColumn: []int{2}}
	changed, ch, ins, del = l.OnModelLineChanged(v, 1, data)
	require.True(t, changed)
	require.Nil(t, del)
	if diff := cmp.Diff(&ViewLinesChangedEvent{FromLineNumber: 1, Count: 1}, ch); diff != "" {
		t.Errorf("changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&ViewLinesInsertedEvent{FromLineNumber: 2, ToLineNumber: 2}, ins); diff != "" {
		t.Errorf("inserted (-want +got):\n%s", diff)
	}

	// Same count is only a change.
	changed, ch, ins, del = l.OnModelLineChanged(v, 3, nil)
	require.False(t, changed)
	require.Nil(t, ins)
	require.Nil(t, del)
	require.NotNil(t, ch)
}

func TestInsertLines(t *testing.T) {
	l := NewLines(fiveLines(), wrapAt(6))
	v := l.ValidVersionID() + 1

	data := &linebreaks.BreakData{BreakOffsets: []int{3}, BreakOffsetsVisibleColumn: []int{3}}
	ev := l.OnModelLinesInserted(v, 3, 4, []*linebreaks.BreakData{nil, data})
	require.NotNil(t, ev)
	if diff := cmp.Diff(ViewLinesInsertedEvent{FromLineNumber: 5, ToLineNumber: 7}, *ev); diff != "" {
		t.Errorf("inserted (-want +got):\n%s", diff)
	}
	require.Equal(t, 10, l.ViewLineCount())
}

func TestRoundTrip(t *testing.T) {
	m := textmodel.New("  aaaa bbbb cccc\n\nhello world foo\n\tx\tyy zzz\n日本語のテキスト")
	opts := linebreaks.Options{WrappingColumn: 10, TabSize: 4, WrappingIndent: linebreaks.IndentSame}
	l := NewLines(m, opts)
	require.Greater(t, l.ViewLineCount(), m.LineCount())

	for line := 1; line <= m.LineCount(); line++ {
		for col := 1; col <= m.LineMaxColumn(line); col++ {
			for _, aff := range []projection.Affinity{projection.AffinityNone, projection.AffinityLeft, projection.AffinityRight} {
				view := l.ConvertModelPositionToViewPosition(line, col, aff)
				back := l.ConvertViewPositionToModelPosition(view.LineNumber, view.Column)
				if back != textpos.NewPosition(line, col) {
					t.Errorf("(%d,%d) aff %d -> %v -> %v", line, col, aff, view, back)
				}
			}
		}
	}
}

func TestValidateViewPositionIdempotent(t *testing.T) {
	m := textmodel.New("  aaaa bbbb cccc\nhello world foo\nshort")
	opts := linebreaks.Options{WrappingColumn: 10, TabSize: 4, WrappingIndent: linebreaks.IndentSame}
	l := NewLines(m, opts)

	for line := 1; line <= m.LineCount(); line++ {
		for col := 1; col <= m.LineMaxColumn(line); col++ {
			expected := textpos.NewPosition(line, col)
			for vl := 0; vl <= l.ViewLineCount()+1; vl++ {
				for vc := 0; vc <= 14; vc++ {
					once := l.ValidateViewPosition(vl, vc, expected)
					twice := l.ValidateViewPosition(once.LineNumber, once.Column, expected)
					if once != twice {
						t.Fatalf("validate(%d,%d,%v) = %v, again = %v", vl, vc, expected, once, twice)
					}
					if back := l.ConvertViewPositionToModelPosition(once.LineNumber, once.Column); back != expected {
						t.Fatalf("validate(%d,%d,%v) = %v maps to %v", vl, vc, expected, once, back)
					}
				}
			}
		}
	}
}

func TestValidateViewPositionKeepsBoundaryChoice(t *testing.T) {
	l := NewLines(textmodel.New("hello world foo"), wrapAt(6))

	// Model column 7 sits at the end of view line 1 and the start of view line 2.
	left := l.ValidateViewPosition(1, 7, textpos.NewPosition(1, 7))
	right := l.ValidateViewPosition(2, 1, textpos.NewPosition(1, 7))
	if left != textpos.NewPosition(1, 7) || right != textpos.NewPosition(2, 1) {
		t.Errorf("boundary positions changed: %v %v", left, right)
	}
	// A candidate that maps elsewhere is re-derived.
	got := l.ValidateViewPosition(3, 2, textpos.NewPosition(1, 3))
	if got != textpos.NewPosition(1, 3) {
		t.Errorf("re-derived position = %v", got)
	}
}

func TestConvertModelRangeToViewRange(t *testing.T) {
	l := NewLines(textmodel.New("hello world foo"), wrapAt(6))

	got := l.ConvertModelRangeToViewRange(textpos.NewRange(1, 7, 1, 13), projection.AffinityNone)
	if got != textpos.NewRange(2, 1, 2, 7) {
		t.Errorf("range = %v", got)
	}
	got = l.ConvertModelRangeToViewRange(textpos.NewRange(1, 7, 1, 7), projection.AffinityLeft)
	if got != textpos.NewRange(1, 7, 1, 7) {
		t.Errorf("empty range = %v", got)
	}
}

func TestHiddenAreas(t *testing.T) {
	m := textmodel.New("first\nsecond\nthird\nfourth\nfifth")
	l := NewLines(m, linebreaks.DefaultOptions())

	require.True(t, l.SetHiddenAreas([]textpos.Range{textpos.NewRange(3, 1, 3, 2), textpos.NewRange(2, 4, 2, 4)}))
	require.False(t, l.SetHiddenAreas([]textpos.Range{textpos.NewRange(2, 1, 3, 1)}))
	require.Equal(t, 3, l.ViewLineCount())
	checkInvariant(t, l)

	if got := l.ViewLineContent(2); got != "fourth" {
		t.Errorf("ViewLineContent(2) = %q", got)
	}
	// Hidden positions fall back to the end of the last visible line above.
	if got := l.ConvertModelPositionToViewPosition(3, 2, projection.AffinityNone); got != textpos.NewPosition(1, 6) {
		t.Errorf("hidden position -> %v", got)
	}
	if l.ModelPositionIsVisible(2, 1) || !l.ModelPositionIsVisible(4, 1) {
		t.Error("visibility mismatch")
	}

	require.True(t, l.SetHiddenAreas(nil))
	require.Equal(t, 5, l.ViewLineCount())
}

func TestHiddenAreaFollowsEdits(t *testing.T) {
	m := textmodel.New("first\nsecond\nthird\nfourth\nfifth")
	vm := New(m, linebreaks.DefaultOptions())
	require.True(t, vm.SetHiddenAreas([]textpos.Range{textpos.NewRange(2, 1, 3, 1)}))

	// A line inserted inside the hidden area stays hidden.
	_, err := m.ApplyEdits([]textmodel.EditOperation{{Range: textpos.NewRange(3, 1, 3, 1), Text: "new\n"}})
	require.NoError(t, err)
	require.Equal(t, 6, m.LineCount())
	require.Equal(t, 3, vm.ViewLineCount())
	checkInvariant(t, vm.Lines())

	// Lines inserted above it are visible.
	_, err = m.ApplyEdits([]textmodel.EditOperation{{Range: textpos.NewRange(1, 1, 1, 1), Text: "top\n"}})
	require.NoError(t, err)
	require.Equal(t, 4, vm.ViewLineCount())
	if got := vm.Lines().HiddenAreas(); len(got) != 1 || got[0].StartLineNumber != 3 {
		t.Errorf("hidden areas = %v", got)
	}
}

func TestProjectionInvariantUnderEdits(t *testing.T) {
	m := textmodel.New("alpha beta gamma\n\tdelta\nepsilon zeta eta theta\niota")
	opts := linebreaks.Options{WrappingColumn: 8, TabSize: 4, WrappingIndent: linebreaks.IndentSame}
	vm := New(m, opts)

	edits := [][]textmodel.EditOperation{
		{{Range: textpos.NewRange(1, 6, 1, 6), Text: " inserted words here"}},
		{{Range: textpos.NewRange(2, 1, 3, 8), Text: ""}},
		{{Range: textpos.NewRange(1, 1, 1, 1), Text: "x\ny\nlong line of many words\n"}},
		{
			{Range: textpos.NewRange(1, 2, 1, 2), Text: "abc def ghi"},
			{Range: textpos.NewRange(4, 1, 4, 5), Text: "short"},
			{Range: textpos.NewRange(5, 3, 6, 1), Text: "\n\n"},
		},
		{{Range: textpos.NewRange(1, 1, 100, 100), Text: "z"}},
	}
	for i, batch := range edits {
		_, err := m.ApplyEdits(batch)
		require.NoError(t, err, "batch %d", i)
		checkInvariant(t, vm.Lines())

		fresh := NewLines(m, opts)
		require.Equal(t, fresh.ViewLineCount(), vm.ViewLineCount(), "batch %d", i)
		for line := 1; line <= fresh.ViewLineCount(); line++ {
			require.Equal(t, fresh.ViewLineContent(line), vm.ViewLineContent(line), "batch %d line %d", i, line)
		}
	}
}

func TestSetWrappingOptions(t *testing.T) {
	l := NewLines(fiveLines(), linebreaks.DefaultOptions())
	require.Equal(t, 5, l.ViewLineCount())

	require.False(t, l.SetWrappingOptions(linebreaks.DefaultOptions()))
	require.True(t, l.SetWrappingOptions(wrapAt(6)))
	require.Equal(t, 7, l.ViewLineCount())
	require.True(t, l.SetTabSize(8))
	require.False(t, l.SetTabSize(8))
	checkInvariant(t, l)
}

func TestViewLineData(t *testing.T) {
	l := NewLines(textmodel.New("hello world foo"), wrapAt(6))

	got := l.ViewLinesData(1, 5)
	want := []ViewLineData{
		{Content: "hello ", MinColumn: 1, MaxColumn: 7, ModelLineNumber: 1, ModelStartColumn: 1, ContinuesWithWrappedLine: true},
		{Content: "world ", MinColumn: 1, MaxColumn: 7, ModelLineNumber: 1, ModelStartColumn: 7, StartVisibleColumn: 6, ContinuesWithWrappedLine: true},
		{Content: "foo", MinColumn: 1, MaxColumn: 4, ModelLineNumber: 1, ModelStartColumn: 13, StartVisibleColumn: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ViewLinesData mismatch (-want +got):\n%s", diff)
	}
}
