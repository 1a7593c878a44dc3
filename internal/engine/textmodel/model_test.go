package textmodel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/event"
)

func collectContent(m *Model) *[]ContentChangedEvent {
	var got []ContentChangedEvent
	m.OnDidChangeContent(func(e event.Event[ContentChangedEvent]) {
		got = append(got, e.Payload)
	})
	return &got
}

func TestNewSplitsLines(t *testing.T) {
	m := New("one\r\ntwo\nthree")

	assert.Equal(t, 3, m.LineCount())
	assert.Equal(t, "two", m.LineContent(2))
	assert.Equal(t, "", m.LineContent(4))
	assert.Equal(t, 6, m.LineMaxColumn(3))
	assert.Equal(t, "one\ntwo\nthree", m.Value())
	assert.Equal(t, 1, m.VersionID())
}

func TestDetectLineEnding(t *testing.T) {
	m := New("a\r\nb\r\nc", WithDetectedLineEnding("a\r\nb\r\nc"))
	assert.Equal(t, LineEndingCRLF, m.LineEnding())
	assert.Equal(t, "a\r\nb\r\nc", m.Value())
	assert.Equal(t, LineEndingLF, DetectLineEnding("no terminators"))
}

func TestValidatePosition(t *testing.T) {
	m := New("abc\nde")

	tests := []struct {
		in, want textpos.Position
	}{
		{textpos.NewPosition(0, 5), textpos.NewPosition(1, 1)},
		{textpos.NewPosition(1, 0), textpos.NewPosition(1, 1)},
		{textpos.NewPosition(1, 9), textpos.NewPosition(1, 4)},
		{textpos.NewPosition(5, 1), textpos.NewPosition(2, 3)},
		{textpos.NewPosition(2, 2), textpos.NewPosition(2, 2)},
	}
	for _, tt := range tests {
		if got := m.ValidatePosition(tt.in); got != tt.want {
			t.Errorf("ValidatePosition(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValueInRange(t *testing.T) {
	m := New("héllo\nwörld\n!")

	assert.Equal(t, "éll", m.ValueInRange(textpos.NewRange(1, 2, 1, 5)))
	assert.Equal(t, "lo\nwörld\n", m.ValueInRange(textpos.NewRange(1, 4, 3, 1)))
	assert.Equal(t, "", m.ValueInRange(textpos.NewRange(2, 3, 2, 3)))
}

func TestOffsets(t *testing.T) {
	m := New("ab\ncd")

	assert.Equal(t, 3, m.OffsetAt(textpos.NewPosition(2, 1)))
	assert.Equal(t, textpos.NewPosition(2, 1), m.PositionAt(3))
	assert.Equal(t, textpos.NewPosition(1, 3), m.PositionAt(2))
	assert.Equal(t, textpos.NewPosition(2, 3), m.PositionAt(99))

	for line := 1; line <= m.LineCount(); line++ {
		for col := 1; col <= m.LineMaxColumn(line); col++ {
			pos := textpos.NewPosition(line, col)
			if got := m.PositionAt(m.OffsetAt(pos)); got != pos {
				t.Errorf("round trip of %v = %v", pos, got)
			}
		}
	}
}

func TestPushEditOperations_MultipleCursors(t *testing.T) {
	m := New("abc\ndef")
	events := collectContent(m)

	var inverse []InverseEditOperation
	sel, err := m.PushEditOperations(nil, []EditOperation{
		{Identifier: OperationID{Major: 0}, Range: textpos.NewRange(1, 2, 1, 2), Text: "X"},
		{Identifier: OperationID{Major: 1}, Range: textpos.NewRange(2, 2, 2, 2), Text: "X"},
	}, func(inv []InverseEditOperation) []textpos.Selection {
		inverse = inv
		return []textpos.Selection{textpos.CollapsedSelection(inv[0].Range.End())}
	})
	require.NoError(t, err)

	assert.Equal(t, "aXbc\ndXef", m.Value())
	assert.Equal(t, []textpos.Selection{textpos.NewSelection(1, 3, 1, 3)}, sel)

	wantInverse := []InverseEditOperation{
		{Identifier: OperationID{Major: 0}, Range: textpos.NewRange(1, 2, 1, 3)},
		{Identifier: OperationID{Major: 1}, Range: textpos.NewRange(2, 2, 2, 3)},
	}
	if diff := cmp.Diff(wantInverse, inverse); diff != "" {
		t.Errorf("inverse operations mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, 2, ev.VersionID)
	wantChanges := []ContentChange{
		LineChange{LineNumber: 2, Detail: "dXef"},
		LineChange{LineNumber: 1, Detail: "aXbc"},
	}
	if diff := cmp.Diff(wantChanges, ev.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, m.UndoElementCount())
}

func TestPushEditOperations_SamePositionInsertsKeepOrder(t *testing.T) {
	m := New("ac")
	var inverse []InverseEditOperation
	_, err := m.PushEditOperations(nil, []EditOperation{
		{Range: textpos.NewRange(1, 2, 1, 2), Text: "1"},
		{Range: textpos.NewRange(1, 2, 1, 2), Text: "2"},
	}, func(inv []InverseEditOperation) []textpos.Selection {
		inverse = inv
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a12c", m.Value())
	assert.Equal(t, textpos.NewRange(1, 2, 1, 3), inverse[0].Range)
	assert.Equal(t, textpos.NewRange(1, 3, 1, 4), inverse[1].Range)
}

func TestPushEditOperations_InsertLines(t *testing.T) {
	m := New("abc")
	events := collectContent(m)

	var inverse []InverseEditOperation
	_, err := m.PushEditOperations(nil, []EditOperation{
		{Range: textpos.NewRange(1, 2, 1, 2), Text: "1\n2\n3"},
	}, func(inv []InverseEditOperation) []textpos.Selection {
		inverse = inv
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "2", "3bc"}, m.LinesContent())
	assert.Equal(t, textpos.NewRange(1, 2, 3, 2), inverse[0].Range)

	want := []ContentChange{
		LineChange{LineNumber: 1, Detail: "a1"},
		LinesInsertedChange{FromLineNumber: 2, ToLineNumber: 3, Detail: []string{"2", "3bc"}},
	}
	if diff := cmp.Diff(want, (*events)[0].Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestPushEditOperations_DeleteLines(t *testing.T) {
	m := New("a\nb\nc\nd")
	events := collectContent(m)

	var inverse []InverseEditOperation
	_, err := m.PushEditOperations(nil, []EditOperation{
		{Range: textpos.NewRange(1, 2, 3, 2), Text: ""},
	}, func(inv []InverseEditOperation) []textpos.Selection {
		inverse = inv
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "d"}, m.LinesContent())
	assert.Equal(t, "\nb\nc", inverse[0].Text)
	assert.True(t, inverse[0].Range.IsEmpty())

	want := []ContentChange{
		LineChange{LineNumber: 1, Detail: "a"},
		LinesDeletedChange{FromLineNumber: 2, ToLineNumber: 3},
	}
	if diff := cmp.Diff(want, (*events)[0].Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestPushEditOperations_Overlap(t *testing.T) {
	m := New("abcdef")
	_, err := m.PushEditOperations(nil, []EditOperation{
		{Range: textpos.NewRange(1, 1, 1, 4), Text: "x"},
		{Range: textpos.NewRange(1, 3, 1, 5), Text: "y"},
	}, nil)

	assert.True(t, errors.Is(err, ErrEditsOverlap))
	assert.Equal(t, "abcdef", m.Value())
	assert.Equal(t, 1, m.VersionID())
}

func TestUndoRedo(t *testing.T) {
	m := New("abc")
	events := collectContent(m)
	caret := func(inv []InverseEditOperation) []textpos.Selection {
		return []textpos.Selection{textpos.CollapsedSelection(inv[0].Range.End())}
	}

	before1 := []textpos.Selection{textpos.NewSelection(1, 4, 1, 4)}
	_, err := m.PushEditOperations(before1, []EditOperation{{Range: textpos.NewRange(1, 4, 1, 4), Text: "X"}}, caret)
	require.NoError(t, err)
	m.PushStackElement()

	before2 := []textpos.Selection{textpos.NewSelection(1, 5, 1, 5)}
	_, err = m.PushEditOperations(before2, []EditOperation{{Range: textpos.NewRange(1, 5, 1, 5), Text: "Y"}}, caret)
	require.NoError(t, err)
	assert.Equal(t, "abcXY", m.Value())

	sel, err := m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "abcX", m.Value())
	assert.Equal(t, before2, sel)
	assert.True(t, (*events)[len(*events)-1].IsUndo)

	sel, err = m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "abc", m.Value())
	assert.Equal(t, before1, sel)

	_, err = m.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	sel, err = m.Redo()
	require.NoError(t, err)
	assert.Equal(t, "abcX", m.Value())
	assert.Equal(t, []textpos.Selection{textpos.NewSelection(1, 5, 1, 5)}, sel)
	assert.True(t, (*events)[len(*events)-1].IsRedo)
}

func TestConsecutivePushesShareElement(t *testing.T) {
	m := New("")
	for _, s := range []string{"a", "b", "c"} {
		end := m.LineMaxColumn(1)
		_, err := m.PushEditOperations(nil, []EditOperation{{Range: textpos.NewRange(1, end, 1, end), Text: s}}, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, m.UndoElementCount())

	_, err := m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "", m.Value())
}

func TestTrackedRangeStickiness(t *testing.T) {
	tests := []struct {
		name       string
		stickiness Stickiness
		want       textpos.Range
	}{
		{"always grows", AlwaysGrowsWhenTypingAtEdges, textpos.NewRange(1, 3, 1, 7)},
		{"never grows", NeverGrowsWhenTypingAtEdges, textpos.NewRange(1, 4, 1, 6)},
		{"grows before", GrowsOnlyWhenTypingBefore, textpos.NewRange(1, 3, 1, 6)},
		{"grows after", GrowsOnlyWhenTypingAfter, textpos.NewRange(1, 4, 1, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("abcdef")
			id := m.AddTrackedRange(textpos.NewRange(1, 3, 1, 5), tt.stickiness)

			// Insert at both edges: first at the end, then at the start.
			_, err := m.ApplyEdits([]EditOperation{
				{Range: textpos.NewRange(1, 5, 1, 5), Text: "X"},
				{Range: textpos.NewRange(1, 3, 1, 3), Text: "Y"},
			})
			require.NoError(t, err)

			got, ok := m.TrackedRange(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrackedRangeDeletedContent(t *testing.T) {
	m := New("one two three")
	id := m.AddTrackedRange(textpos.NewRange(1, 5, 1, 8), NeverGrowsWhenTypingAtEdges)

	_, err := m.ApplyEdits([]EditOperation{{Range: textpos.NewRange(1, 1, 1, 14), Text: "x"}})
	require.NoError(t, err)

	got, _ := m.TrackedRange(id)
	assert.Equal(t, textpos.NewRange(1, 2, 1, 2), got)

	m.RemoveTrackedRange(id)
	_, ok := m.TrackedRange(id)
	assert.False(t, ok)
	assert.ErrorIs(t, m.SetTrackedRange(id, textpos.NewRange(1, 1, 1, 1), NeverGrowsWhenTypingAtEdges), ErrUnknownDecoration)
}

func TestMarksFollowEditsAndUndo(t *testing.T) {
	m := New("hello world")
	id := m.AddMark(textpos.NewRange(1, 1, 1, 6), MarkBold)
	m.PushStackElement()

	_, err := m.PushEditOperations(nil, []EditOperation{{Range: textpos.NewRange(1, 1, 1, 1), Text: "big "}}, nil)
	require.NoError(t, err)

	marks := m.Marks()
	require.Len(t, marks, 1)
	assert.Equal(t, id, marks[0].ID)
	assert.Equal(t, textpos.NewRange(1, 5, 1, 10), marks[0].Range)
	assert.Equal(t, "hello", m.ValueInRange(marks[0].Range))

	// Typing right after the mark does not extend it.
	_, err = m.ApplyEdits([]EditOperation{{Range: textpos.NewRange(1, 10, 1, 10), Text: "!"}})
	require.NoError(t, err)
	assert.Equal(t, textpos.NewRange(1, 5, 1, 10), m.Marks()[0].Range)

	assert.Len(t, m.MarksInLine(1), 1)
	assert.Empty(t, m.MarksInLine(2))
}

func TestAddMarkIsUndoable(t *testing.T) {
	m := New("bold")
	var decoEvents int
	m.OnDidChangeDecorations(func(event.Event[DecorationsChangedEvent]) { decoEvents++ })

	m.AddMark(textpos.NewRange(1, 1, 1, 5), MarkBold)
	require.Len(t, m.Marks(), 1)

	_, err := m.Undo()
	require.NoError(t, err)
	assert.Empty(t, m.Marks())

	_, err = m.Redo()
	require.NoError(t, err)
	assert.Len(t, m.Marks(), 1)
	assert.Equal(t, 3, decoEvents)
}

func TestBlockTypesFollowLines(t *testing.T) {
	m := New("a\nb")
	require.NoError(t, m.SetBlockType(1, BlockTodo))
	require.NoError(t, m.SetBlockType(2, BlockBulletedList))
	m.PushStackElement()

	// Joining lines drops the second block, undo restores it.
	_, err := m.PushEditOperations(nil, []EditOperation{{Range: textpos.NewRange(1, 2, 2, 1), Text: ""}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, m.LinesContent())
	assert.Equal(t, BlockTodo, m.BlockType(1))

	_, err = m.Undo()
	require.NoError(t, err)
	assert.Equal(t, BlockTodo, m.BlockType(1))
	assert.Equal(t, BlockBulletedList, m.BlockType(2))

	// Splitting a line keeps the block on the first half.
	m.PushStackElement()
	_, err = m.PushEditOperations(nil, []EditOperation{{Range: textpos.NewRange(1, 2, 1, 2), Text: "\n"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, BlockTodo, m.BlockType(1))
	assert.Equal(t, BlockParagraph, m.BlockType(2))
	assert.Equal(t, BlockBulletedList, m.BlockType(3))

	assert.ErrorIs(t, m.SetBlockType(9, BlockTodo), ErrLineOutOfRange)
}

func TestSetBlockTypeUndo(t *testing.T) {
	m := New("x")
	var changes []BlockTypeChangedEvent
	m.OnDidChangeBlockType(func(e event.Event[BlockTypeChangedEvent]) { changes = append(changes, e.Payload) })

	require.NoError(t, m.SetBlockType(1, BlockTodo))
	_, err := m.Undo()
	require.NoError(t, err)

	assert.Equal(t, BlockParagraph, m.BlockType(1))
	assert.Equal(t, []BlockTypeChangedEvent{
		{LineNumber: 1, Old: BlockParagraph, New: BlockTodo},
		{LineNumber: 1, Old: BlockTodo, New: BlockParagraph},
	}, changes)
}

func TestSetValueFlushes(t *testing.T) {
	m := New("abc")
	events := collectContent(m)
	id := m.AddTrackedRange(textpos.NewRange(1, 2, 1, 3), AlwaysGrowsWhenTypingAtEdges)
	m.AddMark(textpos.NewRange(1, 1, 1, 2), MarkItalic)

	m.SetValue("x\ny")

	require.Len(t, *events, 1)
	assert.True(t, (*events)[0].IsFlush)
	assert.True(t, (*events)[0].ContainsFlush())
	assert.Equal(t, 2, m.LineCount())
	assert.Empty(t, m.Marks())
	assert.False(t, m.CanUndo())
	got, ok := m.TrackedRange(id)
	require.True(t, ok)
	assert.Equal(t, textpos.NewRange(1, 1, 1, 1), got)
}

func TestSyncValue(t *testing.T) {
	m := New("a\nb\nc")
	require.NoError(t, m.SetBlockType(1, BlockTodo))
	m.PushStackElement()
	version := m.VersionID()

	ops, err := m.SyncValue("a\nB\nc\nd", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, ops)
	assert.Equal(t, "a\nB\nc\nd", m.Value())
	assert.Equal(t, version+1, m.VersionID())
	assert.Equal(t, BlockTodo, m.BlockType(1))

	_, err = m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", m.Value())

	ops, err = m.SyncValue("a\nb\nc", nil)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"append line", "a\nb", "a\nb\nc"},
		{"remove line", "a\nb\nc", "a\nc"},
		{"replace middle", "x\ny\nz", "x\nY\nz"},
		{"to empty", "a\nb", ""},
		{"from empty", "", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.old)
			_, err := m.ApplyEdits(LineDiff(tt.old, tt.new))
			require.NoError(t, err)
			assert.Equal(t, tt.new, m.Value())
		})
	}
}
