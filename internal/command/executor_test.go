package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/logging"
)

func newExecutor() (*Executor, *logging.ErrorSink) {
	sink := logging.NewErrorSink(logging.Discard())
	return NewExecutor(logging.Discard(), sink), sink
}

func insertAt(line, col int, text string) Command {
	return NewReplaceCommand(textpos.NewRange(line, col, line, col), text)
}

func collapsed(line, col int) textpos.Selection {
	return textpos.NewSelection(line, col, line, col)
}

type failingCommand struct{}

func (failingCommand) GetEditOperations(*textmodel.Model, Builder) error {
	return errors.New("no edits for you")
}

func (failingCommand) ComputeCursorState(*textmodel.Model, CursorStateHelper) textpos.Selection {
	panic("not reached")
}

type panickingCommand struct{}

func (panickingCommand) GetEditOperations(*textmodel.Model, Builder) error {
	panic("broken command")
}

func (panickingCommand) ComputeCursorState(*textmodel.Model, CursorStateHelper) textpos.Selection {
	panic("not reached")
}

type rawCommand struct {
	ranges []textpos.Range
	text   string
}

func (c rawCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	for _, r := range c.ranges {
		b.AddEditOperation(r, c.text)
	}
	return nil
}

func (c rawCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	inv := h.InverseEditOperations()
	return textpos.CollapsedSelection(inv[len(inv)-1].Range.End())
}

func TestExecuteMultiCursorIsOneUndoStep(t *testing.T) {
	m := textmodel.New("abc\ndef\nghi")
	e, _ := newExecutor()
	before := []textpos.Selection{collapsed(1, 2), collapsed(2, 2), collapsed(3, 2)}

	res, err := e.Execute(m, before, []Command{insertAt(1, 2, "X"), insertAt(2, 2, "X"), insertAt(3, 2, "X")}, nil)
	require.NoError(t, err)
	require.Equal(t, "aXbc\ndXef\ngXhi", m.Value())
	require.Equal(t, []textpos.Selection{collapsed(1, 3), collapsed(2, 3), collapsed(3, 3)}, res.Selections)
	require.Empty(t, res.Losers)
	require.Equal(t, 1, m.UndoElementCount())

	restored, err := m.Undo()
	require.NoError(t, err)
	require.Equal(t, "abc\ndef\nghi", m.Value())
	require.Equal(t, before, restored)
}

func TestExecuteSameLineCursors(t *testing.T) {
	m := textmodel.New("abcdef")
	e, _ := newExecutor()

	res, err := e.Execute(m, []textpos.Selection{collapsed(1, 2), collapsed(1, 4)},
		[]Command{insertAt(1, 2, "XY"), insertAt(1, 4, "XY")}, nil)
	require.NoError(t, err)
	require.Equal(t, "aXYbcXYdef", m.Value())
	require.Equal(t, []textpos.Selection{collapsed(1, 4), collapsed(1, 8)}, res.Selections)
}

func TestExecuteFailingCommandsContributeNothing(t *testing.T) {
	m := textmodel.New("abc\ndef\nghi")
	e, sink := newExecutor()
	before := []textpos.Selection{collapsed(1, 1), collapsed(2, 1), collapsed(3, 1)}

	res, err := e.Execute(m, before, []Command{failingCommand{}, insertAt(2, 1, ">"), panickingCommand{}}, nil)
	require.NoError(t, err)
	require.Equal(t, "abc\n>def\nghi", m.Value())
	require.Equal(t, []textpos.Selection{collapsed(1, 1), collapsed(2, 2), collapsed(3, 1)}, res.Selections)
	require.Equal(t, 2, sink.Count())
	require.ErrorIs(t, sink.Last(), logging.ErrPanic)
}

func TestExecuteDropsOverlappingCursor(t *testing.T) {
	m := textmodel.New("abcdef")
	e, _ := newExecutor()
	before := []textpos.Selection{textpos.NewSelection(1, 1, 1, 4), textpos.NewSelection(1, 2, 1, 5)}

	res, err := e.Execute(m, before, []Command{
		NewReplaceCommand(textpos.NewRange(1, 1, 1, 4), "-"),
		NewReplaceCommand(textpos.NewRange(1, 2, 1, 5), "+"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "-def", m.Value())
	require.Equal(t, []int{1}, res.Losers)
	require.Equal(t, []textpos.Selection{collapsed(1, 2)}, res.Selections)
}

func TestExecutePrimaryCursorLost(t *testing.T) {
	m := textmodel.New("abcdef")
	e, _ := newExecutor()

	cmd := rawCommand{ranges: []textpos.Range{textpos.NewRange(1, 1, 1, 4), textpos.NewRange(1, 2, 1, 5)}, text: "x"}
	res, err := e.Execute(m, []textpos.Selection{collapsed(1, 1)}, []Command{cmd}, nil)
	require.ErrorIs(t, err, ErrPrimaryCursorLost)
	require.Nil(t, res)
	require.Equal(t, "abcdef", m.Value())
}

func TestExecuteMinorOrder(t *testing.T) {
	m := textmodel.New("abcdef")
	e, _ := newExecutor()

	// Added back to front; the last inverse in minor order is the earlier range.
	cmd := rawCommand{ranges: []textpos.Range{textpos.NewRange(1, 5, 1, 5), textpos.NewRange(1, 2, 1, 2)}, text: "_"}
	res, err := e.Execute(m, []textpos.Selection{collapsed(1, 1)}, []Command{cmd}, nil)
	require.NoError(t, err)
	require.Equal(t, "a_bcd_ef", m.Value())
	require.Equal(t, []textpos.Selection{collapsed(1, 3)}, res.Selections)
}

func TestExecuteNothingToDo(t *testing.T) {
	m := textmodel.New("abc")
	e, _ := newExecutor()

	res, err := e.Execute(m, []textpos.Selection{collapsed(1, 1)}, []Command{insertAt(1, 1, "")}, nil)
	require.NoError(t, err)
	require.Nil(t, res)
	require.Equal(t, 1, m.VersionID())
	require.Equal(t, 0, m.UndoElementCount())
}

func TestExecuteFallbackForCursorsWithoutEdits(t *testing.T) {
	m := textmodel.New("abc\ndef")
	e, _ := newExecutor()

	fallback := func(i int) textpos.Selection {
		return collapsed(2, 4)
	}
	res, err := e.Execute(m, []textpos.Selection{collapsed(1, 1), collapsed(2, 1)}, []Command{insertAt(1, 1, "x"), nil}, fallback)
	require.NoError(t, err)
	require.Equal(t, []textpos.Selection{collapsed(1, 2), collapsed(2, 4)}, res.Selections)
}

func TestReplaceCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want textpos.Selection
		text string
	}{
		{
			name: "replace",
			cmd:  NewReplaceCommand(textpos.NewRange(1, 2, 1, 4), "XYZ"),
			want: collapsed(1, 5),
			text: "aXYZd",
		},
		{
			name: "keep position",
			cmd:  &ReplaceKeepPositionCommand{Range: textpos.NewRange(1, 2, 1, 4), Text: "XYZ"},
			want: collapsed(1, 2),
			text: "aXYZd",
		},
		{
			name: "select",
			cmd:  &ReplaceSelectCommand{Range: textpos.NewRange(1, 2, 1, 4), Text: "X\nY"},
			want: textpos.NewSelection(1, 2, 2, 2),
			text: "aX\nYd",
		},
		{
			name: "offset",
			cmd:  &ReplaceWithOffsetCommand{Range: textpos.NewRange(1, 2, 1, 2), Text: "()", ColumnDelta: -1},
			want: collapsed(1, 3),
			text: "a()bcd",
		},
		{
			name: "preserve selection",
			cmd: &ReplacePreserveSelectionCommand{
				Range:     textpos.NewRange(1, 1, 1, 1),
				Text:      ">>",
				Selection: textpos.NewSelection(1, 4, 1, 2),
			},
			want: textpos.NewSelection(1, 6, 1, 4),
			text: ">>abcd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := textmodel.New("abcd")
			e, _ := newExecutor()
			res, err := e.Execute(m, []textpos.Selection{collapsed(1, 1)}, []Command{tt.cmd}, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, res.Selections[0]); diff != "" {
				t.Errorf("selection (-want +got):\n%s", diff)
			}
			require.Equal(t, tt.text, m.Value())
		})
	}
}

func TestTrackSelectionStickiness(t *testing.T) {
	m := textmodel.New("abc")
	b := &batch{model: m, directions: make(map[string]textpos.Direction)}
	ob := &opBuilder{batch: b}

	before := ob.TrackSelection(collapsed(1, 2), Bool(true))
	after := ob.TrackSelection(collapsed(1, 2), Bool(false))
	_, err := m.ApplyEdits([]textmodel.EditOperation{{Range: textpos.NewRange(1, 2, 1, 2), Text: "Z"}})
	require.NoError(t, err)

	h := &helper{batch: b}
	require.Equal(t, collapsed(1, 2), h.TrackedSelection(before))
	require.Equal(t, collapsed(1, 3), h.TrackedSelection(after))

	b.dispose()
	_, ok := m.TrackedRange(before)
	require.False(t, ok)
}
