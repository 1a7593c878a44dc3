package cursor

import (
	"fmt"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// SelectionStartKind records how a selection was started, so extending it
// keeps the same granularity.
type SelectionStartKind uint8

const (
	KindSimple SelectionStartKind = iota
	KindWord
	KindLine
)

// String returns the kind name.
func (k SelectionStartKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindWord:
		return "word"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// SingleCursorState is the state of one cursor in one coordinate space.
//
// SelectionStart is the range the selection was started from: a single
// position for simple selections, a whole word or line otherwise. The
// selection spans from the far end of SelectionStart to Position.
// LeftoverVisibleColumns remember the goal column of vertical moves.
type SingleCursorState struct {
	SelectionStart                       textpos.Range
	SelectionStartKind                   SelectionStartKind
	SelectionStartLeftoverVisibleColumns int
	Position                             textpos.Position
	LeftoverVisibleColumns               int
	Selection                            textpos.Selection
}

// NewSingleCursorState creates a state and derives its selection.
func NewSingleCursorState(selectionStart textpos.Range, kind SelectionStartKind, selectionStartLeftover int, position textpos.Position, leftover int) SingleCursorState {
	return SingleCursorState{
		SelectionStart:                       selectionStart,
		SelectionStartKind:                   kind,
		SelectionStartLeftoverVisibleColumns: selectionStartLeftover,
		Position:                             position,
		LeftoverVisibleColumns:               leftover,
		Selection:                            computeSelection(selectionStart, position),
	}
}

// CollapsedState returns a simple state with an empty selection at pos.
func CollapsedState(pos textpos.Position) SingleCursorState {
	return NewSingleCursorState(textpos.EmptyRange(pos), KindSimple, 0, pos, 0)
}

func computeSelection(selectionStart textpos.Range, position textpos.Position) textpos.Selection {
	if selectionStart.IsEmpty() || !position.IsBeforeOrEqual(selectionStart.Start()) {
		return textpos.SelectionFromPositions(selectionStart.Start(), position)
	}
	return textpos.SelectionFromPositions(selectionStart.End(), position)
}

// String implements fmt.Stringer.
func (s SingleCursorState) String() string {
	return fmt.Sprintf("{start %v %s, pos %v +%d}", s.SelectionStart, s.SelectionStartKind, s.Position, s.LeftoverVisibleColumns)
}

// Equals reports whether both states are identical.
func (s SingleCursorState) Equals(other SingleCursorState) bool {
	return s.SelectionStartLeftoverVisibleColumns == other.SelectionStartLeftoverVisibleColumns &&
		s.LeftoverVisibleColumns == other.LeftoverVisibleColumns &&
		s.SelectionStartKind == other.SelectionStartKind &&
		s.Position == other.Position &&
		s.SelectionStart == other.SelectionStart
}

// HasSelection reports whether the selection is non-empty.
func (s SingleCursorState) HasSelection() bool {
	return !s.Selection.IsEmpty() || !s.SelectionStart.IsEmpty()
}

// Move returns the state with the caret at (lineNumber, column). In
// selection mode the selection start is kept; otherwise the selection
// collapses onto the new position.
func (s SingleCursorState) Move(inSelectionMode bool, lineNumber, column, leftover int) SingleCursorState {
	pos := textpos.NewPosition(lineNumber, column)
	if inSelectionMode {
		return NewSingleCursorState(s.SelectionStart, s.SelectionStartKind, s.SelectionStartLeftoverVisibleColumns, pos, leftover)
	}
	return NewSingleCursorState(textpos.EmptyRange(pos), KindSimple, leftover, pos, leftover)
}

// State is a cursor state in both coordinate spaces. Either half may be
// nil in a state handed to Cursor.SetState; the missing half is derived
// from the other one.
type State struct {
	ModelState *SingleCursorState
	ViewState  *SingleCursorState
}

// FromModelState returns a state that only carries model coordinates.
func FromModelState(s SingleCursorState) State {
	return State{ModelState: &s}
}

// FromViewState returns a state that only carries view coordinates.
func FromViewState(s SingleCursorState) State {
	return State{ViewState: &s}
}

// FromModelSelection returns a simple model state for sel.
func FromModelSelection(sel textpos.Selection) State {
	s := NewSingleCursorState(textpos.EmptyRange(sel.SelectionStart()), KindSimple, 0, sel.Position(), 0)
	return FromModelState(s)
}

// FromModelSelections converts every selection.
func FromModelSelections(sels []textpos.Selection) []State {
	out := make([]State, len(sels))
	for i, sel := range sels {
		out[i] = FromModelSelection(sel)
	}
	return out
}

// Equals compares both halves of two complete states.
func (s State) Equals(other State) bool {
	return equalHalf(s.ModelState, other.ModelState) && equalHalf(s.ViewState, other.ViewState)
}

func equalHalf(a, b *SingleCursorState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(*b)
}

// StatesEqual compares two state lists element by element.
func StatesEqual(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
