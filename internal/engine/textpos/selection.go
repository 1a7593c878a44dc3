package textpos

import "fmt"

// Direction tells which end of a selection holds the caret.
type Direction uint8

const (
	// LTR selections have the caret at the end.
	LTR Direction = iota
	// RTL selections have the caret at the start.
	RTL
)

// Selection is a range with a direction. The selection start is the anchor
// the user started from; the position is the active caret.
type Selection struct {
	SelectionStartLineNumber int
	SelectionStartColumn     int
	PositionLineNumber       int
	PositionColumn           int
}

// NewSelection creates a selection from an anchor to a caret.
func NewSelection(startLine, startColumn, posLine, posColumn int) Selection {
	return Selection{startLine, startColumn, posLine, posColumn}
}

// SelectionFromPositions creates a selection from anchor to caret.
func SelectionFromPositions(start, pos Position) Selection {
	return Selection{start.LineNumber, start.Column, pos.LineNumber, pos.Column}
}

// SelectionFromRange creates a selection over r with the given direction.
func SelectionFromRange(r Range, dir Direction) Selection {
	if dir == LTR {
		return Selection{r.StartLineNumber, r.StartColumn, r.EndLineNumber, r.EndColumn}
	}
	return Selection{r.EndLineNumber, r.EndColumn, r.StartLineNumber, r.StartColumn}
}

// CollapsedSelection returns an empty selection at pos.
func CollapsedSelection(pos Position) Selection {
	return SelectionFromPositions(pos, pos)
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("[%d,%d -> %d,%d]", s.SelectionStartLineNumber, s.SelectionStartColumn, s.PositionLineNumber, s.PositionColumn)
}

// SelectionStart returns the anchor.
func (s Selection) SelectionStart() Position {
	return Position{s.SelectionStartLineNumber, s.SelectionStartColumn}
}

// Position returns the caret.
func (s Selection) Position() Position {
	return Position{s.PositionLineNumber, s.PositionColumn}
}

// Range returns the normalized range covered by the selection.
func (s Selection) Range() Range {
	return RangeFromPositions(s.SelectionStart(), s.Position())
}

// Start returns the lower end of the selection.
func (s Selection) Start() Position {
	return s.Range().Start()
}

// End returns the upper end of the selection.
func (s Selection) End() Position {
	return s.Range().End()
}

// IsEmpty returns true if anchor and caret coincide.
func (s Selection) IsEmpty() bool {
	return s.SelectionStart() == s.Position()
}

// Direction reports where the caret lies relative to the anchor.
func (s Selection) Direction() Direction {
	if s.Position().IsBefore(s.SelectionStart()) {
		return RTL
	}
	return LTR
}

// Equals returns true if both selections have the same anchor and caret.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// SetEndPosition returns a selection keeping the direction, with the end
// moved to the given location.
func (s Selection) SetEndPosition(lineNumber, column int) Selection {
	r := s.Range()
	if s.Direction() == LTR {
		return NewSelection(r.StartLineNumber, r.StartColumn, lineNumber, column)
	}
	return NewSelection(lineNumber, column, r.StartLineNumber, r.StartColumn)
}

// SelectionsEqual reports whether two selection slices are element-wise
// equal. Nil and empty slices are equal.
func SelectionsEqual(a, b []Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
