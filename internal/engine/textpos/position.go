// Package textpos provides the 1-based coordinate value types shared by the
// model, the view and the cursor engine.
//
// Line numbers and columns both start at 1. A column counts code points, so
// the position after the last character of a line of length n is column n+1.
// All types are immutable values; methods return new values.
package textpos

import "fmt"

// Position is a line and column location in either model or view space.
type Position struct {
	LineNumber int
	Column     int
}

// NewPosition creates a position.
func NewPosition(lineNumber, column int) Position {
	return Position{LineNumber: lineNumber, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.LineNumber, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.LineNumber < other.LineNumber:
		return -1
	case p.LineNumber > other.LineNumber:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// IsBefore returns true if p comes strictly before other.
func (p Position) IsBefore(other Position) bool {
	return p.Compare(other) < 0
}

// IsBeforeOrEqual returns true if p comes before or equals other.
func (p Position) IsBeforeOrEqual(other Position) bool {
	return p.Compare(other) <= 0
}

// Equals returns true if both positions are identical.
func (p Position) Equals(other Position) bool {
	return p == other
}

// With returns a copy with the given line number and column.
// Zero values keep the current component.
func (p Position) With(lineNumber, column int) Position {
	if lineNumber == 0 {
		lineNumber = p.LineNumber
	}
	if column == 0 {
		column = p.Column
	}
	return Position{LineNumber: lineNumber, Column: column}
}

// Delta returns a copy shifted by the given amounts.
func (p Position) Delta(deltaLine, deltaColumn int) Position {
	return Position{LineNumber: p.LineNumber + deltaLine, Column: p.Column + deltaColumn}
}

// MinPosition returns the smaller of two positions.
func MinPosition(a, b Position) Position {
	if a.IsBefore(b) {
		return a
	}
	return b
}

// MaxPosition returns the larger of two positions.
func MaxPosition(a, b Position) Position {
	if a.IsBefore(b) {
		return b
	}
	return a
}
