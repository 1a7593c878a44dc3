package textpos

import "fmt"

// Range is a span between two positions. Start is always before or equal to
// End; constructors normalize their input.
type Range struct {
	StartLineNumber int
	StartColumn     int
	EndLineNumber   int
	EndColumn       int
}

// NewRange creates a range, swapping the endpoints if needed.
func NewRange(startLine, startColumn, endLine, endColumn int) Range {
	if startLine > endLine || (startLine == endLine && startColumn > endColumn) {
		return Range{endLine, endColumn, startLine, startColumn}
	}
	return Range{startLine, startColumn, endLine, endColumn}
}

// RangeFromPositions creates a range covering both positions.
func RangeFromPositions(start, end Position) Range {
	return NewRange(start.LineNumber, start.Column, end.LineNumber, end.Column)
}

// EmptyRange creates a collapsed range at pos.
func EmptyRange(pos Position) Range {
	return Range{pos.LineNumber, pos.Column, pos.LineNumber, pos.Column}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d -> %d,%d]", r.StartLineNumber, r.StartColumn, r.EndLineNumber, r.EndColumn)
}

// Start returns the start position.
func (r Range) Start() Position {
	return Position{r.StartLineNumber, r.StartColumn}
}

// End returns the end position.
func (r Range) End() Position {
	return Position{r.EndLineNumber, r.EndColumn}
}

// IsEmpty returns true if the range covers nothing.
func (r Range) IsEmpty() bool {
	return r.StartLineNumber == r.EndLineNumber && r.StartColumn == r.EndColumn
}

// IsSingleLine returns true if the range starts and ends on the same line.
func (r Range) IsSingleLine() bool {
	return r.StartLineNumber == r.EndLineNumber
}

// Equals returns true if both ranges are identical.
func (r Range) Equals(other Range) bool {
	return r == other
}

// ContainsPosition returns true if pos lies inside r, edges included.
func (r Range) ContainsPosition(pos Position) bool {
	return !pos.IsBefore(r.Start()) && !r.End().IsBefore(pos)
}

// StrictContainsPosition returns true if pos lies inside r, edges excluded.
func (r Range) StrictContainsPosition(pos Position) bool {
	return r.Start().IsBefore(pos) && pos.IsBefore(r.End())
}

// ContainsRange returns true if other lies inside r, edges included.
func (r Range) ContainsRange(other Range) bool {
	return r.ContainsPosition(other.Start()) && r.ContainsPosition(other.End())
}

// StrictContainsRange returns true if other lies inside r and touches
// neither edge.
func (r Range) StrictContainsRange(other Range) bool {
	return r.StrictContainsPosition(other.Start()) && r.StrictContainsPosition(other.End())
}

// Intersect returns the overlap of two ranges and whether one exists.
// Ranges that only touch produce an empty intersection.
func (r Range) Intersect(other Range) (Range, bool) {
	start := MaxPosition(r.Start(), other.Start())
	end := MinPosition(r.End(), other.End())
	if end.IsBefore(start) {
		return Range{}, false
	}
	return RangeFromPositions(start, end), true
}

// Union returns the smallest range covering both.
func (r Range) Union(other Range) Range {
	return RangeFromPositions(MinPosition(r.Start(), other.Start()), MaxPosition(r.End(), other.End()))
}

// SetStart returns a copy with a new start position.
func (r Range) SetStart(pos Position) Range {
	return RangeFromPositions(pos, r.End())
}

// SetEnd returns a copy with a new end position.
func (r Range) SetEnd(pos Position) Range {
	return RangeFromPositions(r.Start(), pos)
}

// CollapseToStart returns the empty range at the start.
func (r Range) CollapseToStart() Range {
	return EmptyRange(r.Start())
}

// CompareRangesUsingStarts orders ranges by start, then by end.
func CompareRangesUsingStarts(a, b Range) int {
	if c := a.Start().Compare(b.Start()); c != 0 {
		return c
	}
	return a.End().Compare(b.End())
}
