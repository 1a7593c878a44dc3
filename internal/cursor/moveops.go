package cursor

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// position is a caret location with the visible columns it could not
// reach, used to keep the goal column across vertical moves.
type position struct {
	lineNumber int
	column     int
	leftover   int
}

func clipColumn(lines Lines, pos textpos.Position) textpos.Position {
	col := max(lines.LineMinColumn(pos.LineNumber), min(pos.Column, lines.LineMaxColumn(pos.LineNumber)))
	return textpos.NewPosition(pos.LineNumber, col)
}

func leftPosition(lines Lines, pos textpos.Position) textpos.Position {
	switch {
	case pos.Column > lines.LineMinColumn(pos.LineNumber):
		n := PrevCharLength(lines.LineContent(pos.LineNumber), pos.Column-1)
		return textpos.NewPosition(pos.LineNumber, pos.Column-max(n, 1))
	case pos.LineNumber > 1:
		line := pos.LineNumber - 1
		return textpos.NewPosition(line, lines.LineMaxColumn(line))
	default:
		return pos
	}
}

func rightPosition(lines Lines, pos textpos.Position) textpos.Position {
	switch {
	case pos.Column < lines.LineMaxColumn(pos.LineNumber):
		n := NextCharLength(lines.LineContent(pos.LineNumber), pos.Column-1)
		return textpos.NewPosition(pos.LineNumber, pos.Column+n)
	case pos.LineNumber < lines.LineCount():
		line := pos.LineNumber + 1
		return textpos.NewPosition(line, lines.LineMinColumn(line))
	default:
		return pos
	}
}

// moveLeft moves the caret left by columns characters. A selection
// collapses to its start unless it is being extended.
func moveLeft(cfg *Configuration, lines Lines, s SingleCursorState, inSelectionMode bool, columns int) SingleCursorState {
	if s.HasSelection() && !inSelectionMode {
		start := s.Selection.Start()
		return s.Move(false, start.LineNumber, start.Column, 0)
	}
	pos := s.Position.Delta(0, -(max(columns, 1) - 1))
	pos = lines.NormalizePosition(clipColumn(lines, pos), projection.AffinityLeft)
	p := leftPosition(lines, pos)
	return s.Move(inSelectionMode, p.LineNumber, p.Column, 0)
}

// moveRight moves the caret right by columns characters. A selection
// collapses to its end unless it is being extended.
func moveRight(cfg *Configuration, lines Lines, s SingleCursorState, inSelectionMode bool, columns int) SingleCursorState {
	if s.HasSelection() && !inSelectionMode {
		end := s.Selection.End()
		return s.Move(false, end.LineNumber, end.Column, 0)
	}
	pos := s.Position.Delta(0, max(columns, 1)-1)
	pos = lines.NormalizePosition(clipColumn(lines, pos), projection.AffinityRight)
	p := rightPosition(lines, pos)
	return s.Move(inSelectionMode, p.LineNumber, p.Column, 0)
}

func down(cfg *Configuration, lines Lines, lineNumber, column, leftover, count int, allowMoveOnLastLine bool) position {
	visible := cfg.VisibleColumnFromColumn(lines, lineNumber, column) + leftover
	lineCount := lines.LineCount()
	wasOnLastPosition := lineNumber == lineCount && column == lines.LineMaxColumn(lineNumber)

	lineNumber += count
	if lineNumber > lineCount {
		lineNumber = lineCount
		if allowMoveOnLastLine {
			column = lines.LineMaxColumn(lineNumber)
		} else {
			column = min(lines.LineMaxColumn(lineNumber), column)
		}
	} else {
		column = cfg.ColumnFromVisibleColumn(lines, lineNumber, visible)
	}

	if wasOnLastPosition {
		leftover = 0
	} else {
		leftover = visible - cfg.VisibleColumnFromColumn(lines, lineNumber, column)
	}
	return position{lineNumber, column, leftover}
}

func up(cfg *Configuration, lines Lines, lineNumber, column, leftover, count int, allowMoveOnFirstLine bool) position {
	visible := cfg.VisibleColumnFromColumn(lines, lineNumber, column) + leftover
	wasOnFirstPosition := lineNumber == 1 && column == 1

	lineNumber -= count
	if lineNumber < 1 {
		lineNumber = 1
		if allowMoveOnFirstLine {
			column = lines.LineMinColumn(lineNumber)
		} else {
			column = min(lines.LineMaxColumn(lineNumber), column)
		}
	} else {
		column = cfg.ColumnFromVisibleColumn(lines, lineNumber, visible)
	}

	if wasOnFirstPosition {
		leftover = 0
	} else {
		leftover = visible - cfg.VisibleColumnFromColumn(lines, lineNumber, column)
	}
	return position{lineNumber, column, leftover}
}

// moveDown moves the caret down count lines, keeping the goal column in
// the state's leftover visible columns.
func moveDown(cfg *Configuration, lines Lines, s SingleCursorState, inSelectionMode bool, count int) SingleCursorState {
	from := s.Position
	if s.HasSelection() && !inSelectionMode {
		from = s.Selection.End()
	}
	p := down(cfg, lines, from.LineNumber, from.Column, s.LeftoverVisibleColumns, max(count, 1), true)
	return s.Move(inSelectionMode, p.lineNumber, p.column, p.leftover)
}

// moveUp moves the caret up count lines, keeping the goal column in the
// state's leftover visible columns.
func moveUp(cfg *Configuration, lines Lines, s SingleCursorState, inSelectionMode bool, count int) SingleCursorState {
	from := s.Position
	if s.HasSelection() && !inSelectionMode {
		from = s.Selection.Start()
	}
	p := up(cfg, lines, from.LineNumber, from.Column, s.LeftoverVisibleColumns, max(count, 1), true)
	return s.Move(inSelectionMode, p.lineNumber, p.column, p.leftover)
}

// translateDown returns a copy of s one line lower, used to add a cursor
// below.
func translateDown(cfg *Configuration, lines Lines, s SingleCursorState) SingleCursorState {
	sel := s.Selection
	start := down(cfg, lines, sel.SelectionStartLineNumber, sel.SelectionStartColumn, s.SelectionStartLeftoverVisibleColumns, 1, false)
	pos := down(cfg, lines, sel.PositionLineNumber, sel.PositionColumn, s.LeftoverVisibleColumns, 1, false)
	return NewSingleCursorState(
		textpos.EmptyRange(textpos.NewPosition(start.lineNumber, start.column)), KindSimple, start.leftover,
		textpos.NewPosition(pos.lineNumber, pos.column), pos.leftover)
}

// translateUp returns a copy of s one line higher, used to add a cursor
// above.
func translateUp(cfg *Configuration, lines Lines, s SingleCursorState) SingleCursorState {
	sel := s.Selection
	start := up(cfg, lines, sel.SelectionStartLineNumber, sel.SelectionStartColumn, s.SelectionStartLeftoverVisibleColumns, 1, false)
	pos := up(cfg, lines, sel.PositionLineNumber, sel.PositionColumn, s.LeftoverVisibleColumns, 1, false)
	return NewSingleCursorState(
		textpos.EmptyRange(textpos.NewPosition(start.lineNumber, start.column)), KindSimple, start.leftover,
		textpos.NewPosition(pos.lineNumber, pos.column), pos.leftover)
}

// moveToBeginningOfLine toggles between the first non-blank column and
// the first column.
func moveToBeginningOfLine(lines Lines, s SingleCursorState, inSelectionMode bool) SingleCursorState {
	line := s.Position.LineNumber
	minCol := lines.LineMinColumn(line)
	first := firstNonWhitespaceColumn(lines.LineContent(line))
	if first < minCol {
		first = minCol
	}
	col := first
	if s.Position.Column == first {
		col = minCol
	}
	return s.Move(inSelectionMode, line, col, 0)
}

// moveToEndOfLine moves to the last column of the line.
func moveToEndOfLine(lines Lines, s SingleCursorState, inSelectionMode bool) SingleCursorState {
	line := s.Position.LineNumber
	return s.Move(inSelectionMode, line, lines.LineMaxColumn(line), 0)
}

// moveToBeginningOfBuffer moves to (1,1).
func moveToBeginningOfBuffer(s SingleCursorState, inSelectionMode bool) SingleCursorState {
	return s.Move(inSelectionMode, 1, 1, 0)
}

// moveToEndOfBuffer moves after the last character.
func moveToEndOfBuffer(lines Lines, s SingleCursorState, inSelectionMode bool) SingleCursorState {
	last := lines.LineCount()
	return s.Move(inSelectionMode, last, lines.LineMaxColumn(last), 0)
}
