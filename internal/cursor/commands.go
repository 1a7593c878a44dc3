package cursor

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// The functions in this file compute new cursor states without touching
// the cursors. Each returns one partial State per input cursor; the caller
// hands them to Collection.SetStates or Controller.SetStates.

// MoveTo places the caret at the model position pos. When viewPos is
// given it is used as the view image of pos if it agrees with it. In
// selection mode, word and line selections keep their granularity.
func MoveTo(ctx *Context, s State, inSelectionMode bool, pos textpos.Position, viewPos *textpos.Position) State {
	if inSelectionMode {
		switch s.ModelState.SelectionStartKind {
		case KindWord:
			return Word(ctx, s, inSelectionMode, pos)
		case KindLine:
			return Line(ctx, s, inSelectionMode, pos, viewPos)
		}
	}
	pos = ctx.Model.ValidatePosition(pos)
	vp := viewPositionOf(ctx, pos, viewPos)
	return FromViewState(s.ViewState.Move(inSelectionMode, vp.LineNumber, vp.Column, 0))
}

func viewPositionOf(ctx *Context, pos textpos.Position, viewPos *textpos.Position) textpos.Position {
	conv := ctx.Converter()
	if viewPos != nil {
		return conv.ValidateViewPosition(*viewPos, pos)
	}
	return conv.ConvertModelPositionToViewPosition(pos, projection.AffinityNone)
}

// Line selects whole lines. Outside selection mode it selects the line at
// pos up to the start of the next one. In selection mode the selection
// grows a full line at a time away from the line it started on, and
// collapses back to that line when pos returns to it.
func Line(ctx *Context, s State, inSelectionMode bool, pos textpos.Position, viewPos *textpos.Position) State {
	pos = ctx.Model.ValidatePosition(pos)
	vp := viewPositionOf(ctx, pos, viewPos)

	if !inSelectionMode {
		lineCount := ctx.Model.LineCount()
		toLine, toCol := pos.LineNumber+1, 1
		if toLine > lineCount {
			toLine = lineCount
			toCol = ctx.Model.LineMaxColumn(toLine)
		}
		return FromModelState(NewSingleCursorState(
			textpos.NewRange(pos.LineNumber, 1, toLine, toCol), KindLine, 0,
			textpos.NewPosition(toLine, toCol), 0))
	}

	anchorLine := s.ModelState.SelectionStart.StartLineNumber
	switch {
	case pos.LineNumber < anchorLine:
		return FromViewState(s.ViewState.Move(true, vp.LineNumber, 1, 0))
	case pos.LineNumber > anchorLine:
		lineCount := ctx.ViewModel.ViewLineCount()
		toLine, toCol := vp.LineNumber+1, 1
		if toLine > lineCount {
			toLine = lineCount
			toCol = ctx.ViewModel.ViewLineMaxColumn(toLine)
		}
		return FromViewState(s.ViewState.Move(true, toLine, toCol, 0))
	default:
		end := s.ModelState.SelectionStart.End()
		return FromModelState(s.ModelState.Move(true, end.LineNumber, end.Column, 0))
	}
}

// Word selects the word at pos, or extends a word selection to it.
func Word(ctx *Context, s State, inSelectionMode bool, pos textpos.Position) State {
	pos = ctx.Model.ValidatePosition(pos)
	wc := NewWordClassifier(ctx.Config.WordSeparators)
	return FromModelState(WordAt(wc, ctx.ModelLines(), *s.ModelState, inSelectionMode, pos))
}

// MoveLeft moves every cursor left by columns characters in view space.
func MoveLeft(ctx *Context, states []State, inSelectionMode bool, columns int) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveLeft(ctx.Config, lines, *s.ViewState, inSelectionMode, columns))
	})
}

// MoveRight moves every cursor right by columns characters in view space.
func MoveRight(ctx *Context, states []State, inSelectionMode bool, columns int) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveRight(ctx.Config, lines, *s.ViewState, inSelectionMode, columns))
	})
}

// MoveWordLeft moves every cursor to the start of the previous word.
// Words are found on model lines so wrapping does not split them.
func MoveWordLeft(ctx *Context, states []State, inSelectionMode bool) []State {
	wc := NewWordClassifier(ctx.Config.WordSeparators)
	lines := ctx.ModelLines()
	return mapStates(states, func(s State) State {
		p := WordLeft(wc, lines, s.ModelState.Position)
		return FromModelState(s.ModelState.Move(inSelectionMode, p.LineNumber, p.Column, 0))
	})
}

// MoveWordRight moves every cursor to the end of the next word.
func MoveWordRight(ctx *Context, states []State, inSelectionMode bool) []State {
	wc := NewWordClassifier(ctx.Config.WordSeparators)
	lines := ctx.ModelLines()
	return mapStates(states, func(s State) State {
		p := WordRight(wc, lines, s.ModelState.Position)
		return FromModelState(s.ModelState.Move(inSelectionMode, p.LineNumber, p.Column, 0))
	})
}

// MoveUpByViewLines moves every cursor up count view lines. Each cursor
// keeps its own goal column.
func MoveUpByViewLines(ctx *Context, states []State, inSelectionMode bool, count int) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveUp(ctx.Config, lines, *s.ViewState, inSelectionMode, count))
	})
}

// MoveDownByViewLines moves every cursor down count view lines.
func MoveDownByViewLines(ctx *Context, states []State, inSelectionMode bool, count int) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveDown(ctx.Config, lines, *s.ViewState, inSelectionMode, count))
	})
}

// MoveUpByModelLines moves every cursor up count model lines.
func MoveUpByModelLines(ctx *Context, states []State, inSelectionMode bool, count int) []State {
	lines := ctx.ModelLines()
	return mapStates(states, func(s State) State {
		return FromModelState(moveUp(ctx.Config, lines, *s.ModelState, inSelectionMode, count))
	})
}

// MoveDownByModelLines moves every cursor down count model lines.
func MoveDownByModelLines(ctx *Context, states []State, inSelectionMode bool, count int) []State {
	lines := ctx.ModelLines()
	return mapStates(states, func(s State) State {
		return FromModelState(moveDown(ctx.Config, lines, *s.ModelState, inSelectionMode, count))
	})
}

// MoveToBeginningOfLine is Home on every cursor, in view space.
func MoveToBeginningOfLine(ctx *Context, states []State, inSelectionMode bool) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveToBeginningOfLine(lines, *s.ViewState, inSelectionMode))
	})
}

// MoveToEndOfLine is End on every cursor, in view space.
func MoveToEndOfLine(ctx *Context, states []State, inSelectionMode bool) []State {
	lines := ctx.ViewLines()
	return mapStates(states, func(s State) State {
		return FromViewState(moveToEndOfLine(lines, *s.ViewState, inSelectionMode))
	})
}

// MoveToBeginningOfBuffer moves every cursor to the first position.
func MoveToBeginningOfBuffer(ctx *Context, states []State, inSelectionMode bool) []State {
	return mapStates(states, func(s State) State {
		return FromModelState(moveToBeginningOfBuffer(*s.ModelState, inSelectionMode))
	})
}

// MoveToEndOfBuffer moves every cursor past the last character.
func MoveToEndOfBuffer(ctx *Context, states []State, inSelectionMode bool) []State {
	lines := ctx.ModelLines()
	return mapStates(states, func(s State) State {
		return FromModelState(moveToEndOfBuffer(lines, *s.ModelState, inSelectionMode))
	})
}

// SelectAll returns a single state selecting the whole document.
func SelectAll(ctx *Context) State {
	last := ctx.Model.LineCount()
	return FromModelState(NewSingleCursorState(
		textpos.EmptyRange(textpos.NewPosition(1, 1)), KindSimple, 0,
		textpos.NewPosition(last, ctx.Model.LineMaxColumn(last)), 0))
}

// AddCursorDown keeps every cursor and adds a copy one view line below it.
func AddCursorDown(ctx *Context, states []State) []State {
	lines := ctx.ViewLines()
	out := make([]State, 0, 2*len(states))
	for _, s := range states {
		out = append(out, s, FromViewState(translateDown(ctx.Config, lines, *s.ViewState)))
	}
	return out
}

// AddCursorUp keeps every cursor and adds a copy one view line above it.
func AddCursorUp(ctx *Context, states []State) []State {
	lines := ctx.ViewLines()
	out := make([]State, 0, 2*len(states))
	for _, s := range states {
		out = append(out, s, FromViewState(translateUp(ctx.Config, lines, *s.ViewState)))
	}
	return out
}

func mapStates(states []State, fn func(State) State) []State {
	out := make([]State, len(states))
	for i, s := range states {
		out[i] = fn(s)
	}
	return out
}
