package cursor

import (
	"strings"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

type charClass uint8

const (
	classRegular charClass = iota
	classWhitespace
	classSeparator
)

type wordType uint8

const (
	wordNone wordType = iota
	wordRegular
	wordSeparator
)

// wordInfo is a word on a line. start and end are 0-based code point
// offsets; end is exclusive.
type wordInfo struct {
	start, end    int
	kind          wordType
	nextCharClass charClass
}

// WordClassifier sorts characters into regular, whitespace and separator
// classes.
type WordClassifier struct {
	separators string
}

// NewWordClassifier creates a classifier for the given separators.
func NewWordClassifier(separators string) WordClassifier {
	return WordClassifier{separators: separators}
}

func (wc WordClassifier) classOf(r rune) charClass {
	switch {
	case r == ' ' || r == '\t':
		return classWhitespace
	case strings.ContainsRune(wc.separators, r):
		return classSeparator
	default:
		return classRegular
	}
}

func (wc WordClassifier) classes(line string) []charClass {
	runes := []rune(line)
	out := make([]charClass, len(runes))
	for i, r := range runes {
		out[i] = wc.classOf(r)
	}
	return out
}

func findEndOfWord(classes []charClass, kind wordType, start int) int {
	for i := start; i < len(classes); i++ {
		c := classes[i]
		if c == classWhitespace ||
			(kind == wordRegular && c == classSeparator) ||
			(kind == wordSeparator && c == classRegular) {
			return i
		}
	}
	return len(classes)
}

func findStartOfWord(classes []charClass, kind wordType, start int) int {
	for i := start; i >= 0; i-- {
		c := classes[i]
		if c == classWhitespace ||
			(kind == wordRegular && c == classSeparator) ||
			(kind == wordSeparator && c == classRegular) {
			return i + 1
		}
	}
	return 0
}

// previousWord returns the word ending at or before column, if any.
func (wc WordClassifier) previousWord(line string, column int) (wordInfo, bool) {
	classes := wc.classes(line)
	kind := wordNone
	for i := min(column-2, len(classes)-1); i >= 0; i-- {
		c := classes[i]
		switch {
		case c == classRegular:
			if kind == wordSeparator {
				return wordInfo{i + 1, findEndOfWord(classes, kind, i+1), kind, c}, true
			}
			kind = wordRegular
		case c == classSeparator:
			if kind == wordRegular {
				return wordInfo{i + 1, findEndOfWord(classes, kind, i+1), kind, c}, true
			}
			kind = wordSeparator
		case kind != wordNone:
			return wordInfo{i + 1, findEndOfWord(classes, kind, i+1), kind, c}, true
		}
	}
	if kind != wordNone {
		return wordInfo{0, findEndOfWord(classes, kind, 0), kind, classWhitespace}, true
	}
	return wordInfo{}, false
}

// nextWord returns the word starting at or after column, if any.
func (wc WordClassifier) nextWord(line string, column int) (wordInfo, bool) {
	classes := wc.classes(line)
	kind := wordNone
	for i := max(column-1, 0); i < len(classes); i++ {
		c := classes[i]
		switch {
		case c == classRegular:
			if kind == wordSeparator {
				return wordInfo{findStartOfWord(classes, kind, i-1), i, kind, c}, true
			}
			kind = wordRegular
		case c == classSeparator:
			if kind == wordRegular {
				return wordInfo{findStartOfWord(classes, kind, i-1), i, kind, c}, true
			}
			kind = wordSeparator
		case kind != wordNone:
			return wordInfo{findStartOfWord(classes, kind, i-1), i, kind, c}, true
		}
	}
	if kind != wordNone {
		return wordInfo{findStartOfWord(classes, kind, len(classes)-1), len(classes), kind, classWhitespace}, true
	}
	return wordInfo{}, false
}

// WordLeft returns the start of the word before pos, crossing to the end of
// the previous line when pos is at a line start.
func WordLeft(wc WordClassifier, lines Lines, pos textpos.Position) textpos.Position {
	line, col := pos.LineNumber, pos.Column
	if col == 1 && line > 1 {
		line--
		col = lines.LineMaxColumn(line)
	}
	content := lines.LineContent(line)
	w, ok := wc.previousWord(content, col)
	// A lone separator followed by a word belongs to that word.
	if ok && w.kind == wordSeparator && w.end-w.start == 1 && w.nextCharClass == classRegular {
		w, ok = wc.previousWord(content, w.start+1)
	}
	if !ok {
		return textpos.NewPosition(line, 1)
	}
	return textpos.NewPosition(line, w.start+1)
}

// WordRight returns the end of the word after pos, crossing to the start of
// the next line when pos is at a line end.
func WordRight(wc WordClassifier, lines Lines, pos textpos.Position) textpos.Position {
	line, col := pos.LineNumber, pos.Column
	if col == lines.LineMaxColumn(line) && line < lines.LineCount() {
		line++
		col = 1
	}
	content := lines.LineContent(line)
	w, ok := wc.nextWord(content, col)
	if ok && w.kind == wordSeparator && w.end-w.start == 1 && w.nextCharClass == classRegular {
		w, ok = wc.nextWord(content, w.end+1)
	}
	if !ok {
		return textpos.NewPosition(line, lines.LineMaxColumn(line))
	}
	return textpos.NewPosition(line, w.end+1)
}

// WordAt selects the word under pos. Outside selection mode it starts a
// word selection; in selection mode it extends state by whole words.
func WordAt(wc WordClassifier, lines Lines, state SingleCursorState, inSelectionMode bool, pos textpos.Position) SingleCursorState {
	content := lines.LineContent(pos.LineNumber)
	prev, hasPrev := wc.previousWord(content, pos.Column)
	next, hasNext := wc.nextWord(content, pos.Column)
	offset := pos.Column - 1

	if !inSelectionMode {
		var start, end int
		switch {
		case hasPrev && prev.kind == wordRegular && prev.start <= offset && offset <= prev.end:
			start, end = prev.start+1, prev.end+1
		case hasNext && next.kind == wordRegular && next.start <= offset && offset <= next.end:
			start, end = next.start+1, next.end+1
		default:
			start, end = 1, lines.LineMaxColumn(pos.LineNumber)
			if hasPrev {
				start = prev.end + 1
			}
			if hasNext {
				end = next.start + 1
			}
		}
		return NewSingleCursorState(
			textpos.NewRange(pos.LineNumber, start, pos.LineNumber, end), KindWord, 0,
			textpos.NewPosition(pos.LineNumber, end), 0)
	}

	var start, end int
	switch {
	case hasPrev && prev.kind == wordRegular && prev.start < offset && offset < prev.end:
		start, end = prev.start+1, prev.end+1
	case hasNext && next.kind == wordRegular && next.start < offset && offset < next.end:
		start, end = next.start+1, next.end+1
	default:
		start, end = pos.Column, pos.Column
	}

	line := pos.LineNumber
	var col int
	switch {
	case state.SelectionStart.ContainsPosition(pos):
		col = state.SelectionStart.EndColumn
	case pos.IsBeforeOrEqual(state.SelectionStart.Start()):
		col = start
		if state.SelectionStart.ContainsPosition(textpos.NewPosition(line, col)) {
			col = state.SelectionStart.EndColumn
		}
	default:
		col = end
		if state.SelectionStart.ContainsPosition(textpos.NewPosition(line, col)) {
			col = state.SelectionStart.StartColumn
		}
	}
	return state.Move(true, line, col, 0)
}
