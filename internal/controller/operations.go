package controller

import (
	"strings"
	"unicode"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/cursor"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// EditOperationType classifies an edit for undo grouping.
type EditOperationType uint8

const (
	OpOther EditOperationType = iota
	OpDeletingLeft
	OpDeletingRight
	OpTypingOther
	OpTypingFirstSpace
	OpTypingConsecutiveSpace
)

func (t EditOperationType) isTyping() bool {
	return t == OpTypingOther || t == OpTypingFirstSpace || t == OpTypingConsecutiveSpace
}

func (t EditOperationType) normalized() EditOperationType {
	if t == OpTypingFirstSpace || t == OpTypingConsecutiveSpace {
		return OpTypingOther
	}
	return t
}

// shouldPushStackElementBetween reports whether an undo boundary separates
// an operation of type prev from one of type cur. Runs of typing and runs
// of deleting each form one undo element.
func shouldPushStackElementBetween(prev, cur EditOperationType) bool {
	if prev.isTyping() && !cur.isTyping() {
		return true
	}
	if prev == OpTypingFirstSpace {
		return false
	}
	return prev.normalized() != cur.normalized()
}

// editOperationResult is a batch of per-cursor commands plus how it
// relates to the undo stack.
type editOperationResult struct {
	typ        EditOperationType
	commands   []command.Command
	pushBefore bool
	pushAfter  bool
}

// autoClosingCommand inserts an opening character with its closing partner
// and leaves the caret between them. It remembers where both ended up so
// the pair can be tracked.
type autoClosingCommand struct {
	command.ReplaceWithOffsetCommand
	opening, closing string

	closeRange     *textpos.Range
	enclosingRange *textpos.Range
}

func newAutoClosingCommand(sel textpos.Selection, opening, closing string) *autoClosingCommand {
	n := len([]rune(closing))
	return &autoClosingCommand{
		ReplaceWithOffsetCommand: command.ReplaceWithOffsetCommand{Range: sel.Range(), Text: opening + closing, ColumnDelta: -n},
		opening:                  opening,
		closing:                  closing,
	}
}

func (c *autoClosingCommand) ComputeCursorState(m *textmodel.Model, h command.CursorStateHelper) textpos.Selection {
	r := h.InverseEditOperations()[0].Range
	closeLen, openLen := len([]rune(c.closing)), len([]rune(c.opening))
	cr := textpos.NewRange(r.StartLineNumber, r.EndColumn-closeLen, r.EndLineNumber, r.EndColumn)
	er := textpos.NewRange(r.StartLineNumber, r.EndColumn-openLen-closeLen, r.EndLineNumber, r.EndColumn)
	c.closeRange, c.enclosingRange = &cr, &er
	return c.ReplaceWithOffsetCommand.ComputeCursorState(m, h)
}

// autoCloseBefore lists the characters after the caret that still allow
// an opening character to be auto-closed.
const autoCloseBefore = ";:.,=}])> \t"

func typingType(prev EditOperationType, ch string) EditOperationType {
	if ch != " " {
		return OpTypingOther
	}
	if prev == OpTypingFirstSpace || prev == OpTypingConsecutiveSpace {
		return OpTypingConsecutiveSpace
	}
	return OpTypingFirstSpace
}

func typeCommands(sels []textpos.Selection, text string) []command.Command {
	cmds := make([]command.Command, len(sels))
	for i, s := range sels {
		cmds[i] = command.NewReplaceCommand(s.Range(), text)
	}
	return cmds
}

// typeWithInterceptors types one character. Closing characters of an
// auto-closed pair are typed over; opening characters get their closing
// partner inserted.
func typeWithInterceptors(prev EditOperationType, cfg *cursor.Configuration, m *textmodel.Model, sels []textpos.Selection, autoClosed []textpos.Range, ch string) *editOperationResult {
	typ := typingType(prev, ch)
	res := &editOperationResult{typ: typ, pushBefore: shouldPushStackElementBetween(prev, typ)}

	if isAutoClosingOvertype(cfg, m, sels, autoClosed, ch) {
		res.commands = make([]command.Command, len(sels))
		for i, s := range sels {
			p := s.Position()
			res.commands[i] = command.NewReplaceCommand(textpos.NewRange(p.LineNumber, p.Column, p.LineNumber, p.Column+1), ch)
		}
		return res
	}

	if closing, ok := autoClosingPairClose(cfg, m, sels, ch); ok {
		res.commands = make([]command.Command, len(sels))
		for i, s := range sels {
			res.commands[i] = newAutoClosingCommand(s, ch, closing)
		}
		return res
	}

	res.commands = typeCommands(sels, ch)
	return res
}

// typeWithoutInterceptors inserts text at every selection as is.
func typeWithoutInterceptors(prev EditOperationType, sels []textpos.Selection, text string) *editOperationResult {
	return &editOperationResult{
		typ:        OpTypingOther,
		commands:   typeCommands(sels, text),
		pushBefore: shouldPushStackElementBetween(prev, OpTypingOther),
	}
}

func singleRune(s string) (rune, bool) {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}

func isAutoClosingOvertype(cfg *cursor.Configuration, m *textmodel.Model, sels []textpos.Selection, autoClosed []textpos.Range, ch string) bool {
	r, ok := singleRune(ch)
	if !ok || !cfg.AutoClosingBrackets || !cfg.IsAutoClosingClose(r) {
		return false
	}
	for _, s := range sels {
		if !s.IsEmpty() {
			return false
		}
		p := s.Position()
		after, ok := m.CharAt(p.LineNumber, p.Column)
		if !ok || after != r {
			return false
		}
		tracked := false
		for _, ac := range autoClosed {
			if ac.StartLineNumber == p.LineNumber && ac.StartColumn == p.Column {
				tracked = true
				break
			}
		}
		if !tracked {
			return false
		}
	}
	return true
}

func autoClosingPairClose(cfg *cursor.Configuration, m *textmodel.Model, sels []textpos.Selection, ch string) (string, bool) {
	r, ok := singleRune(ch)
	if !ok || !cfg.AutoClosingBrackets {
		return "", false
	}
	closing, ok := cfg.IsAutoClosingOpen(r)
	if !ok {
		return "", false
	}
	for _, s := range sels {
		if !s.IsEmpty() {
			return "", false
		}
		p := s.Position()
		if after, ok := m.CharAt(p.LineNumber, p.Column); ok && !strings.ContainsRune(autoCloseBefore, after) {
			return "", false
		}
		// A quote right after a word is an apostrophe.
		if closing == r && p.Column > 1 {
			if before, ok := m.CharAt(p.LineNumber, p.Column-1); ok && (unicode.IsLetter(before) || unicode.IsDigit(before)) {
				return "", false
			}
		}
	}
	return string(closing), true
}

func compositionTypeOperation(prev EditOperationType, m *textmodel.Model, sels []textpos.Selection, text string, replacePrev, replaceNext, positionDelta int) *editOperationResult {
	cmds := make([]command.Command, len(sels))
	for i, s := range sels {
		// A cursor operation happened during the composition.
		if !s.IsEmpty() {
			continue
		}
		p := s.Position()
		start := max(1, p.Column-replacePrev)
		end := min(m.LineMaxColumn(p.LineNumber), p.Column+replaceNext)
		r := textpos.NewRange(p.LineNumber, start, p.LineNumber, end)
		if m.ValueInRange(r) == text && positionDelta == 0 {
			continue
		}
		cmds[i] = &command.ReplaceWithOffsetCommand{Range: r, Text: text, ColumnDelta: positionDelta}
	}
	return &editOperationResult{
		typ:        OpTypingOther,
		commands:   cmds,
		pushBefore: shouldPushStackElementBetween(prev, OpTypingOther),
	}
}

// deleteLeftOperation deletes selections, or the character before each
// caret. An auto-closed pair around the caret is deleted as a whole.
func deleteLeftOperation(prev EditOperationType, cfg *cursor.Configuration, m *textmodel.Model, sels []textpos.Selection, autoClosed []textpos.Range) *editOperationResult {
	cmds := make([]command.Command, len(sels))
	for i, s := range sels {
		r := s.Range()
		if s.IsEmpty() {
			p := s.Position()
			switch {
			case isAutoClosedPairAt(cfg, m, p, autoClosed):
				r = textpos.NewRange(p.LineNumber, p.Column-1, p.LineNumber, p.Column+1)
			case p.Column > 1:
				n := cursor.PrevCharLength(m.LineContent(p.LineNumber), p.Column-1)
				r = textpos.NewRange(p.LineNumber, p.Column-max(n, 1), p.LineNumber, p.Column)
			case p.LineNumber > 1:
				r = textpos.NewRange(p.LineNumber-1, m.LineMaxColumn(p.LineNumber-1), p.LineNumber, 1)
			}
		}
		cmds[i] = command.NewReplaceCommand(r, "")
	}
	return &editOperationResult{
		typ:        OpDeletingLeft,
		commands:   cmds,
		pushBefore: shouldPushStackElementBetween(prev, OpDeletingLeft),
	}
}

func isAutoClosedPairAt(cfg *cursor.Configuration, m *textmodel.Model, p textpos.Position, autoClosed []textpos.Range) bool {
	before, ok1 := m.CharAt(p.LineNumber, p.Column-1)
	after, ok2 := m.CharAt(p.LineNumber, p.Column)
	if !ok1 || !ok2 {
		return false
	}
	if closing, ok := cfg.IsAutoClosingOpen(before); !ok || closing != after {
		return false
	}
	for _, ac := range autoClosed {
		if ac.StartLineNumber == p.LineNumber && ac.StartColumn == p.Column {
			return true
		}
	}
	return false
}

// deleteRightOperation deletes selections, or the character after each
// caret.
func deleteRightOperation(prev EditOperationType, m *textmodel.Model, sels []textpos.Selection) *editOperationResult {
	cmds := make([]command.Command, len(sels))
	for i, s := range sels {
		r := s.Range()
		if s.IsEmpty() {
			p := s.Position()
			maxCol := m.LineMaxColumn(p.LineNumber)
			switch {
			case p.Column < maxCol:
				n := cursor.NextCharLength(m.LineContent(p.LineNumber), p.Column-1)
				r = textpos.NewRange(p.LineNumber, p.Column, p.LineNumber, p.Column+n)
			case p.LineNumber < m.LineCount():
				r = textpos.NewRange(p.LineNumber, maxCol, p.LineNumber+1, 1)
			}
		}
		cmds[i] = command.NewReplaceCommand(r, "")
	}
	return &editOperationResult{
		typ:        OpDeletingRight,
		commands:   cmds,
		pushBefore: shouldPushStackElementBetween(prev, OpDeletingRight),
	}
}
