package controller

import (
	"fmt"
	"slices"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

type inlineTrigger struct {
	delim []rune
	mark  textmodel.MarkType
}

// inlineTriggers are tried in order; the first match wins.
var inlineTriggers = []inlineTrigger{
	{[]rune("`"), textmodel.MarkCode},
	{[]rune("**"), textmodel.MarkBold},
	{[]rune("*"), textmodel.MarkItalic},
	{[]rune("~"), textmodel.MarkStrikethrough},
}

// formatCommand replaces typed markup with its content and remembers
// where the content ended up so a mark or block type can be applied.
type formatCommand struct {
	command.ReplaceCommand
	mark  textmodel.MarkType
	block textmodel.BlockType

	result *textpos.Range
}

func (c *formatCommand) ComputeCursorState(m *textmodel.Model, h command.CursorStateHelper) textpos.Selection {
	r := h.InverseEditOperations()[0].Range
	c.result = &r
	return c.ReplaceCommand.ComputeCursorState(m, h)
}

// runAutoFormat turns markdown typed before each caret into block types
// and inline marks. It runs as one batch inside the open undo element.
func (c *Controller) runAutoFormat() {
	if !c.ctx.Config.MarkdownAutoFormat {
		return
	}
	sels := c.Selections()
	cmds := make([]command.Command, len(sels))
	found := false
	for i, s := range sels {
		if !s.IsEmpty() {
			continue
		}
		if cmd := detectFormat(c.model, s.Position()); cmd != nil {
			cmds[i] = cmd
			found = true
		}
	}
	if !found {
		return
	}

	res, err := c.exec.Execute(c.model, sels, cmds, c.markerSelection)
	if err != nil {
		c.sink.ReportUnexpected(fmt.Errorf("auto format: %w", err))
	}
	if res == nil {
		return
	}
	c.interpretCommandResult(res.Selections)

	for i, cmd := range cmds {
		f, ok := cmd.(*formatCommand)
		if !ok || f.result == nil || slices.Contains(res.Losers, i) {
			continue
		}
		if f.mark != 0 {
			c.model.AddMark(*f.result, f.mark)
			c.log.Debug("inline mark applied", "mark", f.mark.String(), "range", f.result.String())
			continue
		}
		if err := c.model.SetBlockType(f.result.StartLineNumber, f.block); err != nil {
			c.sink.ReportUnexpected(fmt.Errorf("auto format: %w", err))
		}
	}
}

// detectFormat returns the command formatting the text before pos, or nil.
func detectFormat(m *textmodel.Model, pos textpos.Position) *formatCommand {
	line := []rune(m.LineContent(pos.LineNumber))
	prefix := line[:min(pos.Column-1, len(line))]

	if bt, ok := blockTrigger(prefix); ok && m.BlockType(pos.LineNumber) == textmodel.BlockParagraph {
		return &formatCommand{
			ReplaceCommand: command.ReplaceCommand{Range: textpos.NewRange(pos.LineNumber, 1, pos.LineNumber, pos.Column)},
			block:          bt,
		}
	}

	for _, t := range inlineTriggers {
		start, content, ok := inlineMatch(prefix, t.delim)
		if !ok {
			continue
		}
		return &formatCommand{
			ReplaceCommand: command.ReplaceCommand{
				Range: textpos.NewRange(pos.LineNumber, start+1, pos.LineNumber, pos.Column),
				Text:  string(content),
			},
			mark: t.mark,
		}
	}
	return nil
}

// blockTrigger matches "[]" and "- ", "* ", "+ " typed at the start of a
// line.
func blockTrigger(prefix []rune) (textmodel.BlockType, bool) {
	switch {
	case string(prefix) == "[]":
		return textmodel.BlockTodo, true
	case len(prefix) == 2 && prefix[1] == ' ' && (prefix[0] == '-' || prefix[0] == '*' || prefix[0] == '+'):
		return textmodel.BlockBulletedList, true
	}
	return 0, false
}

// inlineMatch finds delim + content + delim at the end of prefix and
// returns the 0-based offset of the opening delimiter and the content.
// A one-character delimiter never pairs with a doubled one, so "**" is
// not read as two italic markers.
func inlineMatch(prefix, delim []rune) (int, []rune, bool) {
	n := len(delim)
	if len(prefix) < 2*n+1 || !hasSuffix(prefix, delim) {
		return 0, nil, false
	}
	body := prefix[:len(prefix)-n]
	if n == 1 && body[len(body)-1] == delim[0] {
		return 0, nil, false
	}
	start := lastIndex(body, delim)
	if start < 0 {
		return 0, nil, false
	}
	if n == 1 {
		if (start > 0 && body[start-1] == delim[0]) || body[start+1] == delim[0] {
			return 0, nil, false
		}
	}
	content := body[start+n:]
	if len(content) == 0 {
		return 0, nil, false
	}
	return start, content, true
}

func hasSuffix(s, suffix []rune) bool {
	return len(s) >= len(suffix) && slices.Equal(s[len(s)-len(suffix):], suffix)
}

func lastIndex(s, sub []rune) int {
	for i := len(s) - len(sub); i >= 0; i-- {
		if slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
