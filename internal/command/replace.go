package command

import (
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// ReplaceCommand replaces a range and leaves the cursor after the new text.
type ReplaceCommand struct {
	Range textpos.Range
	Text  string
}

// NewReplaceCommand creates a ReplaceCommand.
func NewReplaceCommand(r textpos.Range, text string) *ReplaceCommand {
	return &ReplaceCommand{Range: r, Text: text}
}

func (c *ReplaceCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	b.AddTrackedEditOperation(c.Range, c.Text)
	return nil
}

func (c *ReplaceCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	return textpos.CollapsedSelection(insertedRange(h).End())
}

// ReplaceWithOffsetCommand replaces a range and places the cursor relative
// to the end of the new text, for example between an inserted pair.
type ReplaceWithOffsetCommand struct {
	Range       textpos.Range
	Text        string
	LineDelta   int
	ColumnDelta int
}

func (c *ReplaceWithOffsetCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	b.AddTrackedEditOperation(c.Range, c.Text)
	return nil
}

func (c *ReplaceWithOffsetCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	return textpos.CollapsedSelection(insertedRange(h).End().Delta(c.LineDelta, c.ColumnDelta))
}

// ReplaceKeepPositionCommand replaces a range and leaves the cursor before
// the new text.
type ReplaceKeepPositionCommand struct {
	Range textpos.Range
	Text  string
}

func (c *ReplaceKeepPositionCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	b.AddTrackedEditOperation(c.Range, c.Text)
	return nil
}

func (c *ReplaceKeepPositionCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	return textpos.CollapsedSelection(insertedRange(h).Start())
}

// ReplaceSelectCommand replaces a range and selects the new text.
type ReplaceSelectCommand struct {
	Range textpos.Range
	Text  string
}

func (c *ReplaceSelectCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	b.AddTrackedEditOperation(c.Range, c.Text)
	return nil
}

func (c *ReplaceSelectCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	return textpos.SelectionFromRange(insertedRange(h), textpos.LTR)
}

// ReplacePreserveSelectionCommand edits a range somewhere in the document
// and keeps the cursor's selection where the edit moved it.
type ReplacePreserveSelectionCommand struct {
	Range            textpos.Range
	Text             string
	Selection        textpos.Selection
	ForceMoveMarkers bool

	selectionID string
}

func (c *ReplacePreserveSelectionCommand) GetEditOperations(_ *textmodel.Model, b Builder) error {
	if c.ForceMoveMarkers {
		b.AddForcedEditOperation(c.Range, c.Text)
	} else {
		b.AddEditOperation(c.Range, c.Text)
	}
	c.selectionID = b.TrackSelection(c.Selection, nil)
	return nil
}

func (c *ReplacePreserveSelectionCommand) ComputeCursorState(_ *textmodel.Model, h CursorStateHelper) textpos.Selection {
	return h.TrackedSelection(c.selectionID)
}

func insertedRange(h CursorStateHelper) textpos.Range {
	inv := h.InverseEditOperations()
	return inv[0].Range
}
