// Package command runs per-cursor edit commands against the text model as
// one transaction.
//
// A Command is asked for its edit operations through a Builder, then,
// once all operations of the batch are applied, computes the selection its
// cursor should have. Execute concatenates the operations of every command
// into a single PushEditOperations call so the batch is one undo step.
package command

import (
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// Command produces the edits of one cursor.
type Command interface {
	// GetEditOperations registers the command's edits with b. A returned
	// error drops every operation of this command.
	GetEditOperations(model *textmodel.Model, b Builder) error

	// ComputeCursorState returns the selection of the cursor after the
	// batch was applied.
	ComputeCursorState(model *textmodel.Model, h CursorStateHelper) textpos.Selection
}

// Builder collects the edit operations of one command.
type Builder interface {
	// AddEditOperation replaces r with text. Empty no-op edits are
	// discarded.
	AddEditOperation(r textpos.Range, text string)

	// AddTrackedEditOperation is AddEditOperation for an edit whose result
	// the command reads back through CursorStateHelper.InverseEditOperations.
	AddTrackedEditOperation(r textpos.Range, text string)

	// AddForcedEditOperation is AddEditOperation with markers at the edit
	// position pushed past the inserted text.
	AddForcedEditOperation(r textpos.Range, text string)

	// TrackSelection follows sel through the batch and returns an id for
	// CursorStateHelper.TrackedSelection. For an empty selection
	// trackPreviousOnEmpty picks which side it sticks to.
	TrackSelection(sel textpos.Selection, trackPreviousOnEmpty *bool) string
}

// CursorStateHelper gives a command access to the outcome of the batch.
type CursorStateHelper interface {
	// InverseEditOperations returns the inverse of the command's own
	// operations, in the order they were added.
	InverseEditOperations() []textmodel.InverseEditOperation

	// TrackedSelection returns the current value of a selection registered
	// with Builder.TrackSelection.
	TrackedSelection(id string) textpos.Selection
}

// Bool returns a pointer to b, for Builder.TrackSelection.
func Bool(b bool) *bool {
	return &b
}
