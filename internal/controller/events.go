package controller

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel"
)

// Sources name who triggered a cursor change.
const (
	SourceKeyboard    = "keyboard"
	SourceAPI         = "api"
	SourceModel       = "model"
	SourceModelChange = "modelChange"
	SourceViewModel   = "viewModel"
	SourceUndo        = "undo"
	SourceRedo        = "redo"
)

// CursorStateChangedEvent is published to document-level observers after
// the model selections changed. It always follows the matching
// viewmodel.ViewCursorStateChangedEvent.
type CursorStateChangedEvent struct {
	// OldSelections is nil when the cursors were recreated, for example
	// after the model was flushed.
	OldSelections     []textpos.Selection
	NewSelections     []textpos.Selection
	OldModelVersionID int
	NewModelVersionID int
	Source            string
	Reason            viewmodel.CursorChangeReason

	// ReachedMaxCursorCount is set when cursors beyond the configured
	// limit were dropped.
	ReachedMaxCursorCount bool
}
