package textmodel

import (
	"errors"

	"github.com/dshills/viewcore/internal/engine/history"
)

// Errors returned by model operations.
var (
	// ErrEditsOverlap indicates that a batch contains overlapping edit ranges.
	ErrEditsOverlap = errors.New("edit operations overlap")

	// ErrUnknownDecoration indicates a decoration id that does not exist.
	ErrUnknownDecoration = errors.New("unknown decoration")

	// ErrLineOutOfRange indicates a line number outside [1, LineCount].
	ErrLineOutOfRange = errors.New("line number out of range")

	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = history.ErrNothingToRedo
)
