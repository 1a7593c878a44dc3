package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the number of elements kept when none is configured.
const DefaultMaxEntries = 1000

// History manages the undo and redo stacks of one model.
// It is not safe for concurrent use.
type History struct {
	undoStack []*Element
	redoStack []*Element

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records step. It is appended to the open element, or opens a new one
// whose before-state is before. Pushing clears the redo stack.
func (h *History) Push(step Step, before []textpos.Selection) {
	h.redoStack = nil

	if top := h.open(); top != nil {
		top.Steps = append(top.Steps, step)
		return
	}

	h.undoStack = append(h.undoStack, &Element{
		Steps:            []Step{step},
		BeforeSelections: cloneSelections(before),
		Timestamp:        time.Now(),
	})

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// SetAfterSelections records the selections after the latest step of the
// open element. It is a no-op when no element is open.
func (h *History) SetAfterSelections(after []textpos.Selection) {
	if top := h.open(); top != nil {
		top.AfterSelections = cloneSelections(after)
	}
}

// Close marks the open element as finished. The next Push opens a new
// element.
func (h *History) Close() {
	if top := h.open(); top != nil {
		top.closed = true
	}
}

// IsOpen reports whether the newest element can still absorb steps.
func (h *History) IsOpen() bool {
	return h.open() != nil
}

func (h *History) open() *Element {
	if len(h.undoStack) == 0 {
		return nil
	}
	top := h.undoStack[len(h.undoStack)-1]
	if top.closed {
		return nil
	}
	return top
}

// Undo closes and reverts the newest element and returns it.
// On failure the element is kept on the undo stack.
func (h *History) Undo() (*Element, error) {
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	h.Close()

	el := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	if err := el.undo(); err != nil {
		h.undoStack = append(h.undoStack, el)
		return nil, fmt.Errorf("undo: %w", err)
	}

	h.redoStack = append(h.redoStack, el)
	return el, nil
}

// Redo reapplies the most recently undone element and returns it.
// On failure the element is kept on the redo stack.
func (h *History) Redo() (*Element, error) {
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	el := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	if err := el.redo(); err != nil {
		h.redoStack = append(h.redoStack, el)
		return nil, fmt.Errorf("redo: %w", err)
	}

	h.undoStack = append(h.undoStack, el)
	return el, nil
}

// PeekUndo returns the element Undo would revert, or nil.
func (h *History) PeekUndo() *Element {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// PeekRedo returns the element Redo would reapply, or nil.
func (h *History) PeekRedo() *Element {
	if len(h.redoStack) == 0 {
		return nil
	}
	return h.redoStack[len(h.redoStack)-1]
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo elements available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo elements available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear drops all history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func cloneSelections(s []textpos.Selection) []textpos.Selection {
	if s == nil {
		return nil
	}
	out := make([]textpos.Selection, len(s))
	copy(out, s)
	return out
}
