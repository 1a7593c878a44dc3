package textmodel

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// PushStackElement closes the open undo element so the next change starts
// a new one.
func (m *Model) PushStackElement() {
	m.history.Close()
}

// CanUndo reports whether there is anything to undo.
func (m *Model) CanUndo() bool {
	return m.history.CanUndo()
}

// CanRedo reports whether there is anything to redo.
func (m *Model) CanRedo() bool {
	return m.history.CanRedo()
}

// UndoElementCount returns the number of undo elements on the stack.
func (m *Model) UndoElementCount() int {
	return m.history.UndoCount()
}

// Undo reverts the newest undo element and returns the selections that were
// current before it.
func (m *Model) Undo() ([]textpos.Selection, error) {
	m.undoRedo = undoRedoUndo
	if el := m.history.PeekUndo(); el != nil {
		m.resulting = el.BeforeSelections
	}
	defer m.endUndoRedo()

	el, err := m.history.Undo()
	if err != nil {
		return nil, err
	}
	return el.BeforeSelections, nil
}

// Redo reapplies the most recently undone element and returns the
// selections that were current after it.
func (m *Model) Redo() ([]textpos.Selection, error) {
	m.undoRedo = undoRedoRedo
	if el := m.history.PeekRedo(); el != nil {
		m.resulting = el.AfterSelections
	}
	defer m.endUndoRedo()

	el, err := m.history.Redo()
	if err != nil {
		return nil, err
	}
	return el.AfterSelections, nil
}

func (m *Model) endUndoRedo() {
	m.undoRedo = undoRedoNone
	m.resulting = nil
}

// IsUndoing reports whether an undo is in progress.
func (m *Model) IsUndoing() bool {
	return m.undoRedo == undoRedoUndo
}

// IsRedoing reports whether a redo is in progress.
func (m *Model) IsRedoing() bool {
	return m.undoRedo == undoRedoRedo
}
