// Package history provides the undo/redo stack used by the text model.
//
// The stack holds Elements. An element is one user-visible undo unit and
// records an ordered list of Steps (edit batches, block type changes, inline
// mark changes) together with the cursor selections before and after it.
//
// # Open elements
//
// The newest element stays open and keeps absorbing steps until Close is
// called. Close corresponds to an explicit undo boundary; the cursor
// controller calls it between unrelated operations and skips it between
// consecutive keystrokes so typing a word undoes in one step:
//
//	h.Push(step, beforeSelections) // opens an element
//	h.Push(step2, nil)             // appended to the same element
//	h.Close()                      // next Push opens a new element
//
// # Undo and redo
//
// Undo closes the open element, pops it and undoes its steps in reverse.
// Redo replays the steps in order. The caller is responsible for making sure
// steps executed during Undo/Redo do not push new history.
package history
