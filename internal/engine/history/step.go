package history

import (
	"time"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// Step is one reversible change recorded inside an Element.
type Step interface {
	// Undo reverts the change.
	Undo() error

	// Redo reapplies the change after it was undone.
	Redo() error

	// Description returns a human-readable description of the step.
	Description() string
}

// Element is one undo unit.
type Element struct {
	// Label is an optional human-readable name.
	Label string

	// Steps are the recorded changes in application order.
	Steps []Step

	// BeforeSelections are the cursor selections before the first step.
	BeforeSelections []textpos.Selection

	// AfterSelections are the cursor selections after the last step.
	AfterSelections []textpos.Selection

	// Timestamp is when the element was opened.
	Timestamp time.Time

	closed bool
}

// IsClosed reports whether the element can still absorb steps.
func (e *Element) IsClosed() bool {
	return e.closed
}

func (e *Element) undo() error {
	for i := len(e.Steps) - 1; i >= 0; i-- {
		if err := e.Steps[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Element) redo() error {
	for _, s := range e.Steps {
		if err := s.Redo(); err != nil {
			return err
		}
	}
	return nil
}

// StepFunc adapts a pair of functions to the Step interface.
type StepFunc struct {
	Name     string
	UndoFunc func() error
	RedoFunc func() error
}

// Undo calls UndoFunc.
func (s StepFunc) Undo() error {
	return s.UndoFunc()
}

// Redo calls RedoFunc.
func (s StepFunc) Redo() error {
	return s.RedoFunc()
}

// Description returns the step name.
func (s StepFunc) Description() string {
	return s.Name
}
