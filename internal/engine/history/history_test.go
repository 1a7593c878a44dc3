package history

import (
	"errors"
	"testing"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// recorder is a step that appends its name to a shared log.
func recorder(name string, log *[]string) Step {
	return StepFunc{
		Name:     name,
		UndoFunc: func() error { *log = append(*log, "undo "+name); return nil },
		RedoFunc: func() error { *log = append(*log, "redo "+name); return nil },
	}
}

func TestPushAccumulatesIntoOpenElement(t *testing.T) {
	h := NewHistory(0)
	var log []string
	before := []textpos.Selection{textpos.NewSelection(1, 1, 1, 1)}

	h.Push(recorder("a", &log), before)
	h.Push(recorder("b", &log), nil)

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}

	h.Close()
	h.Push(recorder("c", &log), nil)
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", h.UndoCount())
	}
}

func TestUndoRunsStepsInReverse(t *testing.T) {
	h := NewHistory(0)
	var log []string
	before := []textpos.Selection{textpos.NewSelection(2, 3, 2, 3)}

	h.Push(recorder("a", &log), before)
	h.Push(recorder("b", &log), nil)
	h.SetAfterSelections([]textpos.Selection{textpos.NewSelection(2, 5, 2, 5)})

	el, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if !textpos.SelectionsEqual(el.BeforeSelections, before) {
		t.Errorf("BeforeSelections = %v", el.BeforeSelections)
	}
	if got := el.AfterSelections[0]; got != textpos.NewSelection(2, 5, 2, 5) {
		t.Errorf("AfterSelections = %v", el.AfterSelections)
	}

	if _, err := h.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}

	want := []string{"undo b", "undo a", "redo a", "redo b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestUndoClosesOpenElement(t *testing.T) {
	h := NewHistory(0)
	var log []string
	h.Push(recorder("a", &log), nil)

	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Redo(); err != nil {
		t.Fatal(err)
	}

	// The redone element is closed, so a new push starts a new element.
	h.Push(recorder("b", &log), nil)
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", h.UndoCount())
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory(0)
	var log []string
	h.Push(recorder("a", &log), nil)
	_, _ = h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	h.Push(recorder("b", &log), nil)
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestEmptyStacks(t *testing.T) {
	h := NewHistory(0)
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestMaxEntries(t *testing.T) {
	h := NewHistory(2)
	var log []string
	for _, name := range []string{"a", "b", "c"} {
		h.Push(recorder(name, &log), nil)
		h.Close()
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", h.UndoCount())
	}
}

func TestFailedUndoKeepsElement(t *testing.T) {
	h := NewHistory(0)
	boom := errors.New("boom")
	h.Push(StepFunc{
		Name:     "bad",
		UndoFunc: func() error { return boom },
		RedoFunc: func() error { return nil },
	}, nil)

	if _, err := h.Undo(); !errors.Is(err, boom) {
		t.Fatalf("Undo() error = %v, want boom", err)
	}
	if h.UndoCount() != 1 || h.CanRedo() {
		t.Error("failed undo should leave the stacks unchanged")
	}
}
