package cursor

import (
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// Cursor is one caret with its selection. It keeps a tracked range in the
// model so its selection can be recovered after edits it did not make.
type Cursor struct {
	modelState SingleCursorState
	viewState  SingleCursorState

	trackedID      string
	trackSelection bool
}

// NewCursor creates a cursor at (1,1) and registers its tracked range.
func NewCursor(ctx *Context) *Cursor {
	c := &Cursor{trackSelection: true}
	start := CollapsedState(textpos.NewPosition(1, 1))
	c.trackedID = ctx.Model.AddTrackedRange(start.Selection.Range(), textmodel.AlwaysGrowsWhenTypingAtEdges)
	c.SetState(ctx, &start, &start)
	return c
}

// Dispose removes the tracked range.
func (c *Cursor) Dispose(ctx *Context) {
	ctx.Model.RemoveTrackedRange(c.trackedID)
}

// StartTrackingSelection resumes updating the tracked range on every state
// change.
func (c *Cursor) StartTrackingSelection(ctx *Context) {
	c.trackSelection = true
	c.updateTrackedRange(ctx)
}

// StopTrackingSelection freezes the tracked range so it only moves with
// edits.
func (c *Cursor) StopTrackingSelection() {
	c.trackSelection = false
}

func (c *Cursor) updateTrackedRange(ctx *Context) {
	if !c.trackSelection {
		return
	}
	_ = ctx.Model.SetTrackedRange(c.trackedID, c.modelState.Selection.Range(), textmodel.AlwaysGrowsWhenTypingAtEdges)
}

// ModelState returns the model half of the state.
func (c *Cursor) ModelState() SingleCursorState {
	return c.modelState
}

// ViewState returns the view half of the state.
func (c *Cursor) ViewState() SingleCursorState {
	return c.viewState
}

// AsState returns a copy of the full state.
func (c *Cursor) AsState() State {
	m, v := c.modelState, c.viewState
	return State{ModelState: &m, ViewState: &v}
}

// ReadSelectionFromMarkers returns the selection recorded by the tracked
// range, with the cursor's current direction.
func (c *Cursor) ReadSelectionFromMarkers(ctx *Context) textpos.Selection {
	r, ok := ctx.Model.TrackedRange(c.trackedID)
	if !ok {
		return c.modelState.Selection
	}
	dir := c.modelState.Selection.Direction()
	if c.modelState.Selection.IsEmpty() && !r.IsEmpty() {
		return textpos.SelectionFromRange(textpos.EmptyRange(r.End()), dir)
	}
	return textpos.SelectionFromRange(r, dir)
}

// EnsureValidState re-validates the state against the current model and
// view, for example after the line mapping changed.
func (c *Cursor) EnsureValidState(ctx *Context) {
	m, v := c.modelState, c.viewState
	c.SetState(ctx, &m, &v)
}

// SetState replaces the cursor state. A nil half is derived from the other
// one; a present half is validated. Passing two nils is a no-op.
func (c *Cursor) SetState(ctx *Context, modelState, viewState *SingleCursorState) {
	conv := ctx.Converter()

	var model SingleCursorState
	switch {
	case modelState == nil && viewState == nil:
		return
	case modelState == nil:
		selStart := ctx.Model.ValidateRange(conv.ConvertViewRangeToModelRange(viewState.SelectionStart))
		pos := ctx.Model.ValidatePosition(conv.ConvertViewPositionToModelPosition(viewState.Position))
		model = NewSingleCursorState(selStart, viewState.SelectionStartKind, viewState.SelectionStartLeftoverVisibleColumns, pos, viewState.LeftoverVisibleColumns)
	default:
		selStart := ctx.Model.ValidateRange(modelState.SelectionStart)
		selStartLeftover := modelState.SelectionStartLeftoverVisibleColumns
		if selStart != modelState.SelectionStart {
			selStartLeftover = 0
		}
		pos := ctx.Model.ValidatePosition(modelState.Position)
		leftover := modelState.LeftoverVisibleColumns
		if pos != modelState.Position {
			leftover = 0
		}
		model = NewSingleCursorState(selStart, modelState.SelectionStartKind, selStartLeftover, pos, leftover)
	}

	var view SingleCursorState
	if viewState == nil {
		start := conv.ConvertModelPositionToViewPosition(model.SelectionStart.Start(), projection.AffinityNone)
		end := conv.ConvertModelPositionToViewPosition(model.SelectionStart.End(), projection.AffinityNone)
		pos := conv.ConvertModelPositionToViewPosition(model.Position, projection.AffinityNone)
		view = NewSingleCursorState(textpos.RangeFromPositions(start, end), model.SelectionStartKind, model.SelectionStartLeftoverVisibleColumns, pos, model.LeftoverVisibleColumns)
	} else {
		selStart := conv.ValidateViewRange(viewState.SelectionStart, model.SelectionStart)
		pos := conv.ValidateViewPosition(viewState.Position, model.Position)
		view = NewSingleCursorState(selStart, model.SelectionStartKind, model.SelectionStartLeftoverVisibleColumns, pos, model.LeftoverVisibleColumns)
	}

	c.modelState = model
	c.viewState = view
	c.updateTrackedRange(ctx)
}
