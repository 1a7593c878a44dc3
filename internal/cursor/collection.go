package cursor

import (
	"sort"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// Collection owns the cursors of an editor. Index 0 is the primary cursor.
type Collection struct {
	ctx     *Context
	cursors []*Cursor

	// lastAdded is the index of the most recently added secondary cursor,
	// 0 when there is none.
	lastAdded int
}

// NewCollection creates a collection with one cursor at (1,1).
func NewCollection(ctx *Context) *Collection {
	return &Collection{ctx: ctx, cursors: []*Cursor{NewCursor(ctx)}}
}

// Dispose releases the tracked ranges of all cursors.
func (cc *Collection) Dispose() {
	for _, c := range cc.cursors {
		c.Dispose(cc.ctx)
	}
	cc.cursors = nil
}

// UpdateContext switches to a new context, for example after a
// configuration change.
func (cc *Collection) UpdateContext(ctx *Context) {
	cc.ctx = ctx
}

// Context returns the current context.
func (cc *Collection) Context() *Context {
	return cc.ctx
}

// StartTrackingSelections resumes tracked range updates for every cursor.
func (cc *Collection) StartTrackingSelections() {
	for _, c := range cc.cursors {
		c.StartTrackingSelection(cc.ctx)
	}
}

// StopTrackingSelections freezes the tracked ranges of every cursor.
func (cc *Collection) StopTrackingSelections() {
	for _, c := range cc.cursors {
		c.StopTrackingSelection()
	}
}

// EnsureValidState re-validates every cursor.
func (cc *Collection) EnsureValidState() {
	for _, c := range cc.cursors {
		c.EnsureValidState(cc.ctx)
	}
}

// ReadSelectionFromMarkers returns the selections recorded by the tracked
// ranges.
func (cc *Collection) ReadSelectionFromMarkers() []textpos.Selection {
	out := make([]textpos.Selection, len(cc.cursors))
	for i, c := range cc.cursors {
		out[i] = c.ReadSelectionFromMarkers(cc.ctx)
	}
	return out
}

// Count returns the number of cursors.
func (cc *Collection) Count() int {
	return len(cc.cursors)
}

// All returns the full state of every cursor.
func (cc *Collection) All() []State {
	out := make([]State, len(cc.cursors))
	for i, c := range cc.cursors {
		out[i] = c.AsState()
	}
	return out
}

// Primary returns the state of the primary cursor.
func (cc *Collection) Primary() State {
	return cc.cursors[0].AsState()
}

// Selections returns the model selections.
func (cc *Collection) Selections() []textpos.Selection {
	out := make([]textpos.Selection, len(cc.cursors))
	for i, c := range cc.cursors {
		out[i] = c.modelState.Selection
	}
	return out
}

// ViewSelections returns the view selections.
func (cc *Collection) ViewSelections() []textpos.Selection {
	out := make([]textpos.Selection, len(cc.cursors))
	for i, c := range cc.cursors {
		out[i] = c.viewState.Selection
	}
	return out
}

// ViewPositions returns the view position of every cursor.
func (cc *Collection) ViewPositions() []textpos.Position {
	out := make([]textpos.Position, len(cc.cursors))
	for i, c := range cc.cursors {
		out[i] = c.viewState.Position
	}
	return out
}

// TopMostViewPosition returns the first view position in document order.
func (cc *Collection) TopMostViewPosition() textpos.Position {
	best := cc.cursors[0].viewState.Position
	for _, c := range cc.cursors[1:] {
		best = textpos.MinPosition(best, c.viewState.Position)
	}
	return best
}

// BottomMostViewPosition returns the last view position in document order.
func (cc *Collection) BottomMostViewPosition() textpos.Position {
	best := cc.cursors[0].viewState.Position
	for _, c := range cc.cursors[1:] {
		best = textpos.MaxPosition(best, c.viewState.Position)
	}
	return best
}

// SetSelections replaces every cursor with a simple selection.
func (cc *Collection) SetSelections(sels []textpos.Selection) {
	cc.SetStates(FromModelSelections(sels))
}

// SetStates replaces the cursor states. The first state goes to the
// primary cursor; cursors are added or removed to match the count. An
// empty list is ignored.
func (cc *Collection) SetStates(states []State) {
	if len(states) == 0 {
		return
	}
	cc.cursors[0].SetState(cc.ctx, states[0].ModelState, states[0].ViewState)
	cc.setSecondaryStates(states[1:])
}

func (cc *Collection) setSecondaryStates(states []State) {
	have := len(cc.cursors) - 1
	want := len(states)
	for have < want {
		cc.addSecondaryCursor()
		have++
	}
	for have > want {
		cc.removeSecondaryCursor(have - 1)
		have--
	}
	for i, s := range states {
		cc.cursors[i+1].SetState(cc.ctx, s.ModelState, s.ViewState)
	}
}

// KillSecondaryCursors removes all but the primary cursor.
func (cc *Collection) KillSecondaryCursors() {
	cc.setSecondaryStates(nil)
}

// LastAddedCursorIndex returns the index of the most recently added
// cursor, or 0.
func (cc *Collection) LastAddedCursorIndex() int {
	if len(cc.cursors) == 1 || cc.lastAdded == 0 {
		return 0
	}
	return cc.lastAdded
}

func (cc *Collection) addSecondaryCursor() {
	cc.cursors = append(cc.cursors, NewCursor(cc.ctx))
	cc.lastAdded = len(cc.cursors) - 1
}

// removeSecondaryCursor removes the secondary cursor at index i, where 0 is
// the first secondary cursor.
func (cc *Collection) removeSecondaryCursor(i int) {
	idx := i + 1
	if cc.lastAdded >= idx {
		cc.lastAdded--
	}
	cc.cursors[idx].Dispose(cc.ctx)
	cc.cursors = append(cc.cursors[:idx], cc.cursors[idx+1:]...)
}

type sortedCursor struct {
	index     int
	selection textpos.Selection
}

// Normalize merges cursors whose selections overlap. Collapsed cursors
// also merge when they touch another selection. The cursor with the lower
// index survives and keeps its place; its selection grows to cover both.
func (cc *Collection) Normalize() {
	if len(cc.cursors) == 1 || !cc.ctx.Config.MultiCursorMergeOverlapping {
		return
	}

	sorted := make([]sortedCursor, len(cc.cursors))
	for i, c := range cc.cursors {
		sorted[i] = sortedCursor{index: i, selection: c.modelState.Selection}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return textpos.CompareRangesUsingStarts(sorted[i].selection.Range(), sorted[j].selection.Range()) < 0
	})

	for si := 0; si < len(sorted)-1; si++ {
		current, next := sorted[si], sorted[si+1]
		cur, nxt := current.selection, next.selection

		var merge bool
		if nxt.IsEmpty() || cur.IsEmpty() {
			merge = nxt.Start().IsBeforeOrEqual(cur.End())
		} else {
			merge = nxt.Start().IsBefore(cur.End())
		}
		if !merge {
			continue
		}

		winnerSI, loserSI := si, si+1
		if current.index > next.index {
			winnerSI, loserSI = si+1, si
		}
		loserIndex := sorted[loserSI].index
		winnerIndex := sorted[winnerSI].index
		loserSel := sorted[loserSI].selection
		winnerSel := sorted[winnerSI].selection

		if !loserSel.Equals(winnerSel) {
			r := loserSel.Range().Union(winnerSel.Range())
			// The most recently added cursor decides the direction.
			dir := winnerSel.Direction()
			if loserIndex == cc.lastAdded {
				dir = loserSel.Direction()
				cc.lastAdded = winnerIndex
			}
			merged := textpos.SelectionFromRange(r, dir)
			sorted[winnerSI].selection = merged
			state := FromModelSelection(merged)
			cc.cursors[winnerIndex].SetState(cc.ctx, state.ModelState, state.ViewState)
		}

		for k := range sorted {
			if sorted[k].index > loserIndex {
				sorted[k].index--
			}
		}
		sorted = append(sorted[:loserSI], sorted[loserSI+1:]...)
		cc.removeSecondaryCursor(loserIndex - 1)
		si--
	}
}
