package controller

import (
	"slices"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// autoClosedAction remembers the closing characters inserted by one
// auto-closing batch. While every cursor stays inside its pair, typing the
// closing character moves over it and deleting the opening one removes
// both.
type autoClosedAction struct {
	model     *textmodel.Model
	closeIDs  []string
	enclosing []string
}

func (a *autoClosedAction) dispose() {
	for _, id := range a.closeIDs {
		a.model.RemoveTrackedRange(id)
	}
	for _, id := range a.enclosing {
		a.model.RemoveTrackedRange(id)
	}
	a.closeIDs, a.enclosing = nil, nil
}

func (a *autoClosedAction) closeRanges() []textpos.Range {
	out := make([]textpos.Range, 0, len(a.closeIDs))
	for _, id := range a.closeIDs {
		if r, ok := a.model.TrackedRange(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// isValid reports whether every selection is still strictly inside its
// pair and no pair spans lines.
func (a *autoClosedAction) isValid(sels []textpos.Selection) bool {
	var enclosing []textpos.Range
	for _, id := range a.enclosing {
		r, ok := a.model.TrackedRange(id)
		if !ok {
			continue
		}
		if !r.IsSingleLine() {
			return false
		}
		enclosing = append(enclosing, r)
	}

	ranges := make([]textpos.Range, len(sels))
	for i, s := range sels {
		ranges[i] = s.Range()
	}
	slices.SortFunc(enclosing, textpos.CompareRangesUsingStarts)
	slices.SortFunc(ranges, textpos.CompareRangesUsingStarts)

	for i, r := range ranges {
		if i >= len(enclosing) || !enclosing[i].StrictContainsRange(r) {
			return false
		}
	}
	return true
}

// recordAutoClosedActions tracks the pairs inserted by the auto-closing
// commands of the last batch. Commands of dropped cursors are skipped.
func (c *Controller) recordAutoClosedActions(cmds []command.Command, losers []int) {
	a := &autoClosedAction{model: c.model}
	for i, cmd := range cmds {
		ac, ok := cmd.(*autoClosingCommand)
		if !ok || ac.closeRange == nil || slices.Contains(losers, i) {
			continue
		}
		a.closeIDs = append(a.closeIDs, c.model.AddTrackedRange(*ac.closeRange, textmodel.NeverGrowsWhenTypingAtEdges))
		a.enclosing = append(a.enclosing, c.model.AddTrackedRange(*ac.enclosingRange, textmodel.NeverGrowsWhenTypingAtEdges))
	}
	if len(a.closeIDs) > 0 {
		c.autoClosedActions = append(c.autoClosedActions, a)
	}
}

// validateAutoClosedActions drops the actions the cursors have left.
func (c *Controller) validateAutoClosedActions() {
	if len(c.autoClosedActions) == 0 {
		return
	}
	sels := c.Selections()
	kept := c.autoClosedActions[:0]
	for _, a := range c.autoClosedActions {
		if a.isValid(sels) {
			kept = append(kept, a)
			continue
		}
		a.dispose()
	}
	clear(c.autoClosedActions[len(kept):])
	c.autoClosedActions = kept
}

func (c *Controller) disposeAutoClosedActions() {
	for _, a := range c.autoClosedActions {
		a.dispose()
	}
	c.autoClosedActions = nil
}

// autoClosedCharacters returns the current ranges of every tracked closing
// character.
func (c *Controller) autoClosedCharacters() []textpos.Range {
	var out []textpos.Range
	for _, a := range c.autoClosedActions {
		out = append(out, a.closeRanges()...)
	}
	return out
}
