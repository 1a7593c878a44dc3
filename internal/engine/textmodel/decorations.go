package textmodel

import (
	"fmt"
	"sort"

	"github.com/dshills/viewcore/internal/engine/history"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

type decorationKind uint8

const (
	kindTrackedRange decorationKind = iota
	kindMark
)

// decoration is a range stored as character offsets so edits can shift it
// without knowing about lines.
type decoration struct {
	id         string
	kind       decorationKind
	mark       MarkType
	start, end int
	stickiness Stickiness
}

func (m *Model) newDecorationID() string {
	m.nextDecorationID++
	return fmt.Sprintf("d%d", m.nextDecorationID)
}

func (m *Model) rangeOf(d *decoration) textpos.Range {
	return textpos.RangeFromPositions(m.PositionAt(d.start), m.PositionAt(d.end))
}

// AddTrackedRange starts tracking r across edits and returns its id.
// Tracked ranges are not part of the undo history.
func (m *Model) AddTrackedRange(r textpos.Range, stickiness Stickiness) string {
	r = m.ValidateRange(r)
	d := &decoration{
		id:         m.newDecorationID(),
		kind:       kindTrackedRange,
		start:      m.OffsetAt(r.Start()),
		end:        m.OffsetAt(r.End()),
		stickiness: stickiness,
	}
	m.decorations[d.id] = d
	return d.id
}

// SetTrackedRange moves an existing tracked range.
func (m *Model) SetTrackedRange(id string, r textpos.Range, stickiness Stickiness) error {
	d, ok := m.decorations[id]
	if !ok || d.kind != kindTrackedRange {
		return fmt.Errorf("tracked range %q: %w", id, ErrUnknownDecoration)
	}
	r = m.ValidateRange(r)
	d.start = m.OffsetAt(r.Start())
	d.end = m.OffsetAt(r.End())
	d.stickiness = stickiness
	return nil
}

// TrackedRange returns the current range of a tracked range.
func (m *Model) TrackedRange(id string) (textpos.Range, bool) {
	d, ok := m.decorations[id]
	if !ok || d.kind != kindTrackedRange {
		return textpos.Range{}, false
	}
	return m.rangeOf(d), true
}

// RemoveTrackedRange stops tracking a range. Unknown ids are ignored.
func (m *Model) RemoveTrackedRange(id string) {
	if d, ok := m.decorations[id]; ok && d.kind == kindTrackedRange {
		delete(m.decorations, id)
	}
}

// AddMark adds an inline mark over r. The change is recorded in the open
// undo element.
func (m *Model) AddMark(r textpos.Range, t MarkType) string {
	r = m.ValidateRange(r)
	d := &decoration{
		id:         m.newDecorationID(),
		kind:       kindMark,
		mark:       t,
		start:      m.OffsetAt(r.Start()),
		end:        m.OffsetAt(r.End()),
		stickiness: NeverGrowsWhenTypingAtEdges,
	}
	m.decorations[d.id] = d
	saved := *d

	if m.undoRedo == undoRedoNone {
		m.history.Push(history.StepFunc{
			Name: "add " + t.String() + " mark",
			UndoFunc: func() error {
				m.removeMark(saved.id)
				return nil
			},
			RedoFunc: func() error {
				restored := saved
				m.decorations[saved.id] = &restored
				m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
				return nil
			},
		}, nil)
	}
	m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
	return d.id
}

// RemoveMark deletes a mark. The change is recorded in the open undo element.
func (m *Model) RemoveMark(id string) error {
	d, ok := m.decorations[id]
	if !ok || d.kind != kindMark {
		return fmt.Errorf("mark %q: %w", id, ErrUnknownDecoration)
	}
	saved := *d
	m.removeMark(id)
	if m.undoRedo == undoRedoNone {
		m.history.Push(history.StepFunc{
			Name: "remove " + saved.mark.String() + " mark",
			UndoFunc: func() error {
				restored := saved
				m.decorations[saved.id] = &restored
				m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
				return nil
			},
			RedoFunc: func() error {
				m.removeMark(saved.id)
				return nil
			},
		}, nil)
	}
	return nil
}

func (m *Model) removeMark(id string) {
	if _, ok := m.decorations[id]; ok {
		delete(m.decorations, id)
		m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
	}
}

// Marks returns all marks ordered by start position.
func (m *Model) Marks() []Mark {
	return m.marksWhere(func(*decoration) bool { return true })
}

// MarksInLine returns the marks intersecting a line, ordered by start.
func (m *Model) MarksInLine(lineNumber int) []Mark {
	if lineNumber < 1 || lineNumber > len(m.lines) {
		return nil
	}
	lineStart := m.lineStarts.PrefixSum(lineNumber - 1)
	lineEnd := lineStart + m.LineLength(lineNumber)
	return m.marksWhere(func(d *decoration) bool {
		return d.start <= lineEnd && d.end >= lineStart && !(d.start == d.end)
	})
}

func (m *Model) marksWhere(keep func(*decoration) bool) []Mark {
	var out []Mark
	for _, d := range m.decorations {
		if d.kind != kindMark || !keep(d) {
			continue
		}
		out = append(out, Mark{ID: d.id, Type: d.mark, Range: m.rangeOf(d)})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := textpos.CompareRangesUsingStarts(out[i].Range, out[j].Range); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *Model) hasMarks() bool {
	for _, d := range m.decorations {
		if d.kind == kindMark {
			return true
		}
	}
	return false
}

// acceptEdit shifts every decoration through one replacement of the
// offsets [start, end) by textLen characters.
func (m *Model) acceptEdit(start, end, textLen int, forceMoveMarkers bool) {
	for _, d := range m.decorations {
		d.acceptEdit(start, end, textLen, forceMoveMarkers)
	}
}

type markerMove uint8

const (
	markerDefined markerMove = iota
	markerForceMove
	markerForceStay
)

// staysBefore reports whether a marker at offset stays on the left of an
// edit boundary at check.
func staysBefore(offset int, stickToPrevious bool, check int, move markerMove) bool {
	if offset < check {
		return true
	}
	if offset > check {
		return false
	}
	switch move {
	case markerForceMove:
		return false
	case markerForceStay:
		return true
	}
	return stickToPrevious
}

func (d *decoration) acceptEdit(start, end, textLen int, forceMoveMarkers bool) {
	startStick := d.stickiness == AlwaysGrowsWhenTypingAtEdges || d.stickiness == GrowsOnlyWhenTypingBefore
	endStick := d.stickiness == NeverGrowsWhenTypingAtEdges || d.stickiness == GrowsOnlyWhenTypingBefore

	deleting := end - start
	inserting := textLen
	common := min(deleting, inserting)

	nodeStart, nodeEnd := d.start, d.end
	startDone, endDone := false, false

	{
		move := markerDefined
		if forceMoveMarkers {
			move = markerForceMove
		} else if deleting > 0 {
			move = markerForceStay
		}
		if staysBefore(nodeStart, startStick, start, move) {
			startDone = true
		}
		if staysBefore(nodeEnd, endStick, start, move) {
			endDone = true
		}
	}

	if common > 0 && !forceMoveMarkers {
		move := markerDefined
		if deleting > inserting {
			move = markerForceStay
		}
		if !startDone && staysBefore(nodeStart, startStick, start+common, move) {
			startDone = true
		}
		if !endDone && staysBefore(nodeEnd, endStick, start+common, move) {
			endDone = true
		}
	}

	{
		move := markerDefined
		if forceMoveMarkers {
			move = markerForceMove
		}
		if !startDone && staysBefore(nodeStart, startStick, end, move) {
			d.start = start + inserting
			startDone = true
		}
		if !endDone && staysBefore(nodeEnd, endStick, end, move) {
			d.end = start + inserting
			endDone = true
		}
	}

	delta := inserting - deleting
	if !startDone {
		d.start = max(0, nodeStart+delta)
	}
	if !endDone {
		d.end = max(0, nodeEnd+delta)
	}
	if d.start > d.end {
		d.end = d.start
	}
}
