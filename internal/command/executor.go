package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/logging"
)

// ErrPrimaryCursorLost is returned when the edits of the primary cursor
// overlap the edits of another cursor. Nothing is applied in that case.
var ErrPrimaryCursorLost = errors.New("primary cursor edits overlap another cursor")

// Executor applies command batches. It is cheap and holds no batch state.
type Executor struct {
	log  logging.Logger
	sink *logging.ErrorSink
}

// NewExecutor creates an executor reporting failed commands to sink.
func NewExecutor(log logging.Logger, sink *logging.ErrorSink) *Executor {
	if log == nil {
		log = logging.Discard()
	}
	if sink == nil {
		sink = logging.NewErrorSink(log)
	}
	return &Executor{log: log, sink: sink}
}

// Result is the outcome of a batch.
type Result struct {
	// Selections holds one selection per surviving cursor, in cursor order.
	Selections []textpos.Selection

	// Losers lists, in ascending order, the cursors dropped because their
	// edits overlapped the edits of a cursor with a lower index.
	Losers []int
}

// Execute runs commands[i] for the cursor whose selection is before[i]. A
// nil command leaves its cursor alone. Cursors without operations get
// their selection from fallback, or keep their old selection when fallback
// is nil.
//
// The returned Result is nil when no command produced an operation.
func (e *Executor) Execute(model *textmodel.Model, before []textpos.Selection, commands []Command, fallback func(cursor int) textpos.Selection) (*Result, error) {
	b := &batch{model: model, directions: make(map[string]textpos.Direction)}
	defer b.dispose()

	var ops []textmodel.EditOperation
	tracked := false
	for i, cmd := range commands {
		if cmd == nil {
			continue
		}
		cmdOps, hadTracked := e.operationsOf(b, i, cmd)
		ops = append(ops, cmdOps...)
		tracked = tracked || hadTracked
	}
	if len(ops) == 0 {
		return nil, nil
	}

	losers := loserCursors(ops)
	if losers[0] {
		e.log.Warn("ignoring commands, primary cursor edits overlap", "operations", len(ops))
		return nil, ErrPrimaryCursorLost
	}
	if len(losers) > 0 {
		kept := ops[:0]
		for _, op := range ops {
			if !losers[op.Identifier.Major] {
				kept = append(kept, op)
			}
		}
		ops = kept
	}
	e.log.Debug("executing commands", "commands", len(commands), "operations", len(ops), "tracked", tracked, "losers", len(losers))

	selections, err := model.PushEditOperations(before, ops, func(inverse []textmodel.InverseEditOperation) []textpos.Selection {
		grouped := make([][]textmodel.InverseEditOperation, len(before))
		for _, op := range inverse {
			if op.Identifier.Major < len(grouped) {
				grouped[op.Identifier.Major] = append(grouped[op.Identifier.Major], op)
			}
		}
		out := make([]textpos.Selection, len(before))
		for i := range before {
			group := grouped[i]
			if len(group) == 0 || i >= len(commands) || commands[i] == nil {
				out[i] = before[i]
				if fallback != nil {
					out[i] = fallback(i)
				}
				continue
			}
			sort.SliceStable(group, func(a, b int) bool {
				return group[a].Identifier.Minor < group[b].Identifier.Minor
			})
			out[i] = e.cursorStateOf(model, commands[i], &helper{batch: b, inverse: group}, before[i])
		}
		return out
	})
	if err != nil {
		return nil, fmt.Errorf("push edit operations: %w", err)
	}
	if selections == nil {
		selections = append([]textpos.Selection(nil), before...)
	}

	res := &Result{}
	for i := range losers {
		res.Losers = append(res.Losers, i)
	}
	sort.Ints(res.Losers)
	for i := len(res.Losers) - 1; i >= 0; i-- {
		idx := res.Losers[i]
		if idx < len(selections) {
			selections = append(selections[:idx], selections[idx+1:]...)
		}
	}
	res.Selections = selections
	return res, nil
}

func (e *Executor) operationsOf(b *batch, major int, cmd Command) (ops []textmodel.EditOperation, tracked bool) {
	ob := &opBuilder{batch: b, major: major}
	defer func() {
		if r := recover(); r != nil {
			e.sink.ReportPanic(r)
			ops, tracked = nil, false
		}
	}()
	if err := cmd.GetEditOperations(b.model, ob); err != nil {
		e.sink.ReportUnexpected(fmt.Errorf("command %d: %w", major, err))
		return nil, false
	}
	return ob.ops, ob.tracked
}

func (e *Executor) cursorStateOf(model *textmodel.Model, cmd Command, h *helper, before textpos.Selection) (sel textpos.Selection) {
	defer func() {
		if r := recover(); r != nil {
			e.sink.ReportPanic(r)
			sel = before
		}
	}()
	return cmd.ComputeCursorState(model, h)
}

// loserCursors returns the cursors whose operations must be dropped so the
// remaining operations do not overlap. Of two overlapping cursors the one
// with the higher index loses.
func loserCursors(ops []textmodel.EditOperation) map[int]bool {
	sorted := append([]textmodel.EditOperation(nil), ops...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRangesUsingEnds(sorted[i].Range, sorted[j].Range) > 0
	})

	losers := make(map[int]bool)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if !prev.Range.Start().IsBefore(cur.Range.End()) {
			continue
		}
		loser := max(prev.Identifier.Major, cur.Identifier.Major)
		losers[loser] = true

		kept := sorted[:0]
		removedBefore := 0
		for j, op := range sorted {
			if op.Identifier.Major == loser {
				if j < i {
					removedBefore++
				}
				continue
			}
			kept = append(kept, op)
		}
		sorted = kept
		i -= removedBefore
		if i > 0 {
			i--
		}
	}
	return losers
}

func compareRangesUsingEnds(a, b textpos.Range) int {
	if c := a.End().Compare(b.End()); c != 0 {
		return c
	}
	return a.Start().Compare(b.Start())
}

// batch holds the tracked ranges registered while a batch runs.
type batch struct {
	model      *textmodel.Model
	directions map[string]textpos.Direction
}

func (b *batch) dispose() {
	for id := range b.directions {
		b.model.RemoveTrackedRange(id)
	}
}

type opBuilder struct {
	*batch
	major   int
	minor   int
	ops     []textmodel.EditOperation
	tracked bool
}

func (ob *opBuilder) add(r textpos.Range, text string, force bool) {
	if r.IsEmpty() && text == "" {
		return
	}
	ob.ops = append(ob.ops, textmodel.EditOperation{
		Identifier:       textmodel.OperationID{Major: ob.major, Minor: ob.minor},
		Range:            r,
		Text:             text,
		ForceMoveMarkers: force,
	})
	ob.minor++
}

func (ob *opBuilder) AddEditOperation(r textpos.Range, text string) {
	ob.add(r, text, false)
}

func (ob *opBuilder) AddTrackedEditOperation(r textpos.Range, text string) {
	ob.tracked = true
	ob.add(r, text, false)
}

func (ob *opBuilder) AddForcedEditOperation(r textpos.Range, text string) {
	ob.add(r, text, true)
}

func (ob *opBuilder) TrackSelection(sel textpos.Selection, trackPreviousOnEmpty *bool) string {
	r := sel.Range()
	stickiness := textmodel.NeverGrowsWhenTypingAtEdges
	if r.IsEmpty() {
		previous := r.StartColumn == ob.model.LineMaxColumn(r.StartLineNumber)
		if trackPreviousOnEmpty != nil {
			previous = *trackPreviousOnEmpty
		}
		stickiness = textmodel.GrowsOnlyWhenTypingAfter
		if previous {
			stickiness = textmodel.GrowsOnlyWhenTypingBefore
		}
	}
	id := ob.model.AddTrackedRange(r, stickiness)
	ob.directions[id] = sel.Direction()
	return id
}

type helper struct {
	*batch
	inverse []textmodel.InverseEditOperation
}

func (h *helper) InverseEditOperations() []textmodel.InverseEditOperation {
	return h.inverse
}

func (h *helper) TrackedSelection(id string) textpos.Selection {
	r, ok := h.model.TrackedRange(id)
	if !ok {
		return textpos.Selection{}
	}
	return textpos.SelectionFromRange(r, h.directions[id])
}
