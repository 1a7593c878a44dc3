package textmodel

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/viewcore/internal/engine/history"
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// validOp is an edit operation with a validated range and split text.
type validOp struct {
	index            int
	identifier       OperationID
	rng              textpos.Range
	lines            []string
	text             string
	textLen          int // code points including terminators
	forceMoveMarkers bool
	lineBlocks       []BlockType
}

func (m *Model) validateOps(ops []EditOperation) ([]validOp, error) {
	valid := make([]validOp, len(ops))
	for i, op := range ops {
		lines := splitLines(op.Text)
		text := strings.Join(lines, "\n")
		valid[i] = validOp{
			index:            i,
			identifier:       op.Identifier,
			rng:              m.ValidateRange(op.Range),
			lines:            lines,
			text:             text,
			textLen:          utf8.RuneCountInString(text),
			forceMoveMarkers: op.ForceMoveMarkers,
			lineBlocks:       op.LineBlocks,
		}
	}

	sorted := make([]validOp, len(valid))
	copy(sorted, valid)
	sortAscending(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].rng.End().IsBefore(sorted[i].rng.Start()) || sorted[i-1].rng.End() == sorted[i].rng.Start() {
			continue
		}
		return nil, fmt.Errorf("%v and %v: %w", sorted[i-1].rng, sorted[i].rng, ErrEditsOverlap)
	}
	return valid, nil
}

func sortAscending(ops []validOp) {
	sort.SliceStable(ops, func(i, j int) bool {
		if c := textpos.CompareRangesUsingStarts(ops[i].rng, ops[j].rng); c != 0 {
			return c < 0
		}
		return ops[i].index < ops[j].index
	})
}

// PushEditOperations applies ops as one batch, records it in the open undo
// element and returns the selections produced by computer.
//
// Ops may be given in any order but must not overlap; touching ranges are
// allowed. The batch bumps the version once and emits one
// ContentChangedEvent. The inverse operations passed to computer are in the
// same order as ops.
func (m *Model) PushEditOperations(before []textpos.Selection, ops []EditOperation, computer CursorStateComputer) ([]textpos.Selection, error) {
	valid, err := m.validateOps(ops)
	if err != nil {
		return nil, err
	}

	var inverse []InverseEditOperation
	if len(valid) > 0 {
		inverse = m.applyEdits(valid)
		step := &editStep{model: m, forward: toEditOperations(valid), inverse: inverseToEditOperations(inverse)}
		if m.undoRedo == undoRedoNone {
			m.history.Push(step, before)
		}
	}

	if computer == nil {
		return nil, nil
	}
	selections := computer(inverse)
	if len(valid) > 0 && m.undoRedo == undoRedoNone {
		m.history.SetAfterSelections(selections)
	}
	return selections, nil
}

// ApplyEdits applies ops without touching the undo history and returns the
// inverse operations.
func (m *Model) ApplyEdits(ops []EditOperation) ([]InverseEditOperation, error) {
	valid, err := m.validateOps(ops)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return nil, nil
	}
	return m.applyEdits(valid), nil
}

// applyEdits mutates the model, emits one content event and returns the
// inverse operations in input order.
func (m *Model) applyEdits(ops []validOp) []InverseEditOperation {
	asc := make([]validOp, len(ops))
	copy(asc, ops)
	sortAscending(asc)

	// Old text and deleted line blocks must be captured before mutation.
	oldText := make([]string, len(asc))
	oldBlocks := make([][]BlockType, len(asc))
	for i, op := range asc {
		oldText[i] = m.ValueInRange(op.rng)
		if op.rng.EndLineNumber > op.rng.StartLineNumber {
			oldBlocks[i] = append([]BlockType(nil), m.blocks[op.rng.StartLineNumber:op.rng.EndLineNumber]...)
		}
	}

	var changes []ContentChange
	marksMoved := m.hasMarks()
	for i := len(asc) - 1; i >= 0; i-- {
		changes = append(changes, m.applyOne(asc[i])...)
	}

	// Inverse ranges in final coordinates, computed front to back.
	inverse := make([]InverseEditOperation, len(ops))
	var prev *validOp
	var prevResult textpos.Range
	for i := range asc {
		op := asc[i]
		startLine, startCol := op.rng.StartLineNumber, op.rng.StartColumn
		if prev != nil {
			if prev.rng.EndLineNumber == startLine {
				startCol = prevResult.EndColumn + (startCol - prev.rng.EndColumn)
			}
			startLine = prevResult.EndLineNumber + (startLine - prev.rng.EndLineNumber)
		}
		endLine := startLine + len(op.lines) - 1
		endCol := startCol + utf8.RuneCountInString(op.lines[0])
		if len(op.lines) > 1 {
			endCol = utf8.RuneCountInString(op.lines[len(op.lines)-1]) + 1
		}
		result := textpos.NewRange(startLine, startCol, endLine, endCol)
		inverse[op.index] = InverseEditOperation{
			Identifier: op.identifier,
			Range:      result,
			Text:       oldText[i],
			LineBlocks: oldBlocks[i],
		}
		prev = &asc[i]
		prevResult = result
	}

	m.versionID++
	m.contentChanged.Emit(ContentChangedEvent{
		Changes:   changes,
		VersionID: m.versionID,
		IsUndo:    m.undoRedo == undoRedoUndo,
		IsRedo:    m.undoRedo == undoRedoRedo,

		ResultingSelections: m.resulting,
	})
	if marksMoved {
		m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
	}
	return inverse
}

// applyOne applies a single validated operation and returns its raw changes.
func (m *Model) applyOne(op validOp) []ContentChange {
	r := op.rng
	startOffset := m.OffsetAt(r.Start())
	endOffset := m.OffsetAt(r.End())

	first := m.lines[r.StartLineNumber-1]
	last := m.lines[r.EndLineNumber-1]
	prefix := runeSlice(first, 1, r.StartColumn)
	suffix := runeSlice(last, r.EndColumn, -1)

	newLines := make([]string, len(op.lines))
	copy(newLines, op.lines)
	newLines[0] = prefix + newLines[0]
	newLines[len(newLines)-1] += suffix

	newBlocks := make([]BlockType, len(newLines))
	newBlocks[0] = m.blocks[r.StartLineNumber-1]
	for i := 1; i < len(newLines); i++ {
		if i-1 < len(op.lineBlocks) {
			newBlocks[i] = op.lineBlocks[i-1]
		}
	}

	lo, hi := r.StartLineNumber-1, r.EndLineNumber
	m.lines = splice(m.lines, lo, hi, newLines)
	m.blocks = splice(m.blocks, lo, hi, newBlocks)

	lengths := make([]int, len(newLines))
	for i, l := range newLines {
		lengths[i] = utf8.RuneCountInString(l) + 1
	}
	m.lineStarts.RemoveValues(lo, hi-lo)
	m.lineStarts.InsertValues(lo, lengths)

	m.acceptEdit(startOffset, endOffset, op.textLen, op.forceMoveMarkers)

	deleting := r.EndLineNumber - r.StartLineNumber
	inserting := len(newLines) - 1
	editing := min(deleting, inserting)

	var changes []ContentChange
	for i := 0; i <= editing; i++ {
		line := r.StartLineNumber + i
		changes = append(changes, LineChange{LineNumber: line, Detail: m.lines[line-1]})
	}
	if editing < deleting {
		changes = append(changes, LinesDeletedChange{
			FromLineNumber: r.StartLineNumber + editing + 1,
			ToLineNumber:   r.EndLineNumber,
		})
	}
	if editing < inserting {
		detail := make([]string, inserting-editing)
		copy(detail, newLines[editing+1:])
		changes = append(changes, LinesInsertedChange{
			FromLineNumber: r.StartLineNumber + editing + 1,
			ToLineNumber:   r.StartLineNumber + inserting,
			Detail:         detail,
		})
	}
	return changes
}

func splice[T any](s []T, lo, hi int, repl []T) []T {
	out := make([]T, 0, len(s)-(hi-lo)+len(repl))
	out = append(out, s[:lo]...)
	out = append(out, repl...)
	out = append(out, s[hi:]...)
	return out
}

func toEditOperations(ops []validOp) []EditOperation {
	out := make([]EditOperation, len(ops))
	for i, op := range ops {
		out[i] = EditOperation{
			Identifier:       op.identifier,
			Range:            op.rng,
			Text:             op.text,
			ForceMoveMarkers: op.forceMoveMarkers,
			LineBlocks:       op.lineBlocks,
		}
	}
	return out
}

func inverseToEditOperations(inv []InverseEditOperation) []EditOperation {
	out := make([]EditOperation, len(inv))
	for i, op := range inv {
		out[i] = EditOperation{
			Identifier: op.Identifier,
			Range:      op.Range,
			Text:       op.Text,
			LineBlocks: op.LineBlocks,
		}
	}
	return out
}

// editStep is the history record of one applied batch.
type editStep struct {
	model   *Model
	forward []EditOperation
	inverse []EditOperation
}

func (s *editStep) Undo() error {
	inv, err := s.model.ApplyEdits(s.inverse)
	if err != nil {
		return err
	}
	s.forward = inverseToEditOperations(inv)
	return nil
}

func (s *editStep) Redo() error {
	inv, err := s.model.ApplyEdits(s.forward)
	if err != nil {
		return err
	}
	s.inverse = inverseToEditOperations(inv)
	return nil
}

func (s *editStep) Description() string {
	return fmt.Sprintf("edit (%d operations)", len(s.forward))
}

var _ history.Step = (*editStep)(nil)
