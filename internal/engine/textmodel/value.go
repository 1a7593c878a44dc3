package textmodel

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/viewcore/internal/engine/textpos"
)

// SetValue replaces the whole content. It emits a flush, clears the undo
// history and drops all marks. Tracked ranges collapse to the document
// start.
func (m *Model) SetValue(text string) {
	m.setLines(splitLines(text))
	for id, d := range m.decorations {
		if d.kind == kindMark {
			delete(m.decorations, id)
			continue
		}
		d.start, d.end = 0, 0
	}
	m.history.Clear()
	m.versionID++
	m.contentChanged.Emit(ContentChangedEvent{
		Changes:   []ContentChange{FlushChange{}},
		VersionID: m.versionID,
		IsFlush:   true,
	})
	m.decorationsChanged.Emit(DecorationsChangedEvent{AffectsMarks: true})
}

// SyncValue brings the content to text using a line diff, so unchanged
// lines keep their decorations and block types and the change is a single
// undoable batch. It returns the computed operations, which are empty when
// the content already matches.
func (m *Model) SyncValue(text string, before []textpos.Selection) ([]EditOperation, error) {
	ops := LineDiff(strings.Join(m.lines, "\n"), strings.Join(splitLines(text), "\n"))
	if len(ops) == 0 {
		return nil, nil
	}
	if _, err := m.PushEditOperations(before, ops, nil); err != nil {
		return nil, err
	}
	return ops, nil
}

// LineDiff computes edit operations turning oldText into newText. Both
// texts must use "\n" terminators. Operations are expressed in oldText
// coordinates and never overlap.
func LineDiff(oldText, newText string) []EditOperation {
	if oldText == newText {
		return nil
	}
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var ops []EditOperation
	pos := textpos.NewPosition(1, 1)

	var (
		pending   bool
		start     textpos.Position
		insertion strings.Builder
	)
	flush := func() {
		if !pending {
			return
		}
		ops = append(ops, EditOperation{
			Identifier: OperationID{Minor: len(ops)},
			Range:      textpos.RangeFromPositions(start, pos),
			Text:       insertion.String(),
		})
		pending = false
		insertion.Reset()
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos = advance(pos, d.Text)
		case diffmatchpatch.DiffDelete:
			if !pending {
				pending, start = true, pos
			}
			pos = advance(pos, d.Text)
		case diffmatchpatch.DiffInsert:
			if !pending {
				pending, start = true, pos
			}
			insertion.WriteString(d.Text)
		}
	}
	flush()
	return ops
}

// advance moves pos past text.
func advance(pos textpos.Position, text string) textpos.Position {
	lines := strings.Count(text, "\n")
	if lines == 0 {
		return pos.Delta(0, utf8.RuneCountInString(text))
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return textpos.NewPosition(pos.LineNumber+lines, utf8.RuneCountInString(last)+1)
}
