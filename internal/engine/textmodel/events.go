package textmodel

import "github.com/dshills/viewcore/internal/engine/textpos"

// ContentChange is one raw change inside a ContentChangedEvent.
// It is one of FlushChange, LineChange, LinesDeletedChange or
// LinesInsertedChange. Changes must be applied in order; line numbers in
// each change refer to the document after all previous changes.
type ContentChange interface {
	contentChange()
}

// FlushChange means the whole content was replaced.
type FlushChange struct{}

// LineChange means the content of one line changed.
type LineChange struct {
	LineNumber int
	// Detail is the new content of the line.
	Detail string
}

// LinesDeletedChange means lines [FromLineNumber, ToLineNumber] were removed.
type LinesDeletedChange struct {
	FromLineNumber int
	ToLineNumber   int
}

// LinesInsertedChange means lines [FromLineNumber, ToLineNumber] were
// inserted.
type LinesInsertedChange struct {
	FromLineNumber int
	ToLineNumber   int
	// Detail holds the content of each inserted line.
	Detail []string
}

func (FlushChange) contentChange()         {}
func (LineChange) contentChange()          {}
func (LinesDeletedChange) contentChange()  {}
func (LinesInsertedChange) contentChange() {}

// ContentChangedEvent is emitted once per applied edit batch.
type ContentChangedEvent struct {
	Changes   []ContentChange
	VersionID int
	IsUndo    bool
	IsRedo    bool
	IsFlush   bool

	// ResultingSelections are the selections an undo or redo restores.
	ResultingSelections []textpos.Selection
}

// ContainsFlush reports whether the event replaced the whole content.
func (e ContentChangedEvent) ContainsFlush() bool {
	for _, c := range e.Changes {
		if _, ok := c.(FlushChange); ok {
			return true
		}
	}
	return false
}

// DecorationsChangedEvent is emitted when marks are added or removed, or when
// an edit moved existing marks.
type DecorationsChangedEvent struct {
	AffectsMarks bool
}

// BlockTypeChangedEvent is emitted when a line changes block type.
type BlockTypeChangedEvent struct {
	LineNumber int
	Old        BlockType
	New        BlockType
}
