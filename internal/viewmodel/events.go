package viewmodel

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// ViewEvent is a notification about the view. It is one of the *Event types
// declared in this file.
type ViewEvent interface {
	viewEvent()
}

// ViewFlushedEvent means every view line must be re-read.
type ViewFlushedEvent struct{}

// ViewLinesChangedEvent means Count view lines starting at FromLineNumber
// have new content but kept their number.
type ViewLinesChangedEvent struct {
	FromLineNumber int
	Count          int
}

// ToLineNumber returns the last changed view line.
func (e ViewLinesChangedEvent) ToLineNumber() int {
	return e.FromLineNumber + e.Count - 1
}

// ViewLinesInsertedEvent means view lines [FromLineNumber, ToLineNumber]
// were inserted.
type ViewLinesInsertedEvent struct {
	FromLineNumber int
	ToLineNumber   int
}

// ViewLinesDeletedEvent means view lines [FromLineNumber, ToLineNumber]
// were removed.
type ViewLinesDeletedEvent struct {
	FromLineNumber int
	ToLineNumber   int
}

// ViewLineMappingChangedEvent means model-to-view coordinates changed
// without a content edit, for example after a wrapping change.
type ViewLineMappingChangedEvent struct{}

// ViewDecorationsChangedEvent means marks or block types changed.
type ViewDecorationsChangedEvent struct {
	// FromLineNumber and ToLineNumber bound the affected view lines.
	// Both are zero when every line may be affected.
	FromLineNumber int
	ToLineNumber   int
}

// CursorChangeReason explains why cursor state changed.
type CursorChangeReason uint8

const (
	ReasonNotSet CursorChangeReason = iota
	ReasonContentFlush
	ReasonRecoverFromMarkers
	ReasonExplicit
	ReasonPaste
	ReasonUndo
	ReasonRedo
)

// String returns the reason name.
func (r CursorChangeReason) String() string {
	switch r {
	case ReasonNotSet:
		return "notSet"
	case ReasonContentFlush:
		return "contentFlush"
	case ReasonRecoverFromMarkers:
		return "recoverFromMarkers"
	case ReasonExplicit:
		return "explicit"
	case ReasonPaste:
		return "paste"
	case ReasonUndo:
		return "undo"
	case ReasonRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// ViewCursorStateChangedEvent carries the new cursor selections in both
// coordinate spaces.
type ViewCursorStateChangedEvent struct {
	Selections      []textpos.Selection
	ModelSelections []textpos.Selection
	Reason          CursorChangeReason
}

// VerticalRevealType tells how a reveal request should scroll.
type VerticalRevealType uint8

const (
	RevealSimple VerticalRevealType = iota
	RevealCenter
	RevealTop
	RevealBottom
)

// ViewRevealRangeRequestEvent asks the renderer to bring a view range into
// view.
type ViewRevealRangeRequestEvent struct {
	Source       string
	Range        textpos.Range
	Selections   []textpos.Selection
	VerticalType VerticalRevealType
}

func (ViewFlushedEvent) viewEvent()            {}
func (ViewLinesChangedEvent) viewEvent()       {}
func (ViewLinesInsertedEvent) viewEvent()      {}
func (ViewLinesDeletedEvent) viewEvent()       {}
func (ViewLineMappingChangedEvent) viewEvent() {}
func (ViewDecorationsChangedEvent) viewEvent() {}
func (ViewCursorStateChangedEvent) viewEvent() {}
func (ViewRevealRangeRequestEvent) viewEvent() {}
