package textmodel

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
)

// BlockType is the kind of content block a line belongs to.
type BlockType uint8

const (
	// BlockParagraph is plain text.
	BlockParagraph BlockType = iota
	// BlockTodo is a checklist item.
	BlockTodo
	// BlockBulletedList is an unordered list item.
	BlockBulletedList
)

// String returns the block type name.
func (b BlockType) String() string {
	switch b {
	case BlockParagraph:
		return "paragraph"
	case BlockTodo:
		return "todo"
	case BlockBulletedList:
		return "bulletedList"
	default:
		return "unknown"
	}
}

// MarkType is an inline formatting mark.
type MarkType uint8

const (
	MarkBold MarkType = iota + 1
	MarkItalic
	MarkCode
	MarkStrikethrough
)

// String returns the mark name.
func (m MarkType) String() string {
	switch m {
	case MarkBold:
		return "bold"
	case MarkItalic:
		return "italic"
	case MarkCode:
		return "code"
	case MarkStrikethrough:
		return "strikethrough"
	default:
		return "unknown"
	}
}

// Stickiness controls how a tracked range grows when text is inserted
// exactly at one of its edges.
type Stickiness uint8

const (
	AlwaysGrowsWhenTypingAtEdges Stickiness = iota
	NeverGrowsWhenTypingAtEdges
	GrowsOnlyWhenTypingBefore
	GrowsOnlyWhenTypingAfter
)

// OperationID ties an edit operation to the command and cursor that
// produced it. Major identifies the cursor, Minor orders operations of the
// same cursor.
type OperationID struct {
	Major int
	Minor int
}

// EditOperation replaces the text in Range with Text.
type EditOperation struct {
	// Identifier is carried through to the matching inverse operation.
	Identifier OperationID

	// Range is the model range to replace. An empty range inserts.
	Range textpos.Range

	// Text is the replacement. "\r\n" and "\r" are normalized to "\n".
	Text string

	// ForceMoveMarkers pushes every tracked range edge sitting at the edit
	// position past the inserted text.
	ForceMoveMarkers bool

	// LineBlocks optionally assigns block types to the second and following
	// lines of Text. Lines without an entry become paragraphs.
	LineBlocks []BlockType
}

// InverseEditOperation undoes one EditOperation. Range is where the new
// text ended up after the whole batch was applied; Text is the text it
// replaced.
type InverseEditOperation struct {
	Identifier OperationID
	Range      textpos.Range
	Text       string
	LineBlocks []BlockType
}

// CursorStateComputer receives the inverse operations of a batch, in the
// order the operations were given, and returns the selections to restore.
type CursorStateComputer func(inverse []InverseEditOperation) []textpos.Selection

// Mark is an inline formatting mark over a model range.
type Mark struct {
	ID    string
	Type  MarkType
	Range textpos.Range
}
