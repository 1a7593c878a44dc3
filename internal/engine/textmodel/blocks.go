package textmodel

import (
	"fmt"

	"github.com/dshills/viewcore/internal/engine/history"
)

// BlockType returns the block type of a line.
// Out-of-range lines report BlockParagraph.
func (m *Model) BlockType(lineNumber int) BlockType {
	if lineNumber < 1 || lineNumber > len(m.blocks) {
		return BlockParagraph
	}
	return m.blocks[lineNumber-1]
}

// SetBlockType changes the block type of a line and records the change in
// the open undo element.
func (m *Model) SetBlockType(lineNumber int, bt BlockType) error {
	if lineNumber < 1 || lineNumber > len(m.blocks) {
		return fmt.Errorf("set block type on line %d: %w", lineNumber, ErrLineOutOfRange)
	}
	old := m.blocks[lineNumber-1]
	if old == bt {
		return nil
	}
	m.setBlockType(lineNumber, bt)

	if m.undoRedo == undoRedoNone {
		m.history.Push(history.StepFunc{
			Name:     "set block type " + bt.String(),
			UndoFunc: func() error { return m.setBlockTypeChecked(lineNumber, old) },
			RedoFunc: func() error { return m.setBlockTypeChecked(lineNumber, bt) },
		}, nil)
	}
	return nil
}

func (m *Model) setBlockTypeChecked(lineNumber int, bt BlockType) error {
	if lineNumber < 1 || lineNumber > len(m.blocks) {
		return fmt.Errorf("restore block type on line %d: %w", lineNumber, ErrLineOutOfRange)
	}
	m.setBlockType(lineNumber, bt)
	return nil
}

func (m *Model) setBlockType(lineNumber int, bt BlockType) {
	old := m.blocks[lineNumber-1]
	if old == bt {
		return
	}
	m.blocks[lineNumber-1] = bt
	m.blockTypeChanged.Emit(BlockTypeChangedEvent{LineNumber: lineNumber, Old: old, New: bt})
}
