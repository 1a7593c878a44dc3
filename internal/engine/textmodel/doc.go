// Package textmodel implements the line-based document consumed by the view
// model and the cursor engine.
//
// A Model stores its content as lines without terminators. Positions are
// 1-based and columns count code points. On top of the text the model keeps:
//
//   - a version id bumped once per applied edit batch
//   - tracked ranges that follow edits according to their Stickiness
//   - inline marks (bold, italic, code, strikethrough)
//   - a block type per line (paragraph, todo, bulleted list)
//   - an undo history of elements holding edits, mark and block changes
//
// # Editing
//
// All edits go through PushEditOperations (recorded in history) or
// ApplyEdits (not recorded). A batch is applied back to front so earlier
// ranges stay valid, then one ContentChangedEvent describes it as a sequence
// of raw line changes:
//
//	sel, err := m.PushEditOperations(before, []textmodel.EditOperation{
//	    {Range: textpos.NewRange(1, 1, 1, 1), Text: "hello "},
//	}, func(inv []textmodel.InverseEditOperation) []textpos.Selection {
//	    return []textpos.Selection{textpos.CollapsedSelection(inv[0].Range.End())}
//	})
//
// # Offsets
//
// Decorations are stored as character offsets where each line terminator
// counts as one character. OffsetAt and PositionAt convert between the two
// forms using a prefix-sum index over line lengths.
package textmodel
