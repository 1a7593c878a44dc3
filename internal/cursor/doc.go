// Package cursor holds cursor state and the pure operations that move it.
//
// Every cursor has a state in model coordinates and one in view
// coordinates. Either can be computed from the other through the view
// model's coordinates converter; Cursor.SetState keeps them in sync. A
// Collection owns all cursors of an editor, index 0 being the primary
// one, and merges cursors whose selections overlap.
//
// The move functions (MoveLeft, Line, Word, MoveDownByViewLines and the
// rest) never modify a cursor. They take states and return new partial
// states that the caller installs. Horizontal and vertical moves run in
// view space so they follow wrapped lines; word moves run in model space.
package cursor
