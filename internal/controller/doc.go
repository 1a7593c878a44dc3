// Package controller implements the cursors controller: the state machine
// that owns the cursors of an editor and turns input into model edits.
//
// Every edit entry point (Type, CompositionType, Paste, DeleteLeft,
// ExecuteCommands and the rest) follows the same protocol:
//
//  1. snapshot the model version and cursor states
//  2. suspend selection tracking and build one command per cursor
//  3. apply all commands as one undo step through command.Executor
//  4. install the selections the commands computed
//  5. emit a viewmodel.ViewCursorStateChangedEvent, a reveal request for
//     the primary cursor and then a CursorStateChangedEvent, if anything
//     changed
//
// Failures inside commands are reported to the logging.ErrorSink and never
// returned. Nothing is rolled back; the document stays consistent and the
// cursors reflect whatever part of the edit completed.
//
// Typing groups into undo elements: consecutive characters form one
// element, deletes form another, and a typing run ends at the first
// non-typing edit. Auto-closed brackets and quotes are tracked until the
// cursor leaves them, so the closing character can be typed over. When
// markdown auto-format is enabled, the text before each caret is checked
// after every typed character for block ("[]", "- ") and inline ("**x**",
// "*x*", "`x`", "~x~") markup.
//
// A Controller is not safe for concurrent use.
package controller
