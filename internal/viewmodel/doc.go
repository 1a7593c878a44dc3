// Package viewmodel projects a text model onto wrapped view lines.
//
// Lines holds one projection per model line and a prefix-sum index of their
// view line counts. It is updated incrementally from the model's raw
// change notifications and answers queries in view coordinates.
// CoordinatesConverter converts positions and ranges between the model and
// the view.
//
// ViewModel ties Lines to a textmodel.Model: it subscribes to the model's
// content, decoration and block type events, turns them into ViewEvents
// and then notifies the attached CursorObserver.
//
// Every change notification carries the model version it describes.
// Notifications that are not newer than the last accepted version are
// ignored, so a flush that already rebuilt the lines from a newer model is
// never undone by late events.
package viewmodel
