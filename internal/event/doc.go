// Package event provides typed, synchronous publish/subscribe for the editor
// core.
//
// Each notification category has its own Emitter[T]; there is no central bus
// and no topic strings. A component that produces events owns one emitter
// per category and exposes a Subscribe-style method. Consumers keep the
// returned Subscription and Cancel it when they are disposed.
//
// # Ordering
//
// Delivery is synchronous and happens on the emitting goroutine. Handlers run
// in priority order (lower first), then in subscription order:
//
//	model.OnDidChangeContent(viewModel.onModelChange, event.WithPriority(event.PriorityCritical))
//	model.OnDidChangeContent(logModelChange, event.WithPriority(event.PriorityLow))
//
// # Metadata
//
// Every delivered Event carries a uuid, a timestamp, the emitter's source name
// and a per-emitter sequence number.
//
// # Panics
//
// By default a panicking handler unwinds through Emit. Install a
// PanicHandler to isolate subscribers from each other.
package event
