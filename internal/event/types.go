package event

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for the view model, which must see model changes
	// before anyone queries view coordinates.
	PriorityCritical Priority = 0

	// PriorityHigh is for cursor controllers.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for logging and diagnostics handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler receives events of one payload type.
type Handler[T any] func(e Event[T])

// FilterFunc is a predicate for filtering events.
// Return true to allow the event, false to filter it out.
type FilterFunc[T any] func(payload T) bool

// PanicHandler is called when a handler panics during delivery.
// The emitter keeps delivering to the remaining subscribers.
type PanicHandler func(source string, recovered any)
