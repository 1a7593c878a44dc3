package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a delivered notification.
// Events are immutable once created.
type Event[T any] struct {
	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that emitted the event.
	Source string

	// Sequence is the per-emitter delivery counter, starting at 1.
	Sequence uint64
}

// NewEvent creates a new event with the given payload.
func NewEvent[T any](payload T, source string) Event[T] {
	return Event[T]{
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
