package event

import "slices"

// Emitter delivers events of a single payload type to its subscribers,
// synchronously and in priority order. Subscribers with equal priority are
// called in subscription order.
//
// Emitter is not safe for concurrent use; it belongs to the goroutine that
// owns the component emitting through it.
type Emitter[T any] struct {
	source  string
	subs    []*subscription[T]
	seq     uint64
	onPanic PanicHandler
}

// NewEmitter creates an emitter stamping events with the given source.
func NewEmitter[T any](source string) *Emitter[T] {
	return &Emitter[T]{source: source}
}

// SetPanicHandler installs a handler for panics raised by subscribers.
// Without one, a panicking subscriber propagates the panic to Emit.
func (e *Emitter[T]) SetPanicHandler(h PanicHandler) {
	e.onPanic = h
}

// Subscribe registers h and returns a handle that can cancel it.
func (e *Emitter[T]) Subscribe(h Handler[T], opts ...SubscriptionOption) Subscription {
	return e.SubscribeFiltered(h, nil, opts...)
}

// SubscribeFiltered registers h for payloads accepted by filter.
func (e *Emitter[T]) SubscribeFiltered(h Handler[T], filter FilterFunc[T], opts ...SubscriptionOption) Subscription {
	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}
	s := &subscription[T]{
		handler: h,
		filter:  filter,
		config:  config,
		owner:   e,
	}

	// Insert after every subscriber with priority <= ours.
	i := len(e.subs)
	for i > 0 && e.subs[i-1].config.Priority > config.Priority {
		i--
	}
	e.subs = slices.Insert(slices.Clip(e.subs), i, s)
	return s
}

// HasSubscribers reports whether any subscription is attached.
func (e *Emitter[T]) HasSubscribers() bool {
	return len(e.subs) > 0
}

// Emit delivers payload to every active subscriber.
// Subscribers added during delivery do not see the current event.
func (e *Emitter[T]) Emit(payload T) {
	if len(e.subs) == 0 {
		return
	}
	e.seq++
	ev := NewEvent(payload, e.source)
	ev.Metadata.Sequence = e.seq

	// Work on a snapshot so Subscribe and Cancel are safe from handlers.
	subs := e.subs

	for _, s := range subs {
		if !s.shouldDeliver(payload) {
			continue
		}
		if s.config.Once {
			s.Cancel()
		}
		e.deliver(s, ev)
	}
}

func (e *Emitter[T]) deliver(s *subscription[T], ev Event[T]) {
	if e.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				e.onPanic(e.source, r)
			}
		}()
	}
	s.handler(ev)
}

func (e *Emitter[T]) remove(s *subscription[T]) {
	i := slices.Index(e.subs, s)
	if i < 0 {
		return
	}
	// Copy so a snapshot held by an in-flight Emit stays intact.
	next := make([]*subscription[T], 0, len(e.subs)-1)
	next = append(next, e.subs[:i]...)
	next = append(next, e.subs[i+1:]...)
	e.subs = next
}
