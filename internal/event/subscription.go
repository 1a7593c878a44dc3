package event

// Subscription is the handle returned by Subscribe. Owners keep it and
// Cancel it when they are disposed.
type Subscription interface {
	// Cancel detaches the handler. It is safe to call more than once and
	// from inside a handler.
	Cancel()

	// Active reports whether the handler still receives events.
	Active() bool
}

// SubscriptionConfig holds the per-subscription options.
type SubscriptionConfig struct {
	// Priority orders delivery; lower runs first.
	Priority Priority

	// Once cancels the subscription before its first delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the delivery priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithOnce delivers only the next event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

type subscription[T any] struct {
	handler   Handler[T]
	filter    FilterFunc[T]
	config    SubscriptionConfig
	cancelled bool
	owner     *Emitter[T]
}

func (s *subscription[T]) Active() bool {
	return !s.cancelled
}

func (s *subscription[T]) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	if s.owner != nil {
		s.owner.remove(s)
		s.owner = nil
	}
}

func (s *subscription[T]) shouldDeliver(payload T) bool {
	return !s.cancelled && (s.filter == nil || s.filter(payload))
}
