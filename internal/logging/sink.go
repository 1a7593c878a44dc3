package logging

import (
	"errors"
	"fmt"
)

// ErrPanic wraps values recovered from a panic before they are reported.
var ErrPanic = errors.New("recovered panic")

// ErrorSink receives failures that must not reach the caller: a command
// that failed to produce edits, an edit callback that panicked. Each report
// is logged at error level and counted.
type ErrorSink struct {
	log    Logger
	count  int
	last   error
	notify func(error)
}

// NewErrorSink creates a sink logging to log. A nil log discards.
func NewErrorSink(log Logger) *ErrorSink {
	if log == nil {
		log = Discard()
	}
	return &ErrorSink{log: log}
}

// OnReport registers fn to be called with every reported error.
func (s *ErrorSink) OnReport(fn func(error)) {
	s.notify = fn
}

// ReportUnexpected logs and counts err. A nil error is ignored.
func (s *ErrorSink) ReportUnexpected(err error) {
	if err == nil {
		return
	}
	s.count++
	s.last = err
	s.log.Error("unexpected error", "error", err)
	if s.notify != nil {
		s.notify(err)
	}
}

// ReportPanic reports a value recovered from a panic.
func (s *ErrorSink) ReportPanic(v any) {
	if err, ok := v.(error); ok {
		s.ReportUnexpected(fmt.Errorf("%w: %w", ErrPanic, err))
		return
	}
	s.ReportUnexpected(fmt.Errorf("%w: %v", ErrPanic, v))
}

// Count returns how many errors were reported.
func (s *ErrorSink) Count() int {
	return s.count
}

// Last returns the most recently reported error.
func (s *ErrorSink) Last() error {
	return s.last
}
