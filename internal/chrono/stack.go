// Package chrono measures nested wall-clock scopes.
package chrono

import (
	"errors"
	"time"
)

// ErrEmptyStack is returned by Stop when no scope is open.
var ErrEmptyStack = errors.New("chrono: stop without matching start")

// Stack holds the start times of open timing scopes. Scopes nest: Stop always
// closes the most recent Start. A Stack is not safe for concurrent use.
type Stack struct {
	starts []time.Time
	now    func() time.Time
}

// Option configures a Stack.
type Option func(*Stack)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Stack) {
		s.now = now
	}
}

// NewStack returns an empty stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a scope at the current time.
func (s *Stack) Start() {
	s.starts = append(s.starts, s.now())
}

// Stop closes the most recent scope and returns the time elapsed since it was opened.
func (s *Stack) Stop() (time.Duration, error) {
	n := len(s.starts)
	if n == 0 {
		return 0, ErrEmptyStack
	}
	start := s.starts[n-1]
	s.starts = s.starts[:n-1]
	return s.now().Sub(start), nil
}

// MustStop is Stop for callers that guarantee pairing; an unmatched call panics.
func (s *Stack) MustStop() time.Duration {
	d, err := s.Stop()
	if err != nil {
		panic(err)
	}
	return d
}

// Depth reports how many scopes are open.
func (s *Stack) Depth() int {
	return len(s.starts)
}
