package presenter

import (
	"sync"

	"codeberg.org/capworks/portal/internal/logger"
)

// receives failed operations for presentation
type Forwarder interface {
	Forward(err error)
}

// buffered source of error events. forwarding never blocks.
type ErrorStream struct {
	events chan error

	mu           sync.Mutex
	accessDenied bool
}

func NewErrorStream(size int) *ErrorStream {
	if size <= 0 {
		size = 1
	}

	return &ErrorStream{
		events: make(chan error, size),
	}
}

func (s *ErrorStream) Forward(err error) {
	if err == nil {
		return
	}

	select {
	case s.events <- err:
	default:
		logger.Warn("error stream full, dropping error", "error", err)
	}
}

func (s *ErrorStream) Events() <-chan error {
	return s.events
}

// records that the user was turned away before the dispatcher attached
func (s *ErrorStream) FlagAccessDenied() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessDenied = true
}

// reports and clears the pending access-denied notice
func (s *ErrorStream) TakeAccessMessage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.accessDenied
	s.accessDenied = false

	return pending
}
