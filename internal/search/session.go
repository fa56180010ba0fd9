package search

import (
	"context"
	"sync"
)

// Session owns the "one aggregation at a time" rule: starting a new search
// cancels whatever was in flight (the user clicked another state while the
// previous one was still loading).
type Session struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// Start cancels the previous aggregation, if any, and returns the context
// for the new one plus its generation number. The generation identifies the
// run: a superseded goroutine must compare generations, not query fields,
// before touching shared status (restarting the same state reuses the UF).
func (s *Session) Start(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.gen++
	return ctx, s.gen
}

// Cancel aborts the in-flight aggregation without starting a new one.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
