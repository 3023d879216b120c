// Package clock provides the time source injected into every lexweb
// mutation. Each operation reads Now exactly once and reuses the value for
// the parent's last_modified and the child's date_added.
package clock

import (
	"sync"
	"time"
)

// Clock is the time capability consumed by internal/core.
type Clock interface {
	Now() time.Time
}

// Wall is a strictly monotonic wall clock.
//
// Each call returns a UTC time strictly after the previous one, even if the
// system clock stalls or steps backwards. Values carry no monotonic reading,
// so they compare equal to times read back from storage.
//
// Thread-safety: Wall is safe for concurrent use.
type Wall struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewWall creates a Wall backed by time.Now.
func NewWall() *Wall {
	return &Wall{now: time.Now}
}

// Now returns the current time, bumped by one nanosecond past the previous
// result when necessary.
func (w *Wall) Now() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.now().UTC()
	if !t.After(w.last) {
		t = w.last.Add(time.Nanosecond)
	}
	w.last = t
	return t
}

// Step is a deterministic clock for tests.
//
// The first call to Now returns the start time; each later call advances by
// the step. Set can move the clock anywhere, including backwards, to exercise
// the causality constraint.
type Step struct {
	mu    sync.Mutex
	start time.Time
	next  time.Time
	step  time.Duration
}

// NewStep creates a Step clock starting at start and advancing by step.
func NewStep(start time.Time, step time.Duration) *Step {
	start = start.UTC()
	return &Step{start: start, next: start, step: step}
}

// Now returns the current step value and advances the clock.
func (s *Step) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.next
	s.next = s.next.Add(s.step)
	return t
}

// Peek returns the value the next call to Now will return.
func (s *Step) Peek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Set moves the clock so the next call to Now returns t.
func (s *Step) Set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = t.UTC()
}

// Reset moves the clock back to its start time.
func (s *Step) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = s.start
}
