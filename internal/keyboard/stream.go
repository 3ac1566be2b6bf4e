package keyboard

import (
	"sync"
	"sync/atomic"
)

// Listener receives key-down events from a Stream.
type Listener func(*Event)

type registration struct {
	id     uint64
	fn     Listener
	active atomic.Bool
}

// Stream fans key-down events out to registered listeners. It stands in for
// the browser window's keydown target: every widget mounted in the same
// window shares one Stream.
//
// Listeners run synchronously on the dispatching goroutine, in registration
// order. The internal lock is released before listeners run so a listener may
// add or remove registrations, including its own.
type Stream struct {
	mu     sync.Mutex
	nextID uint64
	regs   []*registration
}

// NewStream returns an empty stream.
func NewStream() *Stream {
	return &Stream{}
}

// Add registers l and returns the function that removes it. The returned
// function is idempotent and never waits on a running listener, so it is safe
// to call from inside one. Dispatches that start after it returns never see l.
// A dispatch already in flight on another goroutine skips l if it has not
// reached it yet, but one that has already passed the liveness check may still
// call l once. Listeners that must not run after removal guard their own state.
func (s *Stream) Add(l Listener) (remove func()) {
	s.mu.Lock()
	s.nextID++
	reg := &registration{id: s.nextID, fn: l}
	reg.active.Store(true)
	s.regs = append(s.regs, reg)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(reg) })
	}
}

func (s *Stream) remove(reg *registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg.active.Store(false)
	for i, r := range s.regs {
		if r.id == reg.id {
			s.regs = append(s.regs[:i:i], s.regs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to every listener registered at the time of the call.
func (s *Stream) Dispatch(e *Event) {
	if e == nil {
		return
	}
	s.mu.Lock()
	snapshot := make([]*registration, len(s.regs))
	copy(snapshot, s.regs)
	s.mu.Unlock()

	for _, reg := range snapshot {
		if !reg.active.Load() {
			continue
		}
		reg.fn(e)
	}
}

// Len returns the number of live listeners.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}
