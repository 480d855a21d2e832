package bus

import "sync"

// Event is a one-shot notification carried on a Stream. Implementations
// provide Describe for diagnostics, mirroring how controllers log what they
// emitted without formatting payloads themselves.
type Event interface {
	Describe() string
}

// Stream is a non-buffered fan-out channel for one-shot events. Only
// subscribers live at emit time see an event; there is no cache and no
// replay, which is exactly what separates it from State.
type Stream struct {
	mu   sync.Mutex
	subs []*streamSub
}

type streamSub struct {
	fn     func(Event)
	closed bool
}

// NewStream creates an empty event stream.
func NewStream() *Stream {
	return &Stream{}
}

// Emit fans ev out to the subscribers that are live right now, in
// subscription order, on the caller's goroutine. Emit never blocks waiting
// on a subscriber queue; delivery is a plain call.
func (s *Stream) Emit(ev Event) {
	s.mu.Lock()
	active := make([]*streamSub, 0, len(s.subs))
	for _, sub := range s.subs {
		if !sub.closed {
			active = append(active, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range active {
		sub.fn(ev)
	}
}

// Subscribe registers fn for future events. Nothing is replayed. The
// returned cancel removes the subscription and is safe to call twice.
func (s *Stream) Subscribe(fn func(Event)) (cancel func()) {
	sub := &streamSub{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub.closed = true
		kept := s.subs[:0]
		for _, existing := range s.subs {
			if !existing.closed {
				kept = append(kept, existing)
			}
		}
		s.subs = kept
	}
}
