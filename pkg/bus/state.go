// Package bus provides the in-process propagation primitives shared by the
// calendar, day-list, and search controllers. It keeps two deliberately
// distinct shapes: State, a last-value-wins channel that replays its latest
// value to new subscribers, and Stream, a fan-out-only channel for one-shot
// events that are never replayed. The two must not be conflated: replaying a
// navigation request to a late subscriber would re-fire it.
package bus

import "sync"

// State is a last-value-wins multicast value holder. A new subscriber
// immediately receives the most recently published value (if any), and every
// later publish is delivered to all live subscribers in subscription order.
// Delivery happens synchronously on the publisher's goroutine, which is what
// gives consecutive publishes from one publisher their FIFO guarantee.
type State[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
	subs  []*subscriber[T]
}

type subscriber[T any] struct {
	fn     func(T)
	closed bool
}

// NewState creates an empty state channel with no value published yet.
func NewState[T any]() *State[T] {
	return &State[T]{}
}

// NewStateOf creates a state channel seeded with an initial value, so the
// first subscriber observes it without waiting for a publish.
func NewStateOf[T any](initial T) *State[T] {
	s := &State[T]{}
	s.Publish(initial)
	return s
}

// Publish stores v as the latest value and fans it out to every live
// subscriber. The subscriber list is snapshotted under the lock and invoked
// outside it, so a handler may publish or subscribe without deadlocking.
func (s *State[T]) Publish(v T) {
	s.mu.Lock()
	s.value = v
	s.set = true
	active := s.activeLocked()
	s.mu.Unlock()

	for _, sub := range active {
		sub.fn(v)
	}
}

// Latest returns the most recently published value and whether any value has
// been published at all.
func (s *State[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Subscribe registers fn and immediately delivers the latest value when one
// exists. The returned cancel removes the subscription; it is idempotent.
func (s *State[T]) Subscribe(fn func(T)) (cancel func()) {
	sub := &subscriber[T]{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	value, set := s.value, s.set
	s.mu.Unlock()

	if set {
		fn(value)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub.closed = true
		s.compactLocked()
	}
}

func (s *State[T]) activeLocked() []*subscriber[T] {
	active := make([]*subscriber[T], 0, len(s.subs))
	for _, sub := range s.subs {
		if !sub.closed {
			active = append(active, sub)
		}
	}
	return active
}

func (s *State[T]) compactLocked() {
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if !sub.closed {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
}
