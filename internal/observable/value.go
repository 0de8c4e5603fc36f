// Package observable provides a single-slot value holder that notifies
// registered observers synchronously whenever the held value changes.
package observable

import (
	"sync"
	"sync/atomic"
)

// Observer receives every value published by a Value.
type Observer[T any] func(T)

type subscription[T any] struct {
	fn     Observer[T]
	active atomic.Bool
}

// Value holds the current value and an ordered list of observers.
//
// Set and Subscribe are serialised, so observers see values in the order they
// were set. Observers run on the caller's goroutine and must not call Set or
// Subscribe on the same Value; Get and the unsubscribe func are safe to call
// from an observer.
type Value[T any] struct {
	deliver sync.Mutex

	mu      sync.RWMutex
	current T
	subs    []*subscription[T]
}

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies every observer before returning.
func (v *Value[T]) Set(val T) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	v.current = val
	subs := make([]*subscription[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		if s.active.Load() {
			s.fn(val)
		}
	}
}

// Subscribe registers fn, calls it immediately with the current value, and
// returns a func that stops further notifications. The returned func is
// idempotent.
func (v *Value[T]) Subscribe(fn Observer[T]) func() {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	s := &subscription[T]{fn: fn}
	s.active.Store(true)

	v.mu.Lock()
	v.subs = append(v.subs, s)
	current := v.current
	v.mu.Unlock()

	fn(current)

	return func() { v.unsubscribe(s) }
}

func (v *Value[T]) unsubscribe(s *subscription[T]) {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, sub := range v.subs {
		if sub == s {
			v.subs = append(v.subs[:i], v.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of registered observers.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}
