// Package store owns the live cart, wishlist and order history. Each store is
// an explicit object built by the composition root; transitions come from the
// pure functions in domain and persistence is attached as a subscriber.
package store

import (
	"context"
	"reflect"
	"sync"
)

// Listener observes a state change. It runs while the store's write lock is
// held, so listeners see changes in order and must not call back into the
// store that notified them.
type Listener[T any] func(ctx context.Context, state T)

type subscription[T any] struct {
	id int
	fn Listener[T]
}

type state[T any] struct {
	mu        sync.RWMutex
	value     T
	listeners []subscription[T]
	nextID    int
}

func (s *state[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// update applies transition and notifies listeners only when the state
// actually changed.
func (s *state[T]) update(ctx context.Context, transition func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := transition(s.value)
	if reflect.DeepEqual(next, s.value) {
		return s.value
	}
	s.value = next
	for _, l := range s.listeners {
		l.fn(ctx, s.value)
	}
	return s.value
}

func (s *state[T]) subscribe(fn Listener[T]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
