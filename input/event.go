// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package input routes input events to named controls and implements the
// typed delegate-list event primitive the engine's subscriptions build
// on.
package input

import "reflect"

// Listener is a subscribed callback. Two Listeners compare equal (for
// Unsubscribe) when they wrap the same function value.
type Listener[T any] func(T)

// Event is a typed list of subscriber closures with
// add/remove-by-identity semantics.
//
// Unsubscribe resolves the match and builds the replacement slice before
// ever discarding the old one: the element being removed is never
// referenced after the slice that held it is mutated.
type Event[T any] struct {
	listeners []Listener[T]
}

// Subscribe appends fn to the set of callbacks invoked by Fire.
func (e *Event[T]) Subscribe(fn Listener[T]) {
	e.listeners = append(e.listeners, fn)
}

// Unsubscribe removes one instance of fn, comparing by function identity
// (the underlying code pointer). It reports whether a match was found.
func (e *Event[T]) Unsubscribe(fn Listener[T]) bool {
	target := reflect.ValueOf(fn).Pointer()
	for i, l := range e.listeners {
		if reflect.ValueOf(l).Pointer() != target {
			continue
		}
		// Build the new slice first; only after i is no longer needed
		// do we drop the old backing array's reference to e.listeners[i].
		next := make([]Listener[T], 0, len(e.listeners)-1)
		next = append(next, e.listeners[:i]...)
		next = append(next, e.listeners[i+1:]...)
		e.listeners = next
		return true
	}
	return false
}

// Fire invokes every subscribed callback with arg, in subscription order.
func (e *Event[T]) Fire(arg T) {
	for _, l := range e.listeners {
		l(arg)
	}
}

// Len returns the number of subscribed callbacks.
func (e *Event[T]) Len() int { return len(e.listeners) }
