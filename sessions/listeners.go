package sessions

import "sync"

type listenerEntry[T any] struct {
	id uint64
	fn T
}

// listeners is an ordered observer registry. Listeners run in subscription order.
type listeners[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listenerEntry[T]
}

func (l *listeners[T]) add(fn T) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[T]{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	fns := make([]T, 0, len(l.entries))
	for _, e := range l.entries {
		fns = append(fns, e.fn)
	}
	return fns
}
