package cart

import (
	"sync"

	"github.com/RR-LN/comercio-cart/internal/domain"
)

// Listener is called with the new snapshot after every change.
type Listener func(Snapshot)

// Store owns the cart of a single session. Mutations swap the whole snapshot
// under the lock; listeners run after the lock is released, in subscription order.
type Store struct {
	mu        sync.Mutex
	current   Snapshot
	listeners []Listener
}

func NewStore(initial Snapshot) *Store {
	return &Store{current: initial}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners[idx] = nil
	}
}

func (s *Store) AddItem(item domain.CartItem) Snapshot {
	return s.apply(func(cur Snapshot) Snapshot { return cur.AddItem(item) })
}

func (s *Store) UpdateQuantity(id string, quantity int) Snapshot {
	return s.apply(func(cur Snapshot) Snapshot { return cur.UpdateQuantity(id, quantity) })
}

func (s *Store) Upsert(item domain.CartItem) Snapshot {
	return s.apply(func(cur Snapshot) Snapshot { return cur.Upsert(item) })
}

func (s *Store) RemoveItem(id string) Snapshot {
	return s.apply(func(cur Snapshot) Snapshot { return cur.RemoveItem(id) })
}

func (s *Store) Clear() Snapshot {
	return s.apply(func(cur Snapshot) Snapshot { return cur.Clear() })
}

// Replace installs next as the current snapshot, e.g. after fetching the
// authoritative cart from the remote service.
func (s *Store) Replace(next Snapshot) Snapshot {
	return s.apply(func(Snapshot) Snapshot { return next })
}

func (s *Store) apply(fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	next := fn(s.current)
	s.current = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}

	return next
}
