// Package memory implements an in-memory order store.
package memory

import (
	"context"
	"sync"

	"kopioutlet/pkg/order"
)

// Store provides an in-memory implementation of order.Store.
type Store struct {
	mu     sync.RWMutex
	orders map[string]order.Order
	coster order.Coster
}

// New creates a new in-memory store that prices orders with coster.
func New(coster order.Coster) *Store {
	return &Store{orders: make(map[string]order.Order), coster: coster}
}

// Create prices the order and stores it under its id, replacing any
// existing order with that id.
func (s *Store) Create(ctx context.Context, o order.Order) (order.Order, error) {
	o.Cost = s.coster.Cost(o.DrinkName, o.Additions)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = o
	return o, nil
}

// Get retrieves an order by id.
func (s *Store) Get(ctx context.Context, id string) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

// Update changes an unlocked order's drink and additions and reprices it.
// An empty drink name in upd keeps the current drink; additions are always
// replaced with upd's value.
func (s *Store) Update(ctx context.Context, id string, upd order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	if o.Locked {
		return order.Order{}, order.ErrLocked
	}
	if upd.DrinkName != "" {
		o.DrinkName = upd.DrinkName
	}
	o.Additions = upd.Additions
	o.Cost = s.coster.Cost(o.DrinkName, o.Additions)
	s.orders[id] = o
	return o, nil
}

// ListUnlocked returns all orders that have not been locked, in no
// particular iteration order.
func (s *Store) ListUnlocked(ctx context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if !o.Locked {
			out = append(out, o)
		}
	}
	return out, nil
}

// Lock marks the order locked and returns it. Already-locked orders are
// returned unchanged.
func (s *Store) Lock(ctx context.Context, id string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	o.Locked = true
	s.orders[id] = o
	return o, nil
}

// Remove deletes an order by id.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}
