package store

import (
	"errors"
	"sync"

	"payment_simulator/model"
)

// ErrNotFound is the expected miss path: querying an order that was never
// created (or belongs to another simulator instance) is normal traffic.
var ErrNotFound = errors.New("record not found")

// OrderStore holds every order for the process lifetime. Nothing is ever
// deleted; a restart discards the whole map.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*model.Order)}
}

func (s *OrderStore) Put(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.OrderId] = order
}

// Get returns a snapshot copy so callers never observe a record while a
// concurrent settlement is mutating it.
func (s *OrderStore) Get(orderId string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderId]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	return *order, nil
}

// Update runs fn on the stored record under the write lock, making the
// read-check-mutate sequence of a settlement a single atomic step.
func (s *OrderStore) Update(orderId string, fn func(*model.Order) error) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderId]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	if err := fn(order); err != nil {
		return *order, err
	}
	return *order, nil
}

func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
