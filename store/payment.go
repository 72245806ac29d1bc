package store

import (
	"sync"

	"payment_simulator/model"
)

// PaymentStore holds settled payments. Only successful validations append
// here, so every stored record has status success.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*model.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]*model.Payment)}
}

func (s *PaymentStore) Put(payment *model.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.PaymentId] = payment
}

func (s *PaymentStore) Get(paymentId string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[paymentId]
	if !ok {
		return model.Payment{}, ErrNotFound
	}
	return *payment, nil
}

func (s *PaymentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}
