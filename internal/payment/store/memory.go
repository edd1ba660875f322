// Package store persists completed payment records.
package store

import (
	"context"
	"fmt"
	"sync"

	"paygate/internal/payment/models"
	"paygate/internal/sentinel"
)

// ErrNotFound is returned when a payment record is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores payment records in memory for the lifetime of the process.
// Records are keyed by identifier; there are no secondary indices, no
// eviction, and no capacity bound.
type InMemory struct {
	mu       sync.RWMutex
	payments map[string]*models.Payment
}

// NewInMemory creates an in-memory payment store.
func NewInMemory() *InMemory {
	return &InMemory{
		payments: make(map[string]*models.Payment),
	}
}

// Add atomically inserts the record if its identifier is not already taken.
// A nil record is a programming-contract violation and fails fast.
func (s *InMemory) Add(_ context.Context, p *models.Payment) error {
	if p == nil {
		return fmt.Errorf("payment record must not be nil: %w", sentinel.ErrInvalidInput)
	}
	if p.ID == "" {
		return fmt.Errorf("payment record must have an identifier: %w", sentinel.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[p.ID]; exists {
		return fmt.Errorf("payment identifier must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.payments[p.ID] = p
	return nil
}

// Get retrieves a payment record by its identifier. The empty identifier
// short-circuits to not-found without a lookup, so an accidental zero value
// can never match anything.
func (s *InMemory) Get(_ context.Context, id string) (*models.Payment, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.payments[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

// Count returns the total number of stored records.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments), nil
}
