package cartstore

import (
	"context"
	"sync"

	"molove/internal/models"
)

// MemoryStore is an in-memory Store used in tests and when Redis is not
// configured. A single process restart loses its contents, matching the
// best-effort nature of device-local state.
type MemoryStore struct {
	mu     sync.RWMutex
	carts  map[string]models.Cart
	orders map[string][]models.Order
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:  make(map[string]models.Cart),
		orders: make(map[string][]models.Order),
	}
}

// LoadCart returns the saved cart for a device or ErrNotFound.
func (s *MemoryStore) LoadCart(_ context.Context, deviceID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[deviceID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	return cart, nil
}

// SaveCart overwrites the whole cart for a device.
func (s *MemoryStore) SaveCart(_ context.Context, deviceID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[deviceID] = cart
	return nil
}

// ClearCart removes the device's cart.
func (s *MemoryStore) ClearCart(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, deviceID)
	return nil
}

// AppendOrder prepends an order to the device's history (newest first).
func (s *MemoryStore) AppendOrder(_ context.Context, deviceID string, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[deviceID] = append([]models.Order{order}, s.orders[deviceID]...)
	return nil
}

// Orders returns the device's full order history, newest first.
func (s *MemoryStore) Orders(_ context.Context, deviceID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]models.Order, len(s.orders[deviceID]))
	copy(history, s.orders[deviceID])
	return history, nil
}
