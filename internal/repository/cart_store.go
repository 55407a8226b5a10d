package repository

import (
	"errors"
	"sync"

	"github.com/mesaesabores/mesa-backend/internal/cart"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStore keeps the active session carts in memory. A cart lives for
// the duration of its customer session; checkout removes it. Each cart
// itself is single-owner, the store only guards the map.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

// NewCartStore creates an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*cart.Cart),
	}
}

// Put registers a cart under its id.
func (s *CartStore) Put(c *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.ID] = c
}

// Get returns the session cart or ErrCartNotFound.
func (s *CartStore) Get(id string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Delete ends a cart session. Deleting an unknown id is a no-op.
func (s *CartStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}
