package cart

import (
	"slices"
	"sync"
	"time"

	"github.com/example/shoe-catalog/domain/cart"
)

// Store keeps carts in memory, keyed by session ID.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*cart.Cart)}
}

// Get returns a copy of the session's cart. Unknown sessions get an empty cart.
func (s *Store) Get(sessionID string) cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return cart.Cart{SessionID: sessionID, Items: []cart.Item{}}
	}
	return snapshot(c)
}

// Update applies fn to the session's cart under the store lock and returns
// the resulting cart. Changes are discarded if fn fails.
func (s *Store) Update(sessionID string, fn func(c *cart.Cart) error) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.carts[sessionID]
	if !ok {
		current = &cart.Cart{SessionID: sessionID, Items: []cart.Item{}}
	}

	working := snapshot(current)
	if err := fn(&working); err != nil {
		return cart.Cart{}, err
	}
	working.UpdatedAt = time.Now()

	s.carts[sessionID] = &working
	return snapshot(&working), nil
}

// Sessions returns the number of sessions holding a cart.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

func snapshot(c *cart.Cart) cart.Cart {
	out := *c
	out.Items = slices.Clone(c.Items)
	if out.Items == nil {
		out.Items = []cart.Item{}
	}
	return out
}
