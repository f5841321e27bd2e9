// Package cart provides session-scoped shopping carts as a mono module.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shoe-catalog/domain/cart"
	catalogmod "github.com/example/shoe-catalog/modules/catalog"
	"github.com/google/uuid"
)

// ProductLookup resolves products for the cart.
type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*catalogmod.GetProductResponse, error)
}

// Service implements the cart rules on top of a Store.
type Service struct {
	store    *Store
	products ProductLookup
	now      func() time.Time
}

// NewService creates a cart service.
func NewService(store *Store, products ProductLookup) *Service {
	return &Service{
		store:    store,
		products: products,
		now:      time.Now,
	}
}

func sessionOrAnonymous(sessionID string) string {
	if sessionID == "" {
		return cart.AnonymousSession
	}
	return sessionID
}

// GetCart returns the session's cart.
func (s *Service) GetCart(sessionID string) cart.Cart {
	return s.store.Get(sessionOrAnonymous(sessionID))
}

// AddItem adds quantity units of a product in a size. A line with the same
// product and size is topped up instead of duplicated.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (cart.Cart, cart.Item, error) {
	if err := cart.ValidateAdd(req.Size, req.Quantity); err != nil {
		return cart.Cart{}, cart.Item{}, err
	}

	resp, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return cart.Cart{}, cart.Item{}, fmt.Errorf("failed to look up product %d: %w", req.ProductID, err)
	}
	if !resp.Found || resp.Product == nil {
		return cart.Cart{}, cart.Item{}, cart.ErrProductNotFound
	}
	p := resp.Product.Product
	if !p.HasSize(req.Size) {
		return cart.Cart{}, cart.Item{}, cart.ErrInvalidSize
	}
	if !p.InStock() {
		return cart.Cart{}, cart.Item{}, cart.ErrOutOfStock
	}

	var added cart.Item
	updated, err := s.store.Update(sessionOrAnonymous(req.SessionID), func(c *cart.Cart) error {
		for i := range c.Items {
			if c.Items[i].ProductID == p.ID && c.Items[i].Size == req.Size {
				c.Items[i].Quantity += req.Quantity
				added = c.Items[i]
				return nil
			}
		}
		added = cart.Item{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Size:      req.Size,
			Quantity:  req.Quantity,
			UnitPrice: p.Price,
			AddedAt:   s.now(),
		}
		c.Items = append(c.Items, added)
		return nil
	})
	if err != nil {
		return cart.Cart{}, cart.Item{}, err
	}
	return updated, added, nil
}

// UpdateItem sets the quantity of a line. Zero removes the line.
func (s *Service) UpdateItem(req UpdateItemRequest) (cart.Cart, error) {
	if req.Quantity < 0 {
		return cart.Cart{}, cart.ErrInvalidQuantity
	}
	if req.Quantity == 0 {
		return s.RemoveItem(RemoveItemRequest{SessionID: req.SessionID, ItemID: req.ItemID})
	}

	return s.store.Update(sessionOrAnonymous(req.SessionID), func(c *cart.Cart) error {
		for i := range c.Items {
			if c.Items[i].ID == req.ItemID {
				c.Items[i].Quantity = req.Quantity
				return nil
			}
		}
		return cart.ErrItemNotFound
	})
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(req RemoveItemRequest) (cart.Cart, error) {
	return s.store.Update(sessionOrAnonymous(req.SessionID), func(c *cart.Cart) error {
		for i := range c.Items {
			if c.Items[i].ID == req.ItemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return cart.ErrItemNotFound
	})
}
