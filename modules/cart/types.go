package cart

import (
	"context"

	"github.com/example/shoe-catalog/domain/cart"
)

// GetCartRequest is the request for a session's cart.
type GetCartRequest struct {
	SessionID string `json:"session_id"`
}

// AddItemRequest is the request for adding a product to a cart.
type AddItemRequest struct {
	SessionID string `json:"session_id"`
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest changes the quantity of a cart line. Zero removes it.
type UpdateItemRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest is the request for removing a cart line.
type RemoveItemRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
}

// CartResponse carries a cart and its totals. Rejected requests set
// ErrorCode and Message instead.
type CartResponse struct {
	Cart      cart.Cart `json:"cart"`
	ItemCount int       `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	ErrorCode string    `json:"error_code,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// CartPort defines the cart operations available to other modules.
// Rejections come back as the cart package's sentinel errors.
type CartPort interface {
	GetCart(ctx context.Context, sessionID string) (*CartResponse, error)
	AddItem(ctx context.Context, req *AddItemRequest) (*CartResponse, error)
	UpdateItem(ctx context.Context, req *UpdateItemRequest) (*CartResponse, error)
	RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartResponse, error)
}

func toCartResponse(c cart.Cart) CartResponse {
	return CartResponse{
		Cart:      c,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}
