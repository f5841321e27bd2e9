// Package cart provides the shopping cart entities and validation rules.
package cart

import (
	"errors"
	"time"
)

// AnonymousSession owns the cart of requests that carry no session ID.
const AnonymousSession = "anonymous"

// Sentinel errors for cart operations.
var (
	// ErrSizeRequired is returned when an item is added without a size.
	ErrSizeRequired = errors.New("please select a size")

	// ErrInvalidSize is returned when the size is not offered for the product.
	ErrInvalidSize = errors.New("size not available for this product")

	// ErrInvalidQuantity is returned when quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrProductNotFound is returned when the product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock is returned when the product has no stock left.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrItemNotFound is returned when the cart has no item with the given ID.
	ErrItemNotFound = errors.New("cart item not found")
)

// Item is a single line in a cart.
type Item struct {
	ID        string    `json:"id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	AddedAt   time.Time `json:"added_at"`
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Cart holds the items of one session.
type Cart struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemCount returns the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ValidateAdd checks the user input of an add-to-cart request.
func ValidateAdd(size string, quantity int) error {
	if size == "" {
		return ErrSizeRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

var errorCodes = map[string]error{
	"size_required":     ErrSizeRequired,
	"invalid_size":      ErrInvalidSize,
	"invalid_quantity":  ErrInvalidQuantity,
	"product_not_found": ErrProductNotFound,
	"out_of_stock":      ErrOutOfStock,
	"item_not_found":    ErrItemNotFound,
}

// ErrorCode returns the wire code of a cart error, or "" if err is not one.
func ErrorCode(err error) string {
	for code, sentinel := range errorCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// ErrorFromCode is the inverse of ErrorCode. Unknown codes yield nil.
func ErrorFromCode(code string) error {
	return errorCodes[code]
}
