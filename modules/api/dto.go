package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SessionHeader carries the shopper's session ID.
const SessionHeader = "X-Session-ID"

// AddCartItemRequest is the HTTP request for adding a product to the cart.
// A missing quantity means one unit.
type AddCartItemRequest struct {
	ProductID ProductID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  *int      `json:"quantity,omitempty"`
}

// ProductID accepts a product identifier sent as a JSON number or as a
// numeric string ("7").
type ProductID uint

// UnmarshalJSON implements json.Unmarshaler.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	v, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid product_id %s: %w", data, err)
	}
	*id = ProductID(v)
	return nil
}

// UpdateCartItemRequest is the HTTP request for changing a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
