package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogQueriedEvent is emitted each time a catalog view is computed.
type CatalogQueriedEvent struct {
	Search      string    `json:"search"`
	Brand       string    `json:"brand"`
	Sort        string    `json:"sort"`
	ResultCount int       `json:"result_count"`
	QueriedAt   time.Time `json:"queried_at"`
}

// CatalogQueriedV1 is the typed event definition for catalog queries.
// Subject: events.catalog.v1.catalog-queried
var CatalogQueriedV1 = helper.EventDefinition[CatalogQueriedEvent](
	"catalog", "CatalogQueried", "v1",
)

// CartItemAddedEvent is emitted when a product is added to a cart.
type CartItemAddedEvent struct {
	SessionID string    `json:"session_id"`
	ProductID uint      `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartItemAddedV1 is the typed event definition for add-to-cart.
// Subject: events.cart.v1.cart-item-added
var CartItemAddedV1 = helper.EventDefinition[CartItemAddedEvent](
	"cart", "CartItemAdded", "v1",
)
