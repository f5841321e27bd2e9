package catalog

import (
	"context"

	domain "github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
)

// QueryRequest is the request for a filtered, sorted catalog view.
type QueryRequest struct {
	Search string `json:"search"`
	Brand  string `json:"brand"`
	Sort   string `json:"sort"`
}

// QueryResponse is the catalog view for a query.
type QueryResponse struct {
	Query    domain.Query      `json:"query"`
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
	Brands   []string          `json:"brands"`
}

// GetProductRequest is the request for a single product.
type GetProductRequest struct {
	ID uint `json:"id"`
}

// ProductDetail is a product with the data its detail page needs.
type ProductDetail struct {
	product.Product
	Sizes   []string `json:"sizes"`
	InStock bool     `json:"in_stock"`
}

// GetProductResponse is the response for a single product.
type GetProductResponse struct {
	Found   bool           `json:"found"`
	Product *ProductDetail `json:"product,omitempty"`
}

// BrandsRequest is the request for the brand list.
type BrandsRequest struct{}

// BrandsResponse lists the distinct brands of the catalog.
type BrandsResponse struct {
	Brands []string `json:"brands"`
}

// StatsRequest is the request for admin statistics. A zero threshold uses
// the configured one.
type StatsRequest struct {
	LowStockThreshold int `json:"low_stock_threshold,omitempty"`
}

// StatsResponse carries the admin dashboard figures.
type StatsResponse struct {
	domain.Stats
	LowStockThreshold int `json:"low_stock_threshold"`
}

// InventoryRequest is the request for the admin inventory table.
type InventoryRequest struct {
	Search string `json:"search"`
}

// InventoryResponse is the admin inventory table.
type InventoryResponse struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
}

// CatalogPort defines the catalog operations available to other modules.
type CatalogPort interface {
	Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error)
	GetProduct(ctx context.Context, id uint) (*GetProductResponse, error)
	Brands(ctx context.Context) (*BrandsResponse, error)
	Stats(ctx context.Context, req *StatsRequest) (*StatsResponse, error)
	Inventory(ctx context.Context, req *InventoryRequest) (*InventoryResponse, error)
}
