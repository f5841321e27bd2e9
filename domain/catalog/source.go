package catalog

import (
	"context"
	"slices"

	"github.com/example/shoe-catalog/domain/product"
)

// Source supplies the full product collection a query runs over.
type Source interface {
	Products(ctx context.Context) ([]product.Product, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]product.Product, error)

// Products calls f(ctx).
func (f SourceFunc) Products(ctx context.Context) ([]product.Product, error) {
	return f(ctx)
}

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	products []product.Product
}

// NewStaticSource creates a source over a copy of products.
func NewStaticSource(products []product.Product) *StaticSource {
	return &StaticSource{products: slices.Clone(products)}
}

// Products returns a copy of the catalog so callers cannot alter it.
func (s *StaticSource) Products(_ context.Context) ([]product.Product, error) {
	return slices.Clone(s.products), nil
}

// DefaultProducts is the demo catalog used when no backend is configured.
func DefaultProducts() []product.Product {
	const placeholder = "/placeholder.svg?height=200&width=200"
	return []product.Product{
		{
			ID: 1, Name: "Nike Air Max 270", Brand: "Nike", Category: "Running",
			Price: 150, OriginalPrice: 180, Stock: 25, Image: placeholder,
			Rating: 4.5, Reviews: 128,
			Images: []string{
				"/placeholder.svg?height=400&width=400",
				"/placeholder.svg?height=400&width=400",
				"/placeholder.svg?height=400&width=400",
				"/placeholder.svg?height=400&width=400",
			},
			Features: []string{
				"Nike's largest Air unit provides maximum cushioning",
				"Engineered mesh upper for breathability",
				"Rubber outsole with flex grooves for natural motion",
				"Pull tabs for easy on and off",
			},
			Description: "Visible cushioning under every step, with Nike's largest heel Air unit yet for a super-soft ride.",
		},
		{ID: 2, Name: "Adidas Ultraboost 22", Brand: "Adidas", Category: "Running", Price: 180, Stock: 15, Image: placeholder},
		{ID: 3, Name: "Converse Chuck 70", Brand: "Converse", Category: "Casual", Price: 85, Stock: 30, Image: placeholder},
		{ID: 4, Name: "Vans Old Skool", Brand: "Vans", Category: "Skate", Price: 60, Stock: 20, Image: placeholder},
		{ID: 5, Name: "Puma RS-X3", Brand: "Puma", Category: "Lifestyle", Price: 110, Stock: 12, Image: placeholder},
		{ID: 6, Name: "New Balance 990v5", Brand: "New Balance", Category: "Running", Price: 185, Stock: 8, Image: placeholder},
		{ID: 7, Name: "Nike Dunk Low", Brand: "Nike", Category: "Lifestyle", Price: 100, Stock: 18, Image: placeholder},
		{ID: 8, Name: "Adidas Stan Smith", Brand: "Adidas", Category: "Casual", Price: 80, Stock: 0, Image: placeholder},
	}
}
