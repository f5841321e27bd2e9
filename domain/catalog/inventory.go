package catalog

import (
	"math"

	"github.com/example/shoe-catalog/domain/product"
)

// DefaultLowStockThreshold marks products with fewer units than this as low on stock.
const DefaultLowStockThreshold = 15

// Stats summarizes a product snapshot for the admin dashboard.
type Stats struct {
	TotalProducts int     `json:"total_products"`
	TotalStock    int     `json:"total_stock"`
	LowStock      int     `json:"low_stock"`
	AveragePrice  float64 `json:"average_price"`
}

// ComputeStats aggregates products. AveragePrice is rounded to a whole unit
// and is zero for an empty snapshot.
func ComputeStats(products []product.Product, lowStockThreshold int) Stats {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}

	stats := Stats{TotalProducts: len(products)}
	var priceSum float64
	for _, p := range products {
		stats.TotalStock += p.Stock
		if p.Stock < lowStockThreshold {
			stats.LowStock++
		}
		priceSum += p.Price
	}
	if len(products) > 0 {
		stats.AveragePrice = math.Round(priceSum / float64(len(products)))
	}
	return stats
}

// SearchInventory filters the admin product table: a product is kept when
// its name or brand contains term, ignoring case. Order is preserved.
func SearchInventory(products []product.Product, term string) []product.Product {
	result := make([]product.Product, 0, len(products))
	for _, p := range products {
		if containsFold(p.Name, term) || containsFold(p.Brand, term) {
			result = append(result, p)
		}
	}
	return result
}

// Brands returns the distinct brands in first-seen order.
func Brands(products []product.Product) []string {
	seen := make(map[string]struct{}, len(products))
	brands := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

// Find returns the product with the given ID.
func Find(products []product.Product, id uint) (product.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}
