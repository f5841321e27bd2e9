// Package catalog implements the storefront query engine: search, brand
// filtering and ordering over a snapshot of products.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/example/shoe-catalog/domain/product"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllBrands is the brand selector that disables brand filtering.
const AllBrands = "all"

// SortKey selects the ordering of a query result.
type SortKey string

// Recognized sort keys.
const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
)

// ParseSortKey maps raw input to a SortKey. Anything unrecognized sorts by name.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortByName, SortByPriceLow, SortByPriceHigh:
		return k
	default:
		return SortByName
	}
}

// Query holds the parameters of a catalog view.
type Query struct {
	Search string  `json:"search"`
	Brand  string  `json:"brand"`
	Sort   SortKey `json:"sort"`
}

// NewQuery builds a Query from raw UI input. An empty brand selects all brands.
func NewQuery(search, brand, sort string) Query {
	if brand == "" {
		brand = AllBrands
	}
	return Query{
		Search: search,
		Brand:  brand,
		Sort:   ParseSortKey(sort),
	}
}

// Matches reports whether p passes the search and brand filters of q.
func (q Query) Matches(p product.Product) bool {
	if q.Brand != AllBrands && q.Brand != p.Brand {
		return false
	}
	return containsFold(p.Name, q.Search)
}

// FilterAndSort returns the products matching q in the order q asks for.
// The input slice is left untouched and products with equal sort keys keep
// their input order.
func FilterAndSort(products []product.Product, q Query) []product.Product {
	result := make([]product.Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			result = append(result, p)
		}
	}

	switch ParseSortKey(string(q.Sort)) {
	case SortByPriceLow:
		slices.SortStableFunc(result, func(a, b product.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortByPriceHigh:
		slices.SortStableFunc(result, func(a, b product.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		// Collators keep scratch buffers, so each call gets its own.
		col := collate.New(language.English)
		slices.SortStableFunc(result, func(a, b product.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	return result
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
