// Package product provides the domain entity for catalog items.
package product

import (
	"slices"
	"time"
)

// DefaultSizes is the size run offered for every shoe in the catalog.
var DefaultSizes = []string{"7", "7.5", "8", "8.5", "9", "9.5", "10", "10.5", "11", "11.5", "12"}

// Product represents a shoe in the catalog.
type Product struct {
	ID            uint      `gorm:"primarykey" json:"id" yaml:"id"`
	Name          string    `gorm:"size:255;not null" json:"name" yaml:"name"`
	Brand         string    `gorm:"size:100;index" json:"brand" yaml:"brand"`
	Price         float64   `gorm:"not null" json:"price" yaml:"price"`
	OriginalPrice float64   `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	Category      string    `gorm:"size:100" json:"category" yaml:"category"`
	Stock         int       `gorm:"default:0" json:"stock" yaml:"stock"`
	Description   string    `gorm:"size:1000" json:"description,omitempty" yaml:"description,omitempty"`
	Image         string    `gorm:"size:255" json:"image,omitempty" yaml:"image,omitempty"`
	Images        []string  `gorm:"serializer:json" json:"images,omitempty" yaml:"images,omitempty"`
	Features      []string  `gorm:"serializer:json" json:"features,omitempty" yaml:"features,omitempty"`
	Rating        float64   `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews       int       `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Sizes returns the sizes a customer can pick for this product.
func (p Product) Sizes() []string {
	return slices.Clone(DefaultSizes)
}

// HasSize reports whether size belongs to the product's size run.
func (p Product) HasSize(size string) bool {
	return slices.Contains(DefaultSizes, size)
}

// Gallery returns the detail page images, falling back to the listing image.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return slices.Clone(p.Images)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return []string{}
}
