// Package datasource provides the catalog.Source implementations the
// storefront can read its products from.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for catalog files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported catalog file format")

// FileSource reads the catalog from a YAML or JSON file on every call.
type FileSource struct {
	path string
}

var _ catalog.Source = (*FileSource)(nil)

// NewFileSource creates a source for the file at path. The format is chosen
// by extension: .yaml, .yml or .json.
func NewFileSource(path string) (*FileSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return &FileSource{path: path}, nil
}

// Products reads and decodes the catalog file.
func (s *FileSource) Products(ctx context.Context) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return decodeCatalog(s.path, data)
}

// catalogDocument allows a file to wrap its list in a "products" key.
type catalogDocument struct {
	Products []product.Product `json:"products" yaml:"products"`
}

func decodeCatalog(path string, data []byte) ([]product.Product, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return []product.Product{}, nil
	}

	var (
		products []product.Product
		doc      catalogDocument
		err      error
	)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if strings.HasPrefix(trimmed, "[") {
			err = json.Unmarshal(data, &products)
		} else {
			err = json.Unmarshal(data, &doc)
			products = doc.Products
		}
	} else {
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "[") {
			err = yaml.Unmarshal(data, &products)
		} else {
			err = yaml.Unmarshal(data, &doc)
			products = doc.Products
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}
