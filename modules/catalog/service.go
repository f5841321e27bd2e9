// Package catalog exposes the catalog query engine as a mono module.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/shoe-catalog/datasource"
	domain "github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"github.com/example/shoe-catalog/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// Service runs catalog operations over a snapshot of the configured source.
// The snapshot is cached when a cache is available; queries always run fresh.
type Service struct {
	source    domain.Source
	cache     cache.SnapshotCache
	sfGroup   singleflight.Group
	threshold int
	logger    types.Logger
}

// NewService creates a catalog service. c may be nil.
func NewService(source domain.Source, c cache.SnapshotCache, lowStockThreshold int, logger types.Logger) *Service {
	return &Service{
		source:    source,
		cache:     c,
		threshold: lowStockThreshold,
		logger:    logger,
	}
}

// Snapshot returns the current product collection.
// Concurrent misses share one load from the source.
func (s *Service) Snapshot(ctx context.Context) ([]product.Product, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Load(ctx)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", "error", err)
		}
		if found {
			return cached, nil
		}
	}

	v, err, shared := s.sfGroup.Do(cache.SnapshotKey, func() (any, error) {
		products, err := s.source.Products(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Store(ctx, products); err != nil {
				s.logger.Warn("Catalog cache write failed", "error", err)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if shared {
		s.logger.Debug("Catalog load shared between concurrent callers")
	}

	return v.([]product.Product), nil
}

// Query runs the engine over the snapshot.
func (s *Service) Query(ctx context.Context, q domain.Query) ([]product.Product, []string, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	return domain.FilterAndSort(products, q), domain.Brands(products), nil
}

// Get looks a product up by ID. Sources that can fetch single products are
// asked directly when the snapshot does not have it.
func (s *Service) Get(ctx context.Context, id uint) (product.Product, bool, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return product.Product{}, false, err
	}
	if p, ok := domain.Find(products, id); ok {
		return p, true, nil
	}

	finder, ok := s.source.(datasource.Finder)
	if !ok {
		return product.Product{}, false, nil
	}
	p, err := finder.FindByID(ctx, id)
	if errors.Is(err, datasource.ErrNotFound) {
		return product.Product{}, false, nil
	}
	if err != nil {
		return product.Product{}, false, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return *p, true, nil
}

// Brands returns the distinct brands of the snapshot.
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Brands(products), nil
}

// Stats computes the admin dashboard figures. threshold <= 0 uses the
// service default.
func (s *Service) Stats(ctx context.Context, threshold int) (domain.Stats, int, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Stats{}, 0, err
	}
	if threshold <= 0 {
		threshold = s.threshold
	}
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	return domain.ComputeStats(products, threshold), threshold, nil
}

// Inventory filters the snapshot for the admin table.
func (s *Service) Inventory(ctx context.Context, term string) ([]product.Product, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SearchInventory(products, term), nil
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}
