// Package cache keeps the catalog snapshot in Redis, exposed as a mono plugin.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/shoe-catalog/domain/product"
	"github.com/go-monolith/mono/pkg/storage"
	"github.com/go-monolith/mono/pkg/types"
)

// SnapshotKey is the key, relative to the plugin prefix, holding the catalog.
const SnapshotKey = "snapshot"

// SnapshotCache stores the full product collection the catalog serves from.
type SnapshotCache interface {
	// Load returns the cached snapshot and whether one was present.
	Load(ctx context.Context) ([]product.Product, bool, error)

	// Store replaces the cached snapshot. It expires after the plugin TTL.
	Store(ctx context.Context, products []product.Product) error

	// Invalidate drops the cached snapshot.
	Invalidate(ctx context.Context) error

	// Close closes the underlying storage connection.
	Close() error
}

// snapshotEntry is the stored form of a snapshot. Count guards against
// entries truncated on the way in or out of Redis.
type snapshotEntry struct {
	Products []product.Product `json:"products"`
	Count    int               `json:"count"`
	StoredAt time.Time         `json:"stored_at"`
}

type snapshotCache struct {
	storage storage.Storage
	key     string
	ttl     time.Duration
	logger  types.Logger
	now     func() time.Time
}

// NewSnapshotCache creates a SnapshotCache over s, keyed under prefix.
func NewSnapshotCache(s storage.Storage, prefix string, ttl time.Duration, logger types.Logger) SnapshotCache {
	return &snapshotCache{
		storage: s,
		key:     prefix + SnapshotKey,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *snapshotCache) Load(ctx context.Context) ([]product.Product, bool, error) {
	data, err := c.storage.GetWithContext(ctx, c.key)
	if err != nil {
		return nil, false, fmt.Errorf("snapshot read error: %w", err)
	}
	if len(data) == 0 {
		c.logger.Debug("Snapshot cache miss", "key", c.key)
		return nil, false, nil
	}

	var entry snapshotEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("snapshot decode error: %w", err)
	}
	if entry.Count != len(entry.Products) {
		return nil, false, fmt.Errorf("snapshot holds %d products, expected %d", len(entry.Products), entry.Count)
	}
	if entry.Products == nil {
		entry.Products = []product.Product{}
	}

	c.logger.Debug("Snapshot cache hit",
		"key", c.key,
		"products", entry.Count,
		"age", c.now().Sub(entry.StoredAt).String())
	return entry.Products, true, nil
}

func (c *snapshotCache) Store(ctx context.Context, products []product.Product) error {
	data, err := json.Marshal(snapshotEntry{
		Products: products,
		Count:    len(products),
		StoredAt: c.now(),
	})
	if err != nil {
		return fmt.Errorf("snapshot encode error: %w", err)
	}

	if err := c.storage.SetWithContext(ctx, c.key, data, c.ttl); err != nil {
		return fmt.Errorf("snapshot write error: %w", err)
	}
	return nil
}

func (c *snapshotCache) Invalidate(ctx context.Context) error {
	if err := c.storage.DeleteWithContext(ctx, c.key); err != nil {
		return fmt.Errorf("snapshot delete error: %w", err)
	}
	return nil
}

func (c *snapshotCache) Close() error {
	return c.storage.Close()
}
