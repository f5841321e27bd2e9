package datasource

import (
	"context"
	"fmt"

	"github.com/example/shoe-catalog/config"
	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
)

// Finder is implemented by sources that can look up a single product
// without loading the whole catalog.
type Finder interface {
	FindByID(ctx context.Context, id uint) (*product.Product, error)
}

// Pinger is implemented by sources backed by a connection that can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Opened is a configured source together with its release function.
type Opened struct {
	Kind   string
	Source catalog.Source
	close  func() error
}

// Close releases resources held by the source.
func (o *Opened) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}

// New opens the source selected by cfg.Kind. A SQLite database with an
// empty products table is seeded with the built-in catalog.
func New(ctx context.Context, cfg config.SourceConfig) (*Opened, error) {
	switch cfg.Kind {
	case config.SourceStatic, "":
		return &Opened{
			Kind:   config.SourceStatic,
			Source: catalog.NewStaticSource(catalog.DefaultProducts()),
		}, nil

	case config.SourceFile:
		src, err := NewFileSource(cfg.File)
		if err != nil {
			return nil, err
		}
		return &Opened{Kind: cfg.Kind, Source: src}, nil

	case config.SourceSQLite:
		src, err := OpenSQLite(cfg.DBPath, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		if _, err := src.Seed(ctx, catalog.DefaultProducts()); err != nil {
			_ = src.Close()
			return nil, err
		}
		return &Opened{Kind: cfg.Kind, Source: src, close: src.Close}, nil

	case config.SourcePostgres:
		src, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Opened{Kind: cfg.Kind, Source: src, close: src.Close}, nil

	case config.SourceBackend:
		return &Opened{
			Kind:   cfg.Kind,
			Source: NewBackendSource(cfg.BackendURL, cfg.BackendTimeout),
		}, nil

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Kind)
	}
}
