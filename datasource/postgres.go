package datasource

import (
	"context"
	"fmt"

	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectProducts = `
SELECT id, name, brand, price::float8, COALESCE(original_price, 0)::float8,
       COALESCE(category, ''), COALESCE(stock, 0), COALESCE(description, ''),
       COALESCE(image, ''), COALESCE(rating, 0)::float8, COALESCE(reviews, 0)
FROM products
ORDER BY id`

// PostgresSource reads the catalog from a PostgreSQL products table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

var _ catalog.Source = (*PostgresSource)(nil)

// NewPostgresSource wraps an existing connection pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresSource(pool), nil
}

// Products returns every row of the products table ordered by ID.
func (s *PostgresSource) Products(ctx context.Context) ([]product.Product, error) {
	rows, err := s.pool.Query(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (product.Product, error) {
		var (
			p  product.Product
			id int64
		)
		err := row.Scan(&id, &p.Name, &p.Brand, &p.Price, &p.OriginalPrice,
			&p.Category, &p.Stock, &p.Description, &p.Image, &p.Rating, &p.Reviews)
		p.ID = uint(id)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

// Ping verifies the database connection.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}
