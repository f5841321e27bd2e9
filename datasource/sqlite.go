package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a product is not found.
var ErrNotFound = errors.New("product not found")

// SQLiteSource reads products from a GORM database.
type SQLiteSource struct {
	db *gorm.DB
}

var _ catalog.Source = (*SQLiteSource)(nil)

// NewSQLiteSource creates a source over db.
func NewSQLiteSource(db *gorm.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// OpenSQLite opens the SQLite database at path and migrates the products table.
func OpenSQLite(path string, debug bool) (*SQLiteSource, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := NewSQLiteSource(db)
	if err := repo.Migrate(); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// Migrate creates or updates the products table.
func (r *SQLiteSource) Migrate() error {
	if err := r.db.AutoMigrate(&product.Product{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Products returns every product ordered by ID.
func (r *SQLiteSource) Products(ctx context.Context) ([]product.Product, error) {
	return r.FindAll(ctx)
}

// FindAll retrieves all products ordered by ID.
func (r *SQLiteSource) FindAll(ctx context.Context) ([]product.Product, error) {
	products := []product.Product{}
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its ID.
func (r *SQLiteSource) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// Seed inserts products when the table is empty and reports how many rows
// were written.
func (r *SQLiteSource) Seed(ctx context.Context, products []product.Product) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&product.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 || len(products) == 0 {
		return 0, nil
	}

	rows := make([]product.Product, len(products))
	copy(rows, products)
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(rows), nil
}

// Ping verifies the database connection.
func (r *SQLiteSource) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (r *SQLiteSource) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
