package repositories

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Catalog drivers accepted by NewProductRepository.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewProductRepository builds the catalog repository for the given driver.
// An empty DSN for sqlite means a shared in-memory database.
func NewProductRepository(driver, dsn string) (ProductRepository, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", DriverMemory:
		return NewMemoryProductRepository(), nil
	case DriverSQLite:
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres catalog requires a DSN")
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s catalog: %w", driver, err)
	}
	return NewGORMProductRepository(db)
}

// SampleProducts returns the catalog seeded at startup.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Title:       "Wireless Headphones",
			Price:       decimal.RequireFromString("199.99"),
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
			Description: "High-quality wireless headphones with noise cancellation and premium sound quality. Perfect for music lovers and professionals alike.",
		},
		{
			ID:       2,
			Title:    "Smart Watch",
			Price:    decimal.RequireFromString("299.99"),
			Category: "Electronics",
			Image:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30",
		},
		{
			ID:       3,
			Title:    "Camera Lens",
			Price:    decimal.RequireFromString("799.99"),
			Category: "Electronics",
			Image:    "https://images.unsplash.com/photo-1542496658-e33a6d0d50f6",
		},
		{
			ID:       4,
			Title:    "Running Shoes",
			Price:    decimal.RequireFromString("89.99"),
			Category: "Sports",
			Image:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff",
		},
	}
}

// SeedProducts populates repo with products. Products that already exist are skipped.
func SeedProducts(repo ProductRepository, products []models.Product) error {
	for i := range products {
		err := repo.Create(&products[i])
		if errors.Is(err, ErrDuplicateID) {
			log.Printf("Product %d already seeded, skipping", products[i].ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("error seeding product %s: %w", products[i].Title, err)
		}
		log.Printf("Seeded product: %s (ID: %d)", products[i].Title, products[i].ID)
	}
	return nil
}
