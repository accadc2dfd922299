package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for catalog access.
// GetAll returns products in catalog order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
}
