package repositories

import (
	"time"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are append-only; there is no delete.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus, at time.Time) error
}
