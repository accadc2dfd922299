package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryOrderRepository is an in-memory, append-only OrderRepository.
// Orders are returned in creation order and never share item storage
// with callers.
type MemoryOrderRepository struct {
	orders []models.Order
	index  map[string]int
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all orders in creation order.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order.Clone())
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	order := r.orders[pos].Clone()
	return &order, nil
}

// Create appends a new order. The ID must already be assigned.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		return fmt.Errorf("order has no ID")
	}
	if _, ok := r.index[order.ID]; ok {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrDuplicateID)
	}
	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, order.Clone())
	return nil
}

// UpdateStatus sets the status and update time of an order.
func (r *MemoryOrderRepository) UpdateStatus(id string, status models.OrderStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	r.orders[pos].Status = status
	r.orders[pos].UpdatedAt = at
	return nil
}
