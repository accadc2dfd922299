package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routing keys of the events published by OrderService.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

// EventPublisher sends order events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, event any) error
}

// Identity exposes the user a session is signed in as.
type Identity interface {
	CurrentUser() *models.User
}

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     models.OrderStatus `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	ItemCount  int                `json:"item_count"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// OrderService turns the session's cart into orders and tracks their status.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cart      *CartService
	identity  Identity
	publisher EventPublisher // may be nil
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, cart *CartService, identity Identity, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cart:      cart,
		identity:  identity,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllOrders returns the session's orders in the order they were placed.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ShippingDefaults returns the shipping form prefilled for the current user.
func (s *OrderService) ShippingDefaults() models.ShippingDetails {
	var details models.ShippingDetails
	if user := s.identity.CurrentUser(); user != nil {
		details.FullName = user.Name
	}
	return details
}

// CreateOrder places an order for everything in the cart and empties it.
// The order's items and total are a copy of the cart at this moment.
func (s *OrderService) CreateOrder(shipping models.ShippingDetails) (*models.Order, error) {
	user := s.identity.CurrentUser()
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if err := s.validate.Struct(shipping); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShipping, err)
	}

	lines := s.cart.drain()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	newOrder := &models.Order{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Items:     lines,
		Total:     totalOf(lines),
		Status:    models.OrderStatusPending,
		Shipping:  shipping,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		s.cart.restore(lines)
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	log.Printf("Order %s placed by user %s: %d lines, total %s", newOrder.ID, user.ID, len(lines), newOrder.Total.StringFixed(2))

	s.publish(EventOrderCreated, newOrder)
	return newOrder, nil
}

// UpdateOrderStatus sets the status of an order. Any known status is
// accepted regardless of the current one. An unknown order ID is ignored.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	err := s.orderRepo.UpdateStatus(id, status, time.Now())
	if errors.Is(err, repositories.ErrOrderNotFound) {
		log.Printf("Status update for unknown order %s ignored", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if order, err := s.orderRepo.GetByID(id); err == nil {
		s.publish(EventOrderStatusUpdated, order)
	}
	return nil
}

func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		ItemCount:  len(order.Items),
		OccurredAt: order.UpdatedAt,
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
