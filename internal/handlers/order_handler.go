package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and order history for a session.
type OrderHandler struct{}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

// RegisterRoutes registers the checkout and order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/checkout/shipping", h.HandleGetShippingDefaults)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetShippingDefaults returns the shipping form prefilled for the signed-in user.
func (h *OrderHandler) HandleGetShippingDefaults(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if !sess.Auth.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login required to checkout",
		})
	}
	return c.JSON(sess.Orders.ShippingDefaults())
}

// HandleGetOrders lists the session's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if !sess.Auth.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "You need to be logged in to view your orders",
		})
	}

	orders, err := sess.Orders.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := middleware.Session(c).Orders.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleCreateOrder places an order for the cart's contents.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var shipping models.ShippingDetails
	if err := c.BodyParser(&shipping); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}

	createdOrder, err := middleware.Session(c).Orders.CreateOrder(shipping)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Login required to checkout",
			})
		case errors.Is(err, services.ErrInvalidShipping):
			return validationFailed(c, err)
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order creation failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return badRequest(c, "Invalid request body for status update", err)
	}

	orders := middleware.Session(c).Orders
	if _, err := orders.GetOrderByID(orderID); errors.Is(err, repositories.ErrOrderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}

	if err := orders.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return badRequest(c, "Order update failed", err)
		}
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}
