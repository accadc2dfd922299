package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session's cart.
type CartHandler struct {
	products *services.ProductService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(products *services.ProductService) *CartHandler {
	return &CartHandler{
		products: products,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/toggle", h.HandleToggleCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest represents the request body for changing a line's quantity.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// HandleGetCart returns the cart with its total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(middleware.Session(c).Cart.Snapshot())
}

// HandleAddItem adds one unit of a catalog product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %d not found", req.ProductID),
			})
		}
		log.Printf("Error getting product %d for cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	cart := middleware.Session(c).Cart
	cart.Add(*product)
	return c.Status(fiber.StatusCreated).JSON(cart.Snapshot())
}

// HandleUpdateQuantity adds delta to a line's quantity. Changes that would
// drop the quantity below one leave the line as it is.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	productID, err := productIDParam(c, "productId")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart := middleware.Session(c).Cart
	cart.UpdateQuantity(productID, req.Delta)
	return c.JSON(cart.Snapshot())
}

// HandleRemoveItem deletes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID, err := productIDParam(c, "productId")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	cart := middleware.Session(c).Cart
	cart.Remove(productID)
	return c.JSON(cart.Snapshot())
}

// HandleClearCart empties the cart and closes the panel.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart := middleware.Session(c).Cart
	cart.Clear()
	return c.JSON(cart.Snapshot())
}

// HandleToggleCart opens or closes the cart panel.
func (h *CartHandler) HandleToggleCart(c *fiber.Ctx) error {
	cart := middleware.Session(c).Cart
	cart.Toggle()
	return c.JSON(cart.Snapshot())
}
