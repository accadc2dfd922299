package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the catalog and the session's filters.
type ProductHandler struct {
	service         *services.ProductService
	defaultMaxPrice decimal.Decimal
}

// NewProductHandler creates a new ProductHandler. defaultMaxPrice is the
// price ceiling used when a query does not name one.
func NewProductHandler(service *services.ProductService, defaultMaxPrice decimal.Decimal) *ProductHandler {
	return &ProductHandler{
		service:         service,
		defaultMaxPrice: defaultMaxPrice,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Get("/categories", h.HandleGetCategories)
}

// RegisterSessionRoutes registers the routes that read or change a session's filters.
func (h *ProductHandler) RegisterSessionRoutes(router fiber.Router) {
	router.Get("/storefront", h.HandleGetStorefront)

	filterRoutes := router.Group("/filters")
	filterRoutes.Get("/", h.HandleGetFilters)
	filterRoutes.Put("/search", h.HandleSetSearch)
	filterRoutes.Post("/categories/:name/toggle", h.HandleToggleCategory)
	filterRoutes.Put("/price", h.HandleSetPrice)
}

// HandleGetProducts lists the catalog narrowed by the search, category and
// maxPrice query parameters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	criteria := models.FilterCriteria{
		SearchText: c.Query("search"),
		MaxPrice:   h.defaultMaxPrice,
	}
	for _, category := range strings.Split(c.Query("category"), ",") {
		if category = strings.TrimSpace(category); category != "" {
			criteria.SelectedCategories = append(criteria.SelectedCategories, category)
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			return badRequest(c, "maxPrice must be a non-negative number", err)
		}
		criteria.MaxPrice = maxPrice
	}

	products, err := h.service.FilterProducts(criteria)
	if err != nil {
		log.Printf("Error filtering products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %d not found", id),
			})
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleGetCategories lists the categories offered by the filter sidebar.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(models.Categories)
}

// HandleGetStorefront lists the products visible under the session's filters.
func (h *ProductHandler) HandleGetStorefront(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	criteria := sess.Filter.Criteria()

	products, err := h.service.FilterProducts(criteria)
	if err != nil {
		log.Printf("Error filtering products for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"filters":  criteria,
		"products": products,
	})
}

// HandleGetFilters returns the session's filter criteria.
func (h *ProductHandler) HandleGetFilters(c *fiber.Ctx) error {
	return c.JSON(middleware.Session(c).Filter.Criteria())
}

// HandleSetSearch replaces the session's search text.
func (h *ProductHandler) HandleSetSearch(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	sess := middleware.Session(c)
	sess.Filter.SetSearchQuery(req.Query)
	return c.JSON(sess.Filter.Criteria())
}

// HandleToggleCategory selects or deselects a category.
func (h *ProductHandler) HandleToggleCategory(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("name"))
	if err != nil || category == "" {
		return badRequest(c, "Category is required", err)
	}

	sess := middleware.Session(c)
	sess.Filter.ToggleCategory(category)
	return c.JSON(sess.Filter.Criteria())
}

// HandleSetPrice sets the session's price ceiling.
func (h *ProductHandler) HandleSetPrice(c *fiber.Ctx) error {
	var req struct {
		MaxPrice *decimal.Decimal `json:"max_price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if req.MaxPrice == nil || req.MaxPrice.IsNegative() {
		return badRequest(c, "max_price must be a non-negative number", nil)
	}

	sess := middleware.Session(c)
	sess.Filter.SetPriceRange(*req.MaxPrice)
	return c.JSON(sess.Filter.Criteria())
}
