package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Endpoints
// accepting a body are guarded by the JSON content-type check.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	jsonOnly := middleware.RequireContentType(fiber.MIMEApplicationJSON)

	router.Get("/products", h.HandleListProducts)
	router.Post("/products", jsonOnly, h.HandleCreateProduct)
	router.Get("/products/:id", h.HandleGetProduct)
	router.Put("/products/:id", jsonOnly, h.HandleUpdateProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product from the request body and points
// the Location header at its read endpoint.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	log.Printf("Request to create a product")

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid product data: %v", err))
	}
	product.ID = 0 // the store assigns IDs

	if err := h.service.CreateProduct(&product); err != nil {
		return h.dataError(c, err)
	}
	log.Printf("Product with ID [%d] created", product.ID)

	c.Location(fmt.Sprintf("%s/products/%d", c.BaseURL(), product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts lists products, applying the optional name, category
// and available query filters in that order.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := services.ListFilter{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		Available: c.Query("available"),
	}
	log.Printf("Request to list products (name=%q category=%q available=%q)",
		filter.Name, filter.Category, filter.Available)

	products, err := h.service.ListProducts(filter)
	if err != nil {
		var invalidCategory *models.InvalidCategoryError
		if errors.As(err, &invalidCategory) {
			return errorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Invalid category: %s", invalidCategory.Name))
		}
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if products == nil {
		products = []models.Product{}
	}
	log.Printf("[%d] products returned", len(products))
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}
	log.Printf("Request to get product with ID [%d]", id)

	product, err := h.service.GetProduct(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error getting product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces an existing product with the request body.
// The path ID wins over any ID present in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}
	log.Printf("Request to update product with ID [%d]", id)

	if _, err := h.service.GetProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error looking up product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid product data: %v", err))
	}
	product.ID = id

	if err := h.service.UpdateProduct(&product); err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product. Deletion is idempotent; a missing
// target still yields 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}
	log.Printf("Request to delete product with ID [%d]", id)

	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// dataError maps deserialization and persistence errors from create and
// update to HTTP statuses.
func (h *ProductHandler) dataError(c *fiber.Ctx, err error) error {
	var missing *models.MissingFieldError
	var invalid *models.InvalidValueError
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		// The product vanished between the lookup and the save.
		return productNotFound(c)
	case errors.As(err, &missing):
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Missing data: %s", missing.Field))
	case errors.As(err, &invalid):
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid data: %v", invalid))
	default:
		log.Printf("Error persisting product: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// parseID reads the :id path segment as a positive integer. A segment that
// is not one behaves as an unroutable resource.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func productNotFound(c *fiber.Ctx) error {
	return errorResponse(c, fiber.StatusNotFound,
		fmt.Sprintf("Product with ID '%s' not found", c.Params("id")))
}

// errorResponse writes the error payload shared by all failure statuses.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
	})
}
