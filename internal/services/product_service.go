package services

import (
	"errors"
	"log"
	"strings"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// EventPublisher publishes catalog change events. A nil publisher disables
// event publishing.
type EventPublisher interface {
	PublishProductEvent(event string, product interface{}) error
}

// Product event names.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ListFilter carries the raw query values of a list request. Empty fields
// are ignored.
type ListFilter struct {
	Name      string
	Category  string
	Available string
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// ListProducts retrieves products matching the filter. Filters apply in the
// fixed order name, category, available, each narrowing the previous result.
func (s *ProductService) ListProducts(filter ListFilter) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if filter.Name != "" {
		// A name filter replaces the result set with an exact-match lookup.
		products, err = s.repo.FindByName(filter.Name)
		if err != nil {
			return nil, err
		}
	}

	if filter.Category != "" {
		category, ok := models.ParseCategory(filter.Category)
		if !ok {
			return nil, &models.InvalidCategoryError{Name: filter.Category}
		}
		var filtered []models.Product
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if filter.Available != "" {
		available := parseAvailable(filter.Available)
		var filtered []models.Product
		for _, p := range products {
			if p.Available == available {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return products, nil
}

// parseAvailable interprets the available query value. Only the literal
// tokens true, yes and 1 (case-insensitive) mean true; anything else is
// false, never an error.
func parseAvailable(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and persists a new product. The store assigns the
// ID.
func (s *ProductService) CreateProduct(product *models.Product) error {
	normalizeCategory(product)
	if err := product.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(EventProductCreated, product)
	return nil
}

// UpdateProduct validates and persists changes to an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	normalizeCategory(product)
	if err := product.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(EventProductUpdated, product)
	return nil
}

// DeleteProduct removes a product by its ID. Deleting an absent product is
// not an error.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if errors.Is(err, repositories.ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil
		}
		return err
	}
	s.publish(EventProductDeleted, product)
	return nil
}

// normalizeCategory canonicalizes the submitted category name. An empty
// category defaults to UNKNOWN; unknown names are left in place for
// validation to reject.
func normalizeCategory(product *models.Product) {
	if product.Category == "" {
		product.Category = models.CategoryUnknown
		return
	}
	if category, ok := models.ParseCategory(string(product.Category)); ok {
		product.Category = category
	}
}

// publish sends a product event when a publisher is configured. Publishing
// is best-effort: failures are logged and never surfaced to the request.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, product); err != nil {
		log.Printf("Failed to publish %s event for product %d: %v", event, product.ID, err)
	}
}
