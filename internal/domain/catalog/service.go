// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// ListQuery filters the catalog. Empty fields mean no filter.
type ListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// normalize trims input and maps the "all" category to no filter
func (q ListQuery) normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	if q.Category == CategoryAll {
		q.Category = ""
	}
	return q
}

// Repository is the product persistence port
type Repository interface {
	List(ctx context.Context, query ListQuery) ([]Product, error)
	FindByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Specs         string `json:"specs"`
	InStock       *bool  `json:"in_stock"`
}

// ProductUpdateRequest represents partial product update data
type ProductUpdateRequest struct {
	Name          *string `json:"name"`
	Price         *int64  `json:"price"`
	OriginalPrice *int64  `json:"original_price"`
	Image         *string `json:"image"`
	Category      *string `json:"category"`
	Specs         *string `json:"specs"`
	InStock       *bool   `json:"in_stock"`
}

// Service handles catalog business logic
type Service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.WithField("component", "catalog"),
	}
}

// List returns products matching the query
func (s *Service) List(ctx context.Context, query ListQuery) ([]Product, error) {
	products, err := s.repo.List(ctx, query.normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns a single product
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and stores a new product
func (s *Service) Create(ctx context.Context, req *ProductCreateRequest) (*Product, error) {
	product := &Product{
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         strings.TrimSpace(req.Image),
		Category:      Category(strings.TrimSpace(req.Category)),
		Specs:         strings.TrimSpace(req.Specs),
		InStock:       true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := validate(product); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"category":   product.Category,
	}).Info("product created")

	return product, nil
}

// Update applies a partial update to an existing product
func (s *Service) Update(ctx context.Context, id uint, req *ProductUpdateRequest) (*Product, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate against the merged result so partial updates can't break invariants
	merged := *current
	updates := make(map[string]interface{})

	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
		updates["name"] = merged.Name
	}
	if req.Price != nil {
		merged.Price = *req.Price
		updates["price"] = merged.Price
	}
	if req.OriginalPrice != nil {
		merged.OriginalPrice = req.OriginalPrice
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Image != nil {
		merged.Image = strings.TrimSpace(*req.Image)
		updates["image"] = merged.Image
	}
	if req.Category != nil {
		merged.Category = Category(strings.TrimSpace(*req.Category))
		updates["category"] = merged.Category
	}
	if req.Specs != nil {
		merged.Specs = strings.TrimSpace(*req.Specs)
		updates["specs"] = merged.Specs
	}
	if req.InStock != nil {
		merged.InStock = *req.InStock
		updates["in_stock"] = merged.InStock
	}

	if err := validate(&merged); err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.WithField("product_id", id).Info("product updated")
	return updated, nil
}

// Delete soft deletes a product
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}

func validate(p *Product) error {
	if p.Name == "" || p.Image == "" || p.Category == "" {
		return fmt.Errorf("%w: name, category and image are required", ErrInvalidProduct)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return fmt.Errorf("%w: original price cannot be negative", ErrInvalidProduct)
	}
	return nil
}
