// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/catalog"
)

// ErrOutOfStock is returned when adding a product that is not in stock
var ErrOutOfStock = errors.New("product is out of stock")

// ProductLookup resolves catalog products by id
type ProductLookup interface {
	Get(ctx context.Context, id uint) (*catalog.Product, error)
}

// Service exposes session-scoped carts to the HTTP layer
type Service struct {
	products ProductLookup
	stores   StoreFactory
	logger   logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(products ProductLookup, stores StoreFactory, logger logrus.FieldLogger) *Service {
	return &Service{
		products: products,
		stores:   stores,
		logger:   logger.WithField("component", "cart"),
	}
}

// Get loads the session's cart
func (s *Service) Get(ctx context.Context, sessionID string) *Cart {
	return Load(ctx, s.stores(sessionID), s.logger.WithField("session_id", sessionID))
}

// AddItem adds one unit of productID to the session's cart
func (s *Service) AddItem(ctx context.Context, sessionID string, productID uint) (*Cart, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	c := s.Get(ctx, sessionID)
	if err := c.AddItem(ctx, *product); err != nil {
		return c, err
	}
	return c, nil
}

// UpdateQuantity changes the quantity of productID by delta
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID uint, delta int) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	if err := c.UpdateQuantity(ctx, productID, delta); err != nil {
		return c, err
	}
	return c, nil
}

// RemoveItem removes productID from the session's cart
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	if err := c.RemoveItem(ctx, productID); err != nil {
		return c, err
	}
	return c, nil
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.Get(ctx, sessionID).Clear(ctx)
}
