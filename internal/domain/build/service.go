// internal/domain/build/service.go
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
)

var (
	ErrUnknownCategory  = errors.New("unknown build category")
	ErrCategoryMismatch = errors.New("product does not belong to this category")
	ErrBuildNotFound    = errors.New("build not found")
)

const defaultBuildName = "Моя сборка"

// ProductLookup resolves catalog products by id
type ProductLookup interface {
	Get(ctx context.Context, id uint) (*catalog.Product, error)
}

// CartLoader loads the cart of a session
type CartLoader interface {
	Get(ctx context.Context, sessionID string) *cart.Cart
}

// Repository persists saved builds
type Repository interface {
	Create(ctx context.Context, b *SavedBuild) error
	FindByID(ctx context.Context, id uint) (*SavedBuild, error)
}

// SheetRenderer produces the printable build sheet
type SheetRenderer interface {
	GenerateBuildSheet(b *SavedBuild) (*bytes.Buffer, error)
}

// Service exposes session-scoped builds to the HTTP layer
type Service struct {
	slots    []Slot
	products ProductLookup
	stores   StoreFactory
	carts    CartLoader
	repo     Repository
	sheets   SheetRenderer
	logger   logrus.FieldLogger
}

// NewService creates a new build service over DefaultSlots
func NewService(
	products ProductLookup,
	stores StoreFactory,
	carts CartLoader,
	repo Repository,
	sheets SheetRenderer,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		slots:    DefaultSlots,
		products: products,
		stores:   stores,
		carts:    carts,
		repo:     repo,
		sheets:   sheets,
		logger:   logger.WithField("component", "build"),
	}
}

// Get loads the session's build
func (s *Service) Get(ctx context.Context, sessionID string) *Build {
	return Load(ctx, s.slots, s.stores(sessionID), s.logger.WithField("session_id", sessionID))
}

// Select puts productID into the category slot of the session's build
func (s *Service) Select(ctx context.Context, sessionID string, category catalog.Category, productID uint) (*Build, error) {
	b := s.Get(ctx, sessionID)
	if _, ok := b.Slot(category); !ok {
		return nil, ErrUnknownCategory
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Category != category {
		return nil, ErrCategoryMismatch
	}
	if !product.InStock {
		return nil, cart.ErrOutOfStock
	}

	if err := b.Select(ctx, category, *product); err != nil {
		return b, err
	}
	return b, nil
}

// Remove empties the category slot of the session's build
func (s *Service) Remove(ctx context.Context, sessionID string, category catalog.Category) (*Build, error) {
	b := s.Get(ctx, sessionID)
	if _, ok := b.Slot(category); !ok {
		return nil, ErrUnknownCategory
	}
	if err := b.Remove(ctx, category); err != nil {
		return b, err
	}
	return b, nil
}

// Clear empties the session's build
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.Get(ctx, sessionID).Clear(ctx)
}

// AddToCart flushes the session's build into the same session's cart
func (s *Service) AddToCart(ctx context.Context, sessionID string) (*cart.Cart, int, error) {
	b := s.Get(ctx, sessionID)
	if b.Len() == 0 {
		return nil, 0, ErrEmptyBuild
	}

	c := s.carts.Get(ctx, sessionID)
	added, err := b.FlushToCart(ctx, c)
	if err != nil {
		return c, added, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"components": added,
		"total":      b.TotalPrice(),
	}).Info("build added to cart")

	return c, added, nil
}

// Save stores a snapshot of the session's build
func (s *Service) Save(ctx context.Context, sessionID string, userID *uint, req SaveRequest) (*SavedBuild, error) {
	b := s.Get(ctx, sessionID)
	if b.Len() == 0 {
		return nil, ErrEmptyBuild
	}

	saved := snapshotOf(b, req.Name)
	saved.UserID = userID
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save build: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"build_id": saved.ID,
		"total":    saved.Total,
	}).Info("build saved")

	return saved, nil
}

// GetSaved returns a stored build
func (s *Service) GetSaved(ctx context.Context, id uint) (*SavedBuild, error) {
	return s.repo.FindByID(ctx, id)
}

// Sheet renders the session's build as a PDF
func (s *Service) Sheet(ctx context.Context, sessionID string) (*bytes.Buffer, error) {
	b := s.Get(ctx, sessionID)
	if b.Len() == 0 {
		return nil, ErrEmptyBuild
	}

	buf, err := s.sheets.GenerateBuildSheet(snapshotOf(b, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to render build sheet: %w", err)
	}
	return buf, nil
}

func snapshotOf(b *Build, name string) *SavedBuild {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultBuildName
	}
	return &SavedBuild{
		Name:       name,
		Components: b.Components(),
		Total:      b.TotalPrice(),
		Complete:   b.IsComplete(),
	}
}
