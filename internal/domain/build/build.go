// internal/domain/build/build.go
package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/catalog"
)

var (
	// ErrEmptyBuild is returned when flushing a build with no components
	ErrEmptyBuild = errors.New("build is empty")
	// ErrPersist wraps storage write failures. The in-memory state is
	// already mutated when it is returned.
	ErrPersist = errors.New("failed to persist build")
)

// Component is the product snapshot held by a slot
type Component struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Price    int64            `json:"price"`
	Image    string           `json:"image"`
	Category catalog.Category `json:"category"`
	Specs    string           `json:"specs"`
}

func componentOf(p catalog.Product) Component {
	return Component{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Specs:    p.Specs,
	}
}

// Product turns the snapshot back into a catalog product
func (c Component) Product() catalog.Product {
	return catalog.Product{
		ID:       c.ID,
		Name:     c.Name,
		Price:    c.Price,
		Image:    c.Image,
		Category: c.Category,
		Specs:    c.Specs,
		InStock:  true,
	}
}

// Storage persists the selected components of one build
type Storage interface {
	// Load returns (nil, nil) when nothing has been stored yet
	Load(ctx context.Context) (map[catalog.Category]Component, error)
	Save(ctx context.Context, components map[catalog.Category]Component) error
}

// StoreFactory resolves the storage of a session's build
type StoreFactory func(sessionID string) Storage

// ItemAdder receives flushed components, usually a cart
type ItemAdder interface {
	AddItem(ctx context.Context, p catalog.Product) error
}

// Build is the configurator state of one session: at most one component per
// slot of its table. It is not safe for concurrent use.
type Build struct {
	slots    []Slot
	selected map[catalog.Category]Component
	store    Storage
	logger   logrus.FieldLogger
}

// New returns an empty build over slots. A nil store keeps it in memory and
// a nil logger falls back to the standard logger.
func New(slots []Slot, store Storage, logger logrus.FieldLogger) *Build {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Build{
		slots:    slots,
		selected: make(map[catalog.Category]Component),
		store:    store,
		logger:   logger,
	}
}

// Load rehydrates a build from store. Read failures yield an empty build and
// are only logged; components for categories outside the table are dropped.
func Load(ctx context.Context, slots []Slot, store Storage, logger logrus.FieldLogger) *Build {
	b := New(slots, store, logger)
	if store == nil {
		return b
	}

	components, err := store.Load(ctx)
	if err != nil {
		b.logger.WithError(err).Warn("failed to load build, starting empty")
		return b
	}

	for category, c := range components {
		if b.hasSlot(category) {
			b.selected[category] = c
		}
	}
	return b
}

// Slots returns the descriptor table
func (b *Build) Slots() []Slot {
	out := make([]Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// Slot returns the descriptor for category
func (b *Build) Slot(category catalog.Category) (Slot, bool) {
	for _, s := range b.slots {
		if s.Category == category {
			return s, true
		}
	}
	return Slot{}, false
}

// Select puts p into the category slot, replacing any previous choice.
// Categories outside the table are ignored.
func (b *Build) Select(ctx context.Context, category catalog.Category, p catalog.Product) error {
	if !b.hasSlot(category) {
		return nil
	}
	b.selected[category] = componentOf(p)
	return b.persist(ctx)
}

// Remove empties the category slot
func (b *Build) Remove(ctx context.Context, category catalog.Category) error {
	if _, ok := b.selected[category]; !ok {
		return nil
	}
	delete(b.selected, category)
	return b.persist(ctx)
}

// Clear empties every slot
func (b *Build) Clear(ctx context.Context) error {
	b.selected = make(map[catalog.Category]Component)
	return b.persist(ctx)
}

// Selected returns the component in the category slot
func (b *Build) Selected(category catalog.Category) (Component, bool) {
	c, ok := b.selected[category]
	return c, ok
}

// Components returns the filled slots in table order
func (b *Build) Components() []Component {
	out := make([]Component, 0, len(b.selected))
	for _, s := range b.slots {
		if c, ok := b.selected[s.Category]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len is the number of filled slots
func (b *Build) Len() int {
	return len(b.selected)
}

// TotalPrice is the sum of the selected component prices
func (b *Build) TotalPrice() int64 {
	var total int64
	for _, c := range b.selected {
		total += c.Price
	}
	return total
}

// IsComplete reports whether every required slot is filled
func (b *Build) IsComplete() bool {
	return len(b.Missing()) == 0
}

// Missing lists the required slots that are still empty
func (b *Build) Missing() []Slot {
	var missing []Slot
	for _, s := range b.slots {
		if !s.Required {
			continue
		}
		if _, ok := b.selected[s.Category]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// FlushToCart adds every selected component to dst once, in table order,
// and returns how many were added. The build itself is left unchanged.
func (b *Build) FlushToCart(ctx context.Context, dst ItemAdder) (int, error) {
	components := b.Components()
	if len(components) == 0 {
		return 0, ErrEmptyBuild
	}

	var errs []error
	for _, c := range components {
		if err := dst.AddItem(ctx, c.Product()); err != nil {
			errs = append(errs, err)
		}
	}
	return len(components), errors.Join(errs...)
}

func (b *Build) hasSlot(category catalog.Category) bool {
	_, ok := b.Slot(category)
	return ok
}

func (b *Build) snapshot() map[catalog.Category]Component {
	out := make(map[catalog.Category]Component, len(b.selected))
	for k, v := range b.selected {
		out[k] = v
	}
	return out
}

func (b *Build) persist(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	if err := b.store.Save(ctx, b.snapshot()); err != nil {
		b.logger.WithError(err).Error("failed to save build")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
