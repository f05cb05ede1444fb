// internal/domain/cart/cart.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/catalog"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no entries
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPersist wraps storage write failures. The in-memory state is
	// already mutated when it is returned.
	ErrPersist = errors.New("failed to persist cart")
)

// MaxQuantity caps the quantity of a single cart line
const MaxQuantity = 999

// Cart is the add-to-cart state of one session. It is not safe for
// concurrent use; each owner holds its own instance.
type Cart struct {
	entries []Entry
	store   Storage
	logger  logrus.FieldLogger
}

// New returns an empty cart that writes through store. A nil store keeps
// the cart in memory only; a nil logger falls back to the standard logger.
func New(store Storage, logger logrus.FieldLogger) *Cart {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cart{store: store, logger: logger}
}

// Load rehydrates a cart from store. A missing or unreadable blob yields an
// empty cart; the failure is logged and never returned.
func Load(ctx context.Context, store Storage, logger logrus.FieldLogger) *Cart {
	c := New(store, logger)
	if store == nil {
		return c
	}

	entries, err := store.Load(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("failed to load cart, starting empty")
		return c
	}

	for _, e := range entries {
		// Drop anything that violates the entry invariants
		if e.Quantity <= 0 || c.indexOf(e.ID) >= 0 {
			continue
		}
		if e.Quantity > MaxQuantity {
			e.Quantity = MaxQuantity
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// AddItem increments the entry for p or appends a new one with quantity 1.
// A line already at MaxQuantity stays there.
func (c *Cart) AddItem(ctx context.Context, p catalog.Product) error {
	if i := c.indexOf(p.ID); i >= 0 {
		if c.entries[i].Quantity < MaxQuantity {
			c.entries[i].Quantity++
		}
	} else {
		c.entries = append(c.entries, newEntry(p))
	}
	return c.persist(ctx)
}

// RemoveItem deletes the entry for productID. Absent ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID uint) error {
	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return c.persist(ctx)
}

// UpdateQuantity adds delta to the entry's quantity and removes the entry
// when the result is <= 0. Results above MaxQuantity are capped. Absent ids
// are a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID uint, delta int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	current := c.entries[i].Quantity
	switch {
	case delta >= MaxQuantity-current:
		// Compared before adding so a huge delta cannot wrap around
		c.entries[i].Quantity = MaxQuantity
	case current+delta <= 0:
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
	default:
		c.entries[i].Quantity = current + delta
	}
	return c.persist(ctx)
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) error {
	c.entries = nil
	return c.persist(ctx)
}

// Entries returns a copy of the entries in insertion order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the entry for productID
func (c *Cart) Entry(productID uint) (Entry, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.entries[i], true
	}
	return Entry{}, false
}

// Len is the number of distinct products
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// TotalItems is the sum of all quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity * price over all entries
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.Subtotal()
	}
	return total
}

// Totals bundles the derived figures
func (c *Cart) Totals() Totals {
	return Totals{
		ItemCount:  len(c.entries),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// Summary renders the cart for API responses
func (c *Cart) Summary() Summary {
	totals := c.Totals()
	return Summary{
		Items:          c.Entries(),
		Totals:         totals,
		FormattedTotal: catalog.FormatPrice(totals.TotalPrice),
	}
}

func (c *Cart) indexOf(productID uint) int {
	for i := range c.entries {
		if c.entries[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) persist(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	entries := c.Entries()
	if err := c.store.Save(ctx, entries); err != nil {
		c.logger.WithError(err).Error("failed to save cart")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
