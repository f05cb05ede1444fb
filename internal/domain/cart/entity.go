// internal/domain/cart/entity.go
package cart

import (
	"context"

	"github.com/techempire/storefront/internal/domain/catalog"
)

// Entry is a cart line: a product snapshot taken when it was first added
// and the quantity. Quantity is always >= 1 for stored entries.
type Entry struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Price    int64            `json:"price"`
	Image    string           `json:"image"`
	Category catalog.Category `json:"category"`
	Specs    string           `json:"specs"`
	Quantity int              `json:"quantity"`
}

// Subtotal is quantity times unit price
func (e Entry) Subtotal() int64 {
	return e.Price * int64(e.Quantity)
}

func newEntry(p catalog.Product) Entry {
	return Entry{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Specs:    p.Specs,
		Quantity: 1,
	}
}

// Storage persists the full entry sequence of one cart
type Storage interface {
	// Load returns (nil, nil) when nothing has been stored yet
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// StoreFactory resolves the storage of a session's cart
type StoreFactory func(sessionID string) Storage

// Totals are the derived cart figures
type Totals struct {
	ItemCount  int   `json:"item_count"`  // Number of distinct products
	TotalItems int   `json:"total_items"` // Sum of quantities
	TotalPrice int64 `json:"total_price"`
}

// Summary is the cart as returned to API clients
type Summary struct {
	Items          []Entry `json:"items"`
	Totals         Totals  `json:"totals"`
	FormattedTotal string  `json:"formatted_total"`
}
