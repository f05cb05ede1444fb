// internal/domain/build/entity.go
package build

import (
	"time"

	"github.com/techempire/storefront/internal/domain/catalog"
)

// SavedBuild is a configuration stored for sharing or later checkout
type SavedBuild struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     *uint       `gorm:"index" json:"user_id,omitempty"`
	Name       string      `gorm:"size:255" json:"name"`
	Components []Component `gorm:"type:jsonb;serializer:json" json:"components"`
	Total      int64       `gorm:"not null" json:"total"`
	Complete   bool        `json:"complete"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName overrides the table name
func (SavedBuild) TableName() string {
	return "pc_builds"
}

// View is the session build as returned to API clients
type View struct {
	Slots          []SlotView `json:"slots"`
	TotalPrice     int64      `json:"total_price"`
	FormattedTotal string     `json:"formatted_total"`
	IsComplete     bool       `json:"is_complete"`
	Missing        []Slot     `json:"missing"`
}

// SlotView is one slot with its selected component, if any
type SlotView struct {
	Slot
	Component *Component `json:"component"`
}

// SaveRequest names a build before it is stored
type SaveRequest struct {
	Name string `json:"name"`
}

// View renders the build for API responses
func (b *Build) View() View {
	slots := make([]SlotView, 0, len(b.slots))
	for _, s := range b.slots {
		sv := SlotView{Slot: s}
		if c, ok := b.selected[s.Category]; ok {
			c := c
			sv.Component = &c
		}
		slots = append(slots, sv)
	}

	missing := b.Missing()
	if missing == nil {
		missing = []Slot{}
	}

	total := b.TotalPrice()
	return View{
		Slots:          slots,
		TotalPrice:     total,
		FormattedTotal: catalog.FormatPrice(total),
		IsComplete:     len(missing) == 0,
		Missing:        missing,
	}
}
