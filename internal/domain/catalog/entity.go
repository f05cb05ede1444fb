// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Category is the fixed key of a hardware category
type Category string

const (
	CategoryMotherboards Category = "motherboards"
	CategoryProcessors   Category = "processors"
	CategoryGraphics     Category = "graphics"
	CategoryMemory       Category = "memory"
	CategoryStorage      Category = "storage"
	CategoryCases        Category = "cases"
	CategoryMonitors     Category = "monitors"
	CategoryKeyboards    Category = "keyboards"
	CategoryMice         Category = "mice"
)

// CategoryAll is accepted by list filters and means "no category filter"
const CategoryAll = "all"

// CategoryInfo describes a category for menus and the configurator
type CategoryInfo struct {
	Key  Category `json:"key"`
	Name string   `json:"name"`
}

var categories = []CategoryInfo{
	{Key: CategoryMotherboards, Name: "Материнская плата"},
	{Key: CategoryProcessors, Name: "Процессор"},
	{Key: CategoryGraphics, Name: "Видеокарта"},
	{Key: CategoryMemory, Name: "Оперативная память"},
	{Key: CategoryStorage, Name: "Накопитель"},
	{Key: CategoryCases, Name: "Корпус"},
	{Key: CategoryMonitors, Name: "Монитор"},
	{Key: CategoryKeyboards, Name: "Клавиатура"},
	{Key: CategoryMice, Name: "Мышь"},
}

// Categories returns every known category in display order
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.Key == c {
			return true
		}
	}
	return false
}

// Name returns the Russian display name, or the key itself if unknown
func (c Category) Name() string {
	for _, info := range categories {
		if info.Key == c {
			return info.Name
		}
	}
	return string(c)
}

// Product is a purchasable catalog item. Price is in kopecks.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Price         int64          `gorm:"not null" json:"price"`
	OriginalPrice *int64         `json:"original_price,omitempty"`
	Image         string         `gorm:"not null;type:text" json:"image"`
	Category      Category       `gorm:"not null;size:50;index" json:"category"`
	Specs         string         `gorm:"type:text" json:"specs"`
	InStock       bool           `gorm:"default:true" json:"in_stock"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// GetDiscountPercentage returns the discount against the original price
func (p *Product) GetDiscountPercentage() int {
	if p.OriginalPrice != nil && *p.OriginalPrice > 0 && p.Price < *p.OriginalPrice {
		return int(((*p.OriginalPrice - p.Price) * 100) / *p.OriginalPrice)
	}
	return 0
}
