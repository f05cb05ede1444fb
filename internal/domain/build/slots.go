// internal/domain/build/slots.go
package build

import "github.com/techempire/storefront/internal/domain/catalog"

// Slot describes one configurator position
type Slot struct {
	Category catalog.Category `json:"category"`
	Name     string           `json:"name"`
	Required bool             `json:"required"`
}

// DefaultSlots is the configurator table used by the storefront
var DefaultSlots = []Slot{
	{Category: catalog.CategoryMotherboards, Name: "Материнская плата", Required: true},
	{Category: catalog.CategoryProcessors, Name: "Процессор", Required: true},
	{Category: catalog.CategoryGraphics, Name: "Видеокарта", Required: true},
	{Category: catalog.CategoryMemory, Name: "Оперативная память", Required: true},
	{Category: catalog.CategoryStorage, Name: "Накопитель", Required: true},
	{Category: catalog.CategoryCases, Name: "Корпус", Required: true},
	{Category: catalog.CategoryMonitors, Name: "Монитор", Required: false},
	{Category: catalog.CategoryKeyboards, Name: "Клавиатура", Required: false},
	{Category: catalog.CategoryMice, Name: "Мышь", Required: false},
}
