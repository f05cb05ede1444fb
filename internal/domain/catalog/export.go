// internal/domain/catalog/export.go
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Название", "Категория", "Цена, ₽", "Старая цена, ₽", "В наличии", "Характеристики", "Изображение", "Создан",
}

// FormatPrice renders a kopeck amount as rubles, e.g. 2599000 -> "25990.00 ₽"
func FormatPrice(kopecks int64) string {
	return decimal.New(kopecks, -2).StringFixed(2) + " ₽"
}

// ExportXLSX builds a spreadsheet with one row per product
func ExportXLSX(products []Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Товары")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category.Name())
		row.AddCell().SetString(decimal.New(p.Price, -2).StringFixed(2))
		if p.OriginalPrice != nil {
			row.AddCell().SetString(decimal.New(*p.OriginalPrice, -2).StringFixed(2))
		} else {
			row.AddCell().SetString("")
		}
		if p.InStock {
			row.AddCell().SetString("да")
		} else {
			row.AddCell().SetString("нет")
		}
		row.AddCell().SetString(p.Specs)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}
