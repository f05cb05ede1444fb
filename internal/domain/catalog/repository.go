// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// likeEscaper makes search text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormRepository stores products in PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed product repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List applies the search first and then narrows by category
func (r *GormRepository) List(ctx context.Context, query ListQuery) ([]Product, error) {
	var products []Product

	tx := r.db.WithContext(ctx).Model(&Product{})

	if query.Search != "" {
		search := "%" + likeEscaper.Replace(strings.ToLower(query.Search)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(specs) LIKE ? ESCAPE '\'`, search, search)
	}

	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}

	if err := tx.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

// FindByID returns ErrProductNotFound when no row matches
func (r *GormRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

func (r *GormRepository) Create(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*Product, error) {
	result := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
