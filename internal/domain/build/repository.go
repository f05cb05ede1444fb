// internal/domain/build/repository.go
package build

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GormRepository stores saved builds in the pc_builds table
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new saved build repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts a saved build
func (r *GormRepository) Create(ctx context.Context, b *SavedBuild) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// FindByID loads a saved build
func (r *GormRepository) FindByID(ctx context.Context, id uint) (*SavedBuild, error) {
	var b SavedBuild
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildNotFound
		}
		return nil, err
	}
	return &b, nil
}
