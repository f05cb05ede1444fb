// internal/domain/contact/repository.go
package contact

import (
	"context"

	"gorm.io/gorm"
)

// GormRepository stores submissions in contact_submissions
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new submission repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts a submission
func (r *GormRepository) Create(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// List returns a page of submissions and the total count
func (r *GormRepository) List(ctx context.Context, offset, limit int) ([]Submission, int64, error) {
	var subs []Submission
	var total int64

	query := r.db.WithContext(ctx).Model(&Submission{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
