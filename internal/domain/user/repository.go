// internal/domain/user/repository.go
package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GormRepository stores users and sign-in codes
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new user repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindByID loads a user by id
func (r *GormRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByEmail loads a user by lowercase email
func (r *GormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Create inserts a user
func (r *GormRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// UpdateLastLogin stamps the sign-in time
func (r *GormRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// CreateCode inserts a sign-in code
func (r *GormRepository) CreateCode(ctx context.Context, code *AuthCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// ActiveCodes returns unused, unexpired codes newest first
func (r *GormRepository) ActiveCodes(ctx context.Context, email string, now time.Time, limit int) ([]AuthCode, error) {
	var codes []AuthCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", email, false, now).
		Order("created_at DESC").
		Limit(limit).
		Find(&codes).Error
	return codes, err
}

// MarkCodeUsed consumes a code. A code that is already used counts as not found.
func (r *GormRepository) MarkCodeUsed(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&AuthCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidCode
	}
	return nil
}

// PurgeExpiredCodes removes codes that can no longer be used
func (r *GormRepository) PurgeExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ? OR used = ?", now, true).Delete(&AuthCode{})
	return result.RowsAffected, result.Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
