package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM-based profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetByID retrieves a profile by ID.
func (r *GormProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var model domain.ProfileModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update updates the editable profile fields.
func (r *GormProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	model := domain.ProfileToModel(profile)
	result := r.db.WithContext(ctx).Model(&domain.ProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"full_name":       model.FullName,
			"email":           model.Email,
			"profile_picture": model.ProfilePicture,
		})
	if result.Error != nil {
		return handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
