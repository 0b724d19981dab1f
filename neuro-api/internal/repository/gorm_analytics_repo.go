package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// GormAnalyticsRepository implements AnalyticsRepository using GORM.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GORM-based analytics repository.
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// GetSnapshot returns the latest analytics snapshot.
func (r *GormAnalyticsRepository) GetSnapshot(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	var model domain.AnalyticsModel
	result := r.db.WithContext(ctx).Order("id DESC").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}
