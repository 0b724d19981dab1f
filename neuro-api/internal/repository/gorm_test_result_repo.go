package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// GormTestResultRepository implements TestResultRepository using GORM.
type GormTestResultRepository struct {
	db *gorm.DB
}

// NewGormTestResultRepository creates a new GORM-based test result repository.
func NewGormTestResultRepository(db *gorm.DB) *GormTestResultRepository {
	return &GormTestResultRepository{db: db}
}

// List returns sessions newest first, optionally filtered by query.
func (r *GormTestResultRepository) List(ctx context.Context, query string) ([]domain.TestResult, error) {
	tx := r.db.WithContext(ctx).Order("recorded_at DESC")
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		like := "%" + escapeLike(q) + "%"
		tx = tx.Where("LOWER(label) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", like, like)
	}

	var models []domain.TestResultModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}

	results := make([]domain.TestResult, 0, len(models))
	for i := range models {
		results = append(results, *models[i].ToDomain())
	}
	return results, nil
}

// GetByID retrieves one session.
func (r *GormTestResultRepository) GetByID(ctx context.Context, id string) (*domain.TestResult, error) {
	var model domain.TestResultModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return r.Replace(s)
}
