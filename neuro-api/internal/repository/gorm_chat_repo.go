package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GORM-based chat repository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListSummaries returns conversations, most recently updated first.
func (r *GormChatRepository) ListSummaries(ctx context.Context) ([]domain.ChatHistorySummary, error) {
	var models []domain.ChatModel
	result := r.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		Order("updated_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	summaries := make([]domain.ChatHistorySummary, 0, len(models))
	for i := range models {
		summaries = append(summaries, models[i].ToSummary())
	}
	return summaries, nil
}

// GetDetail retrieves one conversation with its messages in order.
func (r *GormChatRepository) GetDetail(ctx context.Context, id string) (*domain.ChatDetail, error) {
	var model domain.ChatModel
	result := r.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return model.ToDetail(), nil
}
