package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM-based account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create creates a new account and fills in its ID and creation time.
func (r *GormAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	account.ID = "user_" + uuid.New().String()

	model := &domain.AccountModel{
		ID:           account.ID,
		FullName:     account.FullName,
		Email:        strings.ToLower(account.Email),
		PasswordHash: account.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return handleError(err)
	}

	account.Email = model.Email
	account.CreatedAt = model.CreatedAt
	return nil
}

// handleError converts database-specific errors to domain errors.
func handleError(err error) error {
	errStr := err.Error()

	// PostgreSQL / SQLite unique constraint violation
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "UNIQUE constraint") {
		if strings.Contains(errStr, "email") {
			return ErrEmailExists
		}
	}

	// MySQL unique constraint violation
	if strings.Contains(errStr, "Duplicate entry") && strings.Contains(errStr, "email") {
		return ErrEmailExists
	}

	return err
}
