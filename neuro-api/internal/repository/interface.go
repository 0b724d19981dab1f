package repository

import (
	"context"
	"errors"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already exists")
)

// ChatRepository reads stored conversations.
type ChatRepository interface {
	// ListSummaries returns conversations, most recently updated first.
	ListSummaries(ctx context.Context) ([]domain.ChatHistorySummary, error)
	GetDetail(ctx context.Context, id string) (*domain.ChatDetail, error)
}

// AnalyticsRepository reads the analytics snapshot.
type AnalyticsRepository interface {
	GetSnapshot(ctx context.Context) (*domain.AnalyticsSnapshot, error)
}

// ProfileRepository defines the interface for profile persistence.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Update(ctx context.Context, profile *domain.UserProfile) error
}

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
}

// TestResultRepository reads recorded test sessions.
type TestResultRepository interface {
	// List returns sessions newest first. A non-empty query keeps only
	// sessions whose label or description contains it, case-insensitively.
	List(ctx context.Context, query string) ([]domain.TestResult, error)
	GetByID(ctx context.Context, id string) (*domain.TestResult, error)
}
