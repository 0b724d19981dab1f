package service

import (
	"context"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

// ChatService answers chat messages and serves stored conversations.
type ChatService interface {
	Reply(ctx context.Context, message string) (*domain.ChatResponse, error)
	History(ctx context.Context) ([]domain.ChatHistorySummary, error)
	Detail(ctx context.Context, id string) (*domain.ChatDetail, error)
}

// DashboardService serves analytics and home screen data.
type DashboardService interface {
	Analytics(ctx context.Context) (*domain.AnalyticsSnapshot, error)
	Home(ctx context.Context) (*domain.HomeData, error)
	// LiveBrainData advances the live series by one sample and returns it.
	LiveBrainData(ctx context.Context) ([]domain.BrainData, error)
}

// ProfileService defines the interface for profile business logic.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error)
}

// AccountService registers accounts.
type AccountService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AccountSummary, error)
}

// TestService serves recorded test sessions.
type TestService interface {
	List(ctx context.Context, query string) ([]domain.TestResult, error)
	Get(ctx context.Context, id string) (*domain.TestResult, error)
}
