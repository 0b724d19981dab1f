package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/pkg/database"
)

var seedTime = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db, Models()...))
	require.NoError(t, Seed(context.Background(), db, seedTime))
	return db
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(context.Background(), db, seedTime))

	var count int64
	require.NoError(t, db.Model(&domain.TestResultModel{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
	require.NoError(t, db.Model(&domain.ChatModel{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	require.NoError(t, db.Model(&domain.AnalyticsModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChatRepository(t *testing.T) {
	repo := NewGormChatRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("summaries newest first", func(t *testing.T) {
		summaries, err := repo.ListSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 3)

		assert.Equal(t, "chat-1", summaries[0].ID)
		assert.Equal(t, "chat-3", summaries[2].ID)
		assert.True(t, summaries[0].Timestamp.After(summaries[1].Timestamp))
		assert.Contains(t, summaries[0].LastMessageSnippet, "non-invasive")
	})

	t.Run("detail keeps message order", func(t *testing.T) {
		detail, err := repo.GetDetail(ctx, "chat-1")
		require.NoError(t, err)
		require.Len(t, detail.Messages, 4)

		assert.Equal(t, "Understanding EEG", detail.Title)
		assert.True(t, detail.Messages[0].IsUser)
		assert.Equal(t, "What does an EEG measure?", detail.Messages[0].Text)
		assert.False(t, detail.Messages[3].IsUser)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetDetail(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAnalyticsRepository_GetSnapshot(t *testing.T) {
	repo := NewGormAnalyticsRepository(newTestDB(t))

	snap, err := repo.GetSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 72, snap.AttentionScore)
	assert.Equal(t, 45, snap.StateDistribution.Focused)
	assert.Len(t, snap.Recommendations, 3)
	require.Len(t, snap.TimeSeriesData, 6)
	assert.Equal(t, domain.TimePoint{Time: "5 min", Value: 85}, snap.TimeSeriesData[5])
}

func TestProfileRepository(t *testing.T) {
	repo := NewGormProfileRepository(newTestDB(t))
	ctx := context.Background()

	profile, err := repo.GetByID(ctx, DefaultProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Morgan", profile.FullName)

	profile.FullName = "Alex M."
	profile.ProfilePicture = "https://example.com/a.png"
	require.NoError(t, repo.Update(ctx, profile))

	updated, err := repo.GetByID(ctx, DefaultProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Alex M.", updated.FullName)
	assert.Equal(t, "https://example.com/a.png", updated.ProfilePicture)

	_, err = repo.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Update(ctx, &domain.UserProfile{ID: "nobody", FullName: "x", Email: "x@y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_Create(t *testing.T) {
	repo := NewGormAccountRepository(newTestDB(t))
	ctx := context.Background()

	account := &domain.Account{FullName: "Sam", Email: "Sam@Example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, account))

	assert.True(t, strings.HasPrefix(account.ID, "user_"))
	assert.Equal(t, "sam@example.com", account.Email)
	assert.False(t, account.CreatedAt.IsZero())

	err := repo.Create(ctx, &domain.Account{FullName: "Other", Email: "SAM@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestTestResultRepository(t *testing.T) {
	repo := NewGormTestResultRepository(newTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all newest first", query: "", want: []string{"test-1", "test-2", "test-3", "test-4", "test-5", "test-6"}},
		{name: "label match", query: "focused", want: []string{"test-1", "test-4"}},
		{name: "case insensitive", query: "FLOW", want: []string{"test-5"}},
		{name: "description match", query: "alpha", want: []string{"test-2", "test-5", "test-6"}},
		{name: "wildcards are literal", query: "%", want: []string{}},
		{name: "no match", query: "sleepy", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.List(ctx, tt.query)
			require.NoError(t, err)

			ids := make([]string, 0, len(results))
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	result, err := repo.GetByID(ctx, "test-5")
	require.NoError(t, err)
	assert.Equal(t, "Flow State", result.Label)
	assert.Equal(t, "9:45 AM", result.Timestamp)
	assert.Len(t, result.WaveData, 12)

	_, err = repo.GetByID(ctx, "test-99")
	assert.ErrorIs(t, err, ErrNotFound)
}
