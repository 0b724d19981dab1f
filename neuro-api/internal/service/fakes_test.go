package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
)

type fakeChatRepo struct {
	chats map[string]*domain.ChatDetail
	err   error
}

func (f *fakeChatRepo) ListSummaries(context.Context) ([]domain.ChatHistorySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.ChatHistorySummary
	for _, c := range f.chats {
		out = append(out, domain.ChatHistorySummary{ID: c.ID, Title: c.Title})
	}
	return out, nil
}

func (f *fakeChatRepo) GetDetail(_ context.Context, id string) (*domain.ChatDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

type fakeAnalyticsRepo struct {
	calls    atomic.Int32
	snapshot *domain.AnalyticsSnapshot
}

func (f *fakeAnalyticsRepo) GetSnapshot(context.Context) (*domain.AnalyticsSnapshot, error) {
	f.calls.Add(1)
	if f.snapshot == nil {
		return nil, repository.ErrNotFound
	}
	s := *f.snapshot
	return &s, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, p := range f.profiles {
		if id != profile.ID && strings.EqualFold(p.Email, profile.Email) {
			return repository.ErrEmailExists
		}
	}
	f.profiles[profile.ID] = *profile
	return nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounts == nil {
		f.accounts = make(map[string]domain.Account)
	}
	key := strings.ToLower(account.Email)
	if _, ok := f.accounts[key]; ok {
		return repository.ErrEmailExists
	}
	account.ID = "user_test"
	f.accounts[key] = *account
	return nil
}
