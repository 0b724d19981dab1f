package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
)

type testServiceImpl struct {
	repo repository.TestResultRepository
}

func NewTestService(repo repository.TestResultRepository) TestService {
	return &testServiceImpl{repo: repo}
}

func (s *testServiceImpl) List(ctx context.Context, query string) ([]domain.TestResult, error) {
	results, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}
	return results, nil
}

func (s *testServiceImpl) Get(ctx context.Context, id string) (*domain.TestResult, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get test result: %w", err)
	}
	return result, nil
}
