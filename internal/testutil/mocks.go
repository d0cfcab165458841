package testutil

import (
	"letterlinks/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock for PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) EnsurePlayerExists(playerID int64) error {
	args := m.Called(playerID)
	return args.Error(0)
}

func (m *MockPlayerRepository) LoadProgress(playerID int64) (*domain.Progress, error) {
	args := m.Called(playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockPlayerRepository) SaveProgress(playerID int64, progress *domain.Progress) error {
	args := m.Called(playerID, progress)
	return args.Error(0)
}

// MockCompletionRepository is a mock for CompletionRepository
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) SaveCompletion(playerID int64, completion *domain.Completion) error {
	args := m.Called(playerID, completion)
	return args.Error(0)
}

func (m *MockCompletionRepository) GetCompletion(playerID int64, dateKey string) (*domain.Completion, error) {
	args := m.Called(playerID, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepository) CleanOldCompletions(days int) error {
	args := m.Called(days)
	return args.Error(0)
}
