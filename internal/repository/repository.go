package repository

import (
	"letterlinks/internal/domain"
)

// PlayerRepository defines player data operations
type PlayerRepository interface {
	EnsurePlayerExists(playerID int64) error
	LoadProgress(playerID int64) (*domain.Progress, error)
	SaveProgress(playerID int64, progress *domain.Progress) error
}

// CompletionRepository defines daily completion operations
type CompletionRepository interface {
	SaveCompletion(playerID int64, completion *domain.Completion) error
	GetCompletion(playerID int64, dateKey string) (*domain.Completion, error)
	CleanOldCompletions(days int) error
}
