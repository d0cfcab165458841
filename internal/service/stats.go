package service

import (
	"letterlinks/internal/repository"

	"go.uber.org/zap"
)

// DefaultRetentionDays is how long completions are kept
const DefaultRetentionDays = 60

// StatsService handles statistics and cleanup
type StatsService struct {
	completionRepo repository.CompletionRepository
	retentionDays  int
	logger         *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(completionRepo repository.CompletionRepository, retentionDays int, logger *zap.Logger) *StatsService {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &StatsService{
		completionRepo: completionRepo,
		retentionDays:  retentionDays,
		logger:         logger,
	}
}

// CleanupOldData removes completions older than the retention window
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old completions", zap.Int("retention_days", s.retentionDays))

	err := s.completionRepo.CleanOldCompletions(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old completions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
